package finbook

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Open reads the snapshot file at path and rebuilds the store from it.
// When the file does not exist, an empty store is created and an empty
// snapshot is written, establishing the file for subsequent reloads.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := NewStore()
		s.path = path
		if err := s.Save(); err != nil {
			return nil, fmt.Errorf("could not create snapshot %q: %w", path, err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot %q: %w", path, err)
	}
	defer f.Close()

	s, err := DecodeStore(f)
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot %q: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Path returns the snapshot file this store was opened from.
func (s *Store) Path() string { return s.path }

// Save serializes the entire store to its snapshot file, replacing the
// previous snapshot. The snapshot is written to a temporary file in the
// same directory and atomically renamed into place, so a crash mid-write
// never leaves a corrupt snapshot behind. A failed Save leaves the
// in-memory store valid but not durable; callers may retry.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("cannot save store without a snapshot path")
	}

	var buf bytes.Buffer
	if err := EncodeStore(&buf, s); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".finbook-*.json")
	if err != nil {
		return fmt.Errorf("could not create temporary snapshot in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write temporary snapshot %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary snapshot %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace snapshot %q: %w", s.path, err)
	}
	return nil
}

// Reload re-reads the snapshot file, discarding any in-memory state not
// yet saved. In a deployment where another process may rewrite the
// snapshot, calling Reload before reads observes the latest on-disk state;
// the race with a concurrent writer is last-writer-wins.
func (s *Store) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("could not open snapshot %q: %w", s.path, err)
	}
	defer f.Close()

	fresh, err := DecodeStore(f)
	if err != nil {
		return fmt.Errorf("could not reload snapshot %q: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = fresh.users
	return nil
}
