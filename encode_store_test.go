package finbook

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeStore_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeStore(&buf, NewStore()); err != nil {
		t.Fatalf("EncodeStore failed: %v", err)
	}
	if got := buf.String(); got != "{}\n" {
		t.Errorf("EncodeStore(empty) = %q, want {} and newline", got)
	}
}

func TestEncodeStore_Canonical(t *testing.T) {
	s := newQueryStore(t)

	first := snapshotBytes(t, s)
	second := snapshotBytes(t, s)
	if !bytes.Equal(first, second) {
		t.Error("two snapshots of the same store differ")
	}

	// Fields appear in their documented order.
	snapshot := string(first)
	keys := []string{`"email"`, `"password"`, `"id"`, `"default_profile"`, `"profiles"`}
	for i := 1; i < len(keys); i++ {
		prev, cur := strings.Index(snapshot, keys[i-1]), strings.Index(snapshot, keys[i])
		if prev < 0 || cur < 0 || prev > cur {
			t.Errorf("field %s out of order in snapshot", keys[i])
		}
	}
	// Account names are sorted: bank before cash.
	if strings.Index(snapshot, `"bank"`) > strings.Index(snapshot, `"cash"`) {
		t.Error("account names are not sorted in snapshot")
	}
}

func TestEncodeStore_RoundTrip(t *testing.T) {
	s := newQueryStore(t)
	first := snapshotBytes(t, s)

	decoded, err := DecodeStore(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("DecodeStore failed: %v", err)
	}
	if !bytes.Equal(first, snapshotBytes(t, decoded)) {
		t.Error("decode/encode round trip is not stable")
	}

	// The decoded store answers queries like the original.
	want, err := s.TotalBalance("alice", "personal")
	if err != nil {
		t.Fatalf("TotalBalance failed: %v", err)
	}
	got, err := decoded.TotalBalance("alice", "personal")
	if err != nil {
		t.Fatalf("TotalBalance(decoded) failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("decoded TotalBalance = %s, want %s", got, want)
	}
}
