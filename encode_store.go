package finbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/maps"
)

// EncodeStore serializes the whole store as an indented JSON snapshot.
// The output is canonical: usernames, profile names and account names are
// sorted and fields keep a fixed order, so successive snapshots of the
// same store are byte-for-byte identical and diff cleanly.
func EncodeStore(w io.Writer, s *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var root jsonObjectWriter
	usernames := maps.Keys(s.users)
	slices.Sort(usernames)
	for _, username := range usernames {
		root.Append(username, encodeUser(s.users[username]))
	}
	data, err := root.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode store: %w", err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "    "); err != nil {
		return fmt.Errorf("could not indent snapshot: %w", err)
	}
	indented.WriteByte('\n')

	_, err = w.Write(indented.Bytes())
	return err
}

func encodeUser(u *User) *jsonObjectWriter {
	var w jsonObjectWriter
	w.Append("email", u.Email)
	w.Append("password", u.PasswordHash)
	w.Append("id", u.ID)
	w.Append("default_profile", u.DefaultProfile)

	var profiles jsonObjectWriter
	names := maps.Keys(u.profiles)
	slices.Sort(names)
	for _, name := range names {
		profiles.Append(name, encodeProfile(u.profiles[name]))
	}
	w.Append("profiles", &profiles)
	return &w
}

func encodeProfile(p *Profile) *jsonObjectWriter {
	var w jsonObjectWriter
	w.Append("description", p.Description)

	var accounts jsonObjectWriter
	names := maps.Keys(p.accounts)
	slices.Sort(names)
	for _, name := range names {
		accounts.Append(name, encodeAccount(p.accounts[name]))
	}
	w.Append("accounts", &accounts)
	return &w
}

func encodeAccount(a *Account) *jsonObjectWriter {
	var w jsonObjectWriter
	w.Append("balance", a.Balance)
	w.Append("description", a.Description)

	var logs jsonObjectWriter
	for _, c := range Categories() {
		logs.Append(string(c), a.logs[c])
	}
	w.Append("transactions", &logs)
	return &w
}

// snapshot wire types, mirroring the logical schema of the snapshot file.

type userJSON struct {
	Email          string                 `json:"email"`
	Password       string                 `json:"password"`
	ID             int                    `json:"id"`
	DefaultProfile string                 `json:"default_profile"`
	Profiles       map[string]profileJSON `json:"profiles"`
}

type profileJSON struct {
	Description string                 `json:"description"`
	Accounts    map[string]accountJSON `json:"accounts"`
}

type accountJSON struct {
	Balance      Money    `json:"balance"`
	Description  string   `json:"description"`
	Transactions logsJSON `json:"transactions"`
}

type logsJSON struct {
	Incomes   []Transaction `json:"incomes"`
	Expenses  []Transaction `json:"expenses"`
	Transfers []Transaction `json:"transfers"`
}

// DecodeStore reads a snapshot and rebuilds the typed store from it.
func DecodeStore(r io.Reader) (*Store, error) {
	var raw map[string]userJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}

	s := NewStore()
	for username, ju := range raw {
		u := &User{
			Username:       username,
			Email:          ju.Email,
			PasswordHash:   ju.Password,
			ID:             ju.ID,
			DefaultProfile: ju.DefaultProfile,
			profiles:       make(map[string]*Profile, len(ju.Profiles)),
		}
		for name, jp := range ju.Profiles {
			p := &Profile{
				Description: jp.Description,
				accounts:    make(map[string]*Account, len(jp.Accounts)),
			}
			for aname, ja := range jp.Accounts {
				a := newAccount(ja.Balance, ja.Description)
				a.logs[Incomes] = append(a.logs[Incomes], ja.Transactions.Incomes...)
				a.logs[Expenses] = append(a.logs[Expenses], ja.Transactions.Expenses...)
				a.logs[Transfers] = append(a.logs[Transfers], ja.Transactions.Transfers...)
				p.accounts[aname] = a
			}
			u.profiles[name] = p
		}
		s.users[username] = u
	}
	return s, nil
}
