package finbook

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// DefaultProfileName is the profile automatically created for a new user.
const DefaultProfileName = "personal"

// Store is the authoritative holder of all users, profiles, accounts and
// transaction logs. It is the only component that mutates balances, via
// Record and Rollback, and a single mutex guards every read-modify-write
// sequence so a half-applied transfer is never observable.
//
// The store is single-process and single-writer. Persistence is a whole
// file snapshot: callers are expected to Save after every mutation and may
// Reload before reads to observe the latest on-disk state.
type Store struct {
	mu    sync.Mutex
	path  string
	users map[string]*User
}

// User is an authenticated owner of profiles. Authentication itself is
// external: the store only keeps the password hash the caller supplies.
type User struct {
	Username       string
	Email          string
	PasswordHash   string
	ID             int
	DefaultProfile string

	profiles map[string]*Profile
}

// Profile is a named partition of accounts under one user.
type Profile struct {
	Description string

	accounts map[string]*Account
}

// Account is a named balance-bearing bucket within a profile, with one
// transaction log per category.
type Account struct {
	Balance     Money
	Description string

	logs map[Category][]Transaction
}

func newAccount(balance Money, description string) *Account {
	return &Account{
		Balance:     balance,
		Description: description,
		logs: map[Category][]Transaction{
			Incomes:   {},
			Expenses:  {},
			Transfers: {},
		},
	}
}

// NewStore creates an empty store, not yet bound to a snapshot file.
func NewStore() *Store {
	return &Store{users: make(map[string]*User)}
}

// lookup helpers. Callers must hold s.mu.

func (s *Store) user(username string) (*User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return u, nil
}

func (s *Store) profile(username, profile string) (*Profile, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	p, ok := u.profiles[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q under user %q", ErrNotFound, profile, username)
	}
	return p, nil
}

func (p *Profile) account(name string) (*Account, error) {
	a, ok := p.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: account %q", ErrNotFound, name)
	}
	return a, nil
}

// AddUser registers a new user. It fails with ErrExists when the username
// is taken, assigns a numeric id when the user carries none, and
// auto-creates a "personal" profile as the user's default.
func (s *Store) AddUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return fmt.Errorf("%w: username %q", ErrExists, u.Username)
	}
	if u.ID == 0 {
		u.ID = len(s.users) + 1
	}
	u.DefaultProfile = ""
	u.profiles = make(map[string]*Profile)
	s.users[u.Username] = &u

	return s.addProfile(u.Username, DefaultProfileName, "", true)
}

// AddProfile adds a profile under the given user. The first profile of a
// user always becomes the default, whatever dflt says.
func (s *Store) AddProfile(username, profile, description string, dflt bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addProfile(username, profile, description, dflt)
}

func (s *Store) addProfile(username, profile, description string, dflt bool) error {
	u, err := s.user(username)
	if err != nil {
		return err
	}
	if len(u.profiles) == 0 {
		dflt = true
	}
	if _, ok := u.profiles[profile]; ok {
		return fmt.Errorf("%w: profile %q under user %q", ErrExists, profile, username)
	}
	u.profiles[profile] = &Profile{
		Description: description,
		accounts:    make(map[string]*Account),
	}
	if dflt {
		u.DefaultProfile = profile
	}
	return nil
}

// AddAccount adds an account with an initial balance under the given profile.
func (s *Store) AddAccount(username, profile, account string, balance Money, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile(username, profile)
	if err != nil {
		return err
	}
	if _, ok := p.accounts[account]; ok {
		return fmt.Errorf("%w: account %q under profile %q.%q", ErrExists, account, username, profile)
	}
	p.accounts[account] = newAccount(balance, description)
	return nil
}

// SetDefaultProfile marks an existing profile as the user's default. The
// profile must already exist, otherwise ErrIntegrity is returned.
func (s *Store) SetDefaultProfile(username, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return err
	}
	if _, ok := u.profiles[profile]; !ok {
		return fmt.Errorf("%w: profile %q does not exist", ErrIntegrity, profile)
	}
	u.DefaultProfile = profile
	return nil
}

// Profiles returns the sorted list of profile names under the given user.
func (s *Store) Profiles(username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	names := maps.Keys(u.profiles)
	slices.Sort(names)
	return names, nil
}

// AccountNames returns the sorted list of account names under the given profile.
func (s *Store) AccountNames(username, profile string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile(username, profile)
	if err != nil {
		return nil, err
	}
	names := maps.Keys(p.accounts)
	slices.Sort(names)
	return names, nil
}

// AccountBalance returns the balance of one account.
func (s *Store) AccountBalance(username, profile, account string) (Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile(username, profile)
	if err != nil {
		return Money{}, err
	}
	a, err := p.account(account)
	if err != nil {
		return Money{}, err
	}
	return a.Balance, nil
}

// AllAccountBalances returns the balance of every account in the profile,
// keyed by account name.
func (s *Store) AllAccountBalances(username, profile string) (map[string]Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile(username, profile)
	if err != nil {
		return nil, err
	}
	balances := make(map[string]Money, len(p.accounts))
	for name, a := range p.accounts {
		balances[name] = a.Balance
	}
	return balances, nil
}

// TotalBalance returns the sum of all account balances in the profile.
// An empty profile totals zero.
func (s *Store) TotalBalance(username, profile string) (Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile(username, profile)
	if err != nil {
		return Money{}, err
	}
	var total Money
	for _, a := range p.accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}

// UserByUsername returns a copy of the user's record, without its
// profiles, or false when the username is unknown.
func (s *Store) UserByUsername(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return User{}, false
	}
	view := *u
	view.profiles = nil
	return view, true
}

// Usernames returns the sorted list of all usernames in the store.
func (s *Store) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := maps.Keys(s.users)
	slices.Sort(names)
	return names
}
