package finbook

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Category is the kind of a transaction.
type Category string

// Categories of transactions. Incomes debit an account, expenses credit
// one, transfers move value between two accounts of the same profile.
const (
	Incomes   Category = "incomes"
	Expenses  Category = "expenses"
	Transfers Category = "transfers"
)

// Categories lists all valid categories, in log order.
func Categories() []Category { return []Category{Incomes, Expenses, Transfers} }

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Incomes, Expenses, Transfers:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, s)
	}
}

// Transaction is an immutable record of a single income, expense or
// transfer. A transfer is recorded in the logs of both participating
// accounts as two independent copies sharing the same id, so per-account
// queries see every transaction touching that account.
type Transaction struct {
	ID              string
	User            string
	Category        Category
	Amount          Money
	Date            Date
	Subcategory     string
	Description     string
	AccountDebited  string
	AccountCredited string
}

// Equal reports whether two transactions are the same record.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.User == o.User &&
		t.Category == o.Category &&
		t.Amount.Equal(o.Amount) &&
		t.Date == o.Date &&
		t.Subcategory == o.Subcategory &&
		t.Description == o.Description &&
		t.AccountDebited == o.AccountDebited &&
		t.AccountCredited == o.AccountCredited
}

// MarshalJSON implements json.Marshaler with a canonical field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("user_id", t.User)
	w.Append("category", t.Category)
	w.Append("amount", t.Amount)
	w.Append("time", t.Date)
	w.Optional("subcategory", t.Subcategory)
	w.Optional("description", t.Description)
	w.Optional("account_debited", t.AccountDebited)
	w.Optional("account_credited", t.AccountCredited)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler for the snapshot layout.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              string   `json:"id"`
		User            string   `json:"user_id"`
		Category        Category `json:"category"`
		Amount          Money    `json:"amount"`
		Date            Date     `json:"time"`
		Subcategory     string   `json:"subcategory"`
		Description     string   `json:"description"`
		AccountDebited  string   `json:"account_debited"`
		AccountCredited string   `json:"account_credited"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction(temp)
	return nil
}

// Draft describes a transaction to be recorded. The zero Date means today.
type Draft struct {
	Category        Category
	Amount          Money
	AccountDebited  string
	AccountCredited string
	Date            Date
	Subcategory     string
	Description     string
}

// Record validates a draft against the profile's accounts and, only when
// every check passes, applies the balance change and appends the record to
// the relevant logs. The operation is all-or-nothing: on error the store is
// left exactly as it was.
//
// Incomes require AccountDebited only, expenses AccountCredited only,
// transfers both. Expenses and transfers are rejected when they would
// drive the credited account's balance below zero.
func (s *Store) Record(username, profile string, d Draft) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := ParseCategory(string(d.Category)); err != nil {
		return Transaction{}, err
	}
	if !d.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidArgument, d.Amount)
	}

	p, err := s.profile(username, profile)
	if err != nil {
		return Transaction{}, err
	}

	// Resolve account references before touching any balance.
	var debited, credited *Account
	if d.AccountDebited != "" {
		if debited, err = p.account(d.AccountDebited); err != nil {
			return Transaction{}, err
		}
	}
	if d.AccountCredited != "" {
		if credited, err = p.account(d.AccountCredited); err != nil {
			return Transaction{}, err
		}
	}

	switch d.Category {
	case Incomes:
		if credited != nil {
			return Transaction{}, fmt.Errorf("%w: account_credited is not valid for income transactions", ErrIntegrity)
		}
		if debited == nil {
			return Transaction{}, fmt.Errorf("%w: account_debited must be specified for income transactions", ErrIntegrity)
		}
	case Expenses:
		if debited != nil {
			return Transaction{}, fmt.Errorf("%w: account_debited is not valid for expense transactions", ErrIntegrity)
		}
		if credited == nil {
			return Transaction{}, fmt.Errorf("%w: account_credited must be specified for expense transactions", ErrIntegrity)
		}
		if credited.Balance.Sub(d.Amount).IsNegative() {
			return Transaction{}, fmt.Errorf("%w: transaction results in negative balance", ErrIntegrity)
		}
	case Transfers:
		if debited == nil || credited == nil {
			return Transaction{}, fmt.Errorf("%w: both account_debited and account_credited must be specified for transfers", ErrIntegrity)
		}
		if credited.Balance.Sub(d.Amount).IsNegative() {
			return Transaction{}, fmt.Errorf("%w: transaction results in negative balance", ErrIntegrity)
		}
	}

	// Every check passed, the mutation below cannot fail halfway.
	tx := Transaction{
		ID:              uuid.NewString(),
		User:            username,
		Category:        d.Category,
		Amount:          d.Amount,
		Date:            d.Date,
		Subcategory:     d.Subcategory,
		Description:     d.Description,
		AccountDebited:  d.AccountDebited,
		AccountCredited: d.AccountCredited,
	}
	if tx.Date.IsZero() {
		tx.Date = Today()
	}

	switch d.Category {
	case Incomes:
		debited.Balance = debited.Balance.Add(d.Amount)
		debited.logs[Incomes] = append(debited.logs[Incomes], tx)
	case Expenses:
		credited.Balance = credited.Balance.Sub(d.Amount)
		credited.logs[Expenses] = append(credited.logs[Expenses], tx)
	case Transfers:
		credited.Balance = credited.Balance.Sub(d.Amount)
		debited.Balance = debited.Balance.Add(d.Amount)
		// Two independent copies sharing the same id: mutating one log
		// must never silently change the other.
		debited.logs[Transfers] = append(debited.logs[Transfers], tx)
		credited.logs[Transfers] = append(credited.logs[Transfers], tx)
	}
	return tx, nil
}

// Rollback reverses a previously recorded transaction: it restores the
// balances the transaction changed and removes the record from every log
// it appears in. Like Record, it validates fully before mutating, and it
// refuses a reversal that would drive a balance below zero.
func (s *Store) Rollback(id string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, tx, ok := s.findTransaction(id)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
	}

	var debited, credited *Account
	var err error
	if tx.AccountDebited != "" {
		if debited, err = p.account(tx.AccountDebited); err != nil {
			return Transaction{}, err
		}
	}
	if tx.AccountCredited != "" {
		if credited, err = p.account(tx.AccountCredited); err != nil {
			return Transaction{}, err
		}
	}

	// A hand-edited snapshot can carry a record whose accounts do not
	// match its category; such a record cannot be reversed.
	if (tx.Category != Expenses && debited == nil) || (tx.Category != Incomes && credited == nil) {
		return Transaction{}, fmt.Errorf("%w: transaction %q lacks the accounts its category requires", ErrIntegrity, id)
	}

	// Reversing an income (or a transfer's debit side) withdraws money
	// from the debited account, so the same negative-balance guard applies.
	switch tx.Category {
	case Incomes, Transfers:
		if debited.Balance.Sub(tx.Amount).IsNegative() {
			return Transaction{}, fmt.Errorf("%w: rollback results in negative balance", ErrIntegrity)
		}
	}

	switch tx.Category {
	case Incomes:
		debited.Balance = debited.Balance.Sub(tx.Amount)
		debited.dropTransaction(Incomes, id)
	case Expenses:
		credited.Balance = credited.Balance.Add(tx.Amount)
		credited.dropTransaction(Expenses, id)
	case Transfers:
		debited.Balance = debited.Balance.Sub(tx.Amount)
		credited.Balance = credited.Balance.Add(tx.Amount)
		debited.dropTransaction(Transfers, id)
		credited.dropTransaction(Transfers, id)
	}
	return tx, nil
}

// findTransaction locates a transaction by id anywhere in the store and
// returns its owning profile.
func (s *Store) findTransaction(id string) (*Profile, Transaction, bool) {
	for _, u := range s.users {
		for _, p := range u.profiles {
			for _, a := range p.accounts {
				for _, c := range Categories() {
					for _, tx := range a.logs[c] {
						if tx.ID == id {
							return p, tx, true
						}
					}
				}
			}
		}
	}
	return nil, Transaction{}, false
}

func (a *Account) dropTransaction(c Category, id string) {
	log := a.logs[c]
	for i, tx := range log {
		if tx.ID == id {
			a.logs[c] = append(log[:i], log[i+1:]...)
			return
		}
	}
}
