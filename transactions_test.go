package finbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// snapshotBytes returns the canonical encoding of the store, for
// byte-for-byte "nothing changed" assertions.
func snapshotBytes(t *testing.T, s *Store) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeStore(&buf, s); err != nil {
		t.Fatalf("EncodeStore failed: %v", err)
	}
	return buf.Bytes()
}

func TestStore_Record(t *testing.T) {
	s := newTestStore(t)

	income, err := s.Record("alice", "personal", Draft{
		Category:       Incomes,
		Amount:         M(100, ""),
		AccountDebited: "cash",
		Subcategory:    "salary",
	})
	if err != nil {
		t.Fatalf("Record(income) failed: %v", err)
	}
	if income.ID == "" {
		t.Error("Record(income) returned an empty id")
	}
	if income.Date.IsZero() {
		t.Error("Record(income) left the date unset, want today")
	}

	expense, err := s.Record("alice", "personal", Draft{
		Category:        Expenses,
		Amount:          M(30, ""),
		AccountCredited: "cash",
		Subcategory:     "food",
	})
	if err != nil {
		t.Fatalf("Record(expense) failed: %v", err)
	}
	if expense.ID == income.ID {
		t.Error("two transactions share an id")
	}

	balance, err := s.AccountBalance("alice", "personal", "cash")
	if err != nil {
		t.Fatalf("AccountBalance failed: %v", err)
	}
	if !balance.Equal(M(170, "")) {
		t.Errorf("balance after +100 -30 on 100 = %s, want 170", balance)
	}

	incomes, err := s.Transactions("alice", "personal", Filter{Category: Incomes})
	if err != nil {
		t.Fatalf("Transactions(incomes) failed: %v", err)
	}
	expenses, err := s.Transactions("alice", "personal", Filter{Category: Expenses})
	if err != nil {
		t.Fatalf("Transactions(expenses) failed: %v", err)
	}
	if len(incomes) != 1 || len(expenses) != 1 {
		t.Errorf("log lengths = %d incomes, %d expenses, want 1 and 1", len(incomes), len(expenses))
	}
}

func TestStore_Record_Validation(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		want  error
	}{
		{
			name:  "unknown category",
			draft: Draft{Category: "loans", Amount: M(10, ""), AccountDebited: "cash"},
			want:  ErrInvalidArgument,
		},
		{
			name:  "zero amount",
			draft: Draft{Category: Incomes, Amount: M(0, ""), AccountDebited: "cash"},
			want:  ErrInvalidArgument,
		},
		{
			name:  "negative amount",
			draft: Draft{Category: Incomes, Amount: M(-5, ""), AccountDebited: "cash"},
			want:  ErrInvalidArgument,
		},
		{
			name:  "income without debited account",
			draft: Draft{Category: Incomes, Amount: M(10, "")},
			want:  ErrIntegrity,
		},
		{
			name:  "income with credited account",
			draft: Draft{Category: Incomes, Amount: M(10, ""), AccountDebited: "cash", AccountCredited: "cash"},
			want:  ErrIntegrity,
		},
		{
			name:  "expense without credited account",
			draft: Draft{Category: Expenses, Amount: M(10, "")},
			want:  ErrIntegrity,
		},
		{
			name:  "expense with debited account",
			draft: Draft{Category: Expenses, Amount: M(10, ""), AccountCredited: "cash", AccountDebited: "cash"},
			want:  ErrIntegrity,
		},
		{
			name:  "transfer missing one side",
			draft: Draft{Category: Transfers, Amount: M(10, ""), AccountCredited: "cash"},
			want:  ErrIntegrity,
		},
		{
			name:  "unknown account",
			draft: Draft{Category: Incomes, Amount: M(10, ""), AccountDebited: "vault"},
			want:  ErrNotFound,
		},
		{
			name:  "overdraft expense",
			draft: Draft{Category: Expenses, Amount: M(500, ""), AccountCredited: "cash"},
			want:  ErrIntegrity,
		},
		{
			name:  "overdraft transfer",
			draft: Draft{Category: Transfers, Amount: M(500, ""), AccountCredited: "cash", AccountDebited: "bank"},
			want:  ErrIntegrity,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := s.AddAccount("alice", "personal", "bank", M(50, ""), ""); err != nil {
				t.Fatalf("AddAccount failed: %v", err)
			}
			before := snapshotBytes(t, s)

			if _, err := s.Record("alice", "personal", c.draft); !errors.Is(err, c.want) {
				t.Errorf("Record() = %v, want %v", err, c.want)
			}
			// A rejected draft must leave no trace.
			if after := snapshotBytes(t, s); !bytes.Equal(before, after) {
				t.Error("store changed after a rejected transaction")
			}
		})
	}
}

func TestStore_Record_Transfer(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddAccount("alice", "personal", "bank", M(0, ""), ""); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	tx, err := s.Record("alice", "personal", Draft{
		Category:        Transfers,
		Amount:          M(40, ""),
		AccountCredited: "cash",
		AccountDebited:  "bank",
	})
	if err != nil {
		t.Fatalf("Record(transfer) failed: %v", err)
	}

	cash, _ := s.AccountBalance("alice", "personal", "cash")
	bank, _ := s.AccountBalance("alice", "personal", "bank")
	if !cash.Equal(M(60, "")) || !bank.Equal(M(40, "")) {
		t.Errorf("balances after transfer = cash %s, bank %s, want 60 and 40", cash, bank)
	}

	// The same record, under the same id, lands in both account logs.
	for _, account := range []string{"cash", "bank"} {
		got, err := s.Transactions("alice", "personal", Filter{Account: account, Category: Transfers})
		if err != nil {
			t.Fatalf("Transactions(%s) failed: %v", account, err)
		}
		if len(got) != 1 || got[0].ID != tx.ID {
			t.Errorf("transfer log on %s = %v, want one entry with id %s", account, got, tx.ID)
		}
	}
}

func TestStore_Rollback(t *testing.T) {
	s := newTestStore(t)
	before := snapshotBytes(t, s)

	tx, err := s.Record("alice", "personal", Draft{
		Category:       Incomes,
		Amount:         M(25, ""),
		AccountDebited: "cash",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	undone, err := s.Rollback(tx.ID)
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if !undone.Equal(tx) {
		t.Errorf("Rollback returned %v, want %v", undone, tx)
	}
	// Undoing the only transaction restores the store exactly.
	if after := snapshotBytes(t, s); !bytes.Equal(before, after) {
		t.Error("store differs from its pre-transaction state after rollback")
	}

	if _, err := s.Rollback(tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rollback(already removed) = %v, want ErrNotFound", err)
	}
	if _, err := s.Rollback("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rollback(unknown) = %v, want ErrNotFound", err)
	}
}

func TestStore_Rollback_Transfer(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddAccount("alice", "personal", "bank", M(0, ""), ""); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	before := snapshotBytes(t, s)

	tx, err := s.Record("alice", "personal", Draft{
		Category:        Transfers,
		Amount:          M(40, ""),
		AccountCredited: "cash",
		AccountDebited:  "bank",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if _, err := s.Rollback(tx.ID); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if after := snapshotBytes(t, s); !bytes.Equal(before, after) {
		t.Error("store differs from its pre-transfer state after rollback")
	}
}

func TestStore_Rollback_MalformedRecord(t *testing.T) {
	// A hand-edited snapshot may hold an income without its debited
	// account; decoding accepts it, rolling it back must not.
	snapshot := `{
	    "alice": {
	        "email": "",
	        "password": "",
	        "id": 1,
	        "default_profile": "personal",
	        "profiles": {
	            "personal": {
	                "description": "",
	                "accounts": {
	                    "cash": {
	                        "balance": 100,
	                        "description": "",
	                        "transactions": {
	                            "incomes": [
	                                {
	                                    "id": "broken-1",
	                                    "user_id": "alice",
	                                    "category": "incomes",
	                                    "amount": 100,
	                                    "time": "2024-03-05"
	                                }
	                            ],
	                            "expenses": [],
	                            "transfers": []
	                        }
	                    }
	                }
	            }
	        }
	    }
	}`

	s, err := DecodeStore(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("DecodeStore failed: %v", err)
	}
	if _, err := s.Rollback("broken-1"); !errors.Is(err, ErrIntegrity) {
		t.Errorf("Rollback(income without debited account) = %v, want ErrIntegrity", err)
	}
}

func TestStore_Rollback_Overdraft(t *testing.T) {
	s := newTestStore(t)

	income, err := s.Record("alice", "personal", Draft{
		Category:       Incomes,
		Amount:         M(50, ""),
		AccountDebited: "cash",
	})
	if err != nil {
		t.Fatalf("Record(income) failed: %v", err)
	}
	// Spend the income, so undoing it would overdraw cash.
	if _, err := s.Record("alice", "personal", Draft{
		Category:        Expenses,
		Amount:          M(120, ""),
		AccountCredited: "cash",
	}); err != nil {
		t.Fatalf("Record(expense) failed: %v", err)
	}
	before := snapshotBytes(t, s)

	if _, err := s.Rollback(income.ID); !errors.Is(err, ErrIntegrity) {
		t.Errorf("Rollback(spent income) = %v, want ErrIntegrity", err)
	}
	if after := snapshotBytes(t, s); !bytes.Equal(before, after) {
		t.Error("store changed after a rejected rollback")
	}
}
