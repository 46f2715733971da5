package finbook

import (
	"fmt"
	"slices"
	"sort"

	"golang.org/x/exp/maps"
)

// Uncategorized is the bucket for transactions without a subcategory.
const Uncategorized = "Uncategorized"

// Filter restricts a transaction query. Zero fields mean "no restriction":
// an empty Account pools every account of the profile, an empty Category
// pools all three logs, a zero Limit keeps every match.
//
// Time bounds are inclusive at day granularity. A zero From with a set To
// is invalid; a set From with a zero To is implicitly bounded at today.
type Filter struct {
	Account     string
	Category    Category
	Subcategory string
	Limit       int
	From, To    Date
}

// Transactions returns the profile's transactions matching the filter, in
// log-append order per account. Callers should not assume any further
// ordering unless they aggregate the result.
func (s *Store) Transactions(username, profile string, f Filter) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.To.IsZero() && f.From.IsZero() {
		return nil, fmt.Errorf("%w: 'from' cannot be empty if 'to' is specified", ErrInvalidArgument)
	}

	categories := Categories()
	if f.Category != "" {
		if _, err := ParseCategory(string(f.Category)); err != nil {
			return nil, err
		}
		categories = []Category{f.Category}
	}

	p, err := s.profile(username, profile)
	if err != nil {
		return nil, err
	}

	accounts := []*Account{}
	if f.Account != "" {
		a, err := p.account(f.Account)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	} else {
		names := maps.Keys(p.accounts)
		slices.Sort(names)
		for _, name := range names {
			accounts = append(accounts, p.accounts[name])
		}
	}

	var transactions []Transaction
	for _, a := range accounts {
		for _, c := range categories {
			transactions = append(transactions, a.logs[c]...)
		}
	}

	if f.Subcategory != "" {
		transactions = slices.DeleteFunc(transactions, func(t Transaction) bool {
			return t.Subcategory != f.Subcategory
		})
	}

	if !f.From.IsZero() {
		to := f.To
		if to.IsZero() {
			to = Today()
		}
		// Bounds are taken as given: an inverted range contains no day,
		// so it matches nothing rather than silently swapping.
		rng := Range{From: f.From, To: to}
		transactions = slices.DeleteFunc(transactions, func(t Transaction) bool {
			return !rng.Contains(t.Date)
		})
	}

	if f.Limit > 0 && len(transactions) > f.Limit {
		transactions = transactions[:f.Limit]
	}
	return transactions, nil
}

// SumAmounts computes the sum of the amounts of all the given transactions.
func SumAmounts(transactions []Transaction) Money {
	var total Money
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// SubcategoryTotal is a subcategory bucket and the summed amount of its
// transactions.
type SubcategoryTotal struct {
	Subcategory string
	Total       Money
}

// TotalsBySubcategory groups transactions by subcategory (those without
// one fall into the Uncategorized bucket), sums amounts per bucket, and
// returns the buckets sorted by descending total. The sort is stable, so
// ties keep first-encountered order. A positive topN keeps only the N
// largest buckets; the cut happens after sorting so the result is the true
// top N by amount.
func TotalsBySubcategory(transactions []Transaction, topN int) []SubcategoryTotal {
	index := make(map[string]int)
	var totals []SubcategoryTotal
	for _, t := range transactions {
		name := t.Subcategory
		if name == "" {
			name = Uncategorized
		}
		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, SubcategoryTotal{Subcategory: name})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	if topN > 0 && len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}
