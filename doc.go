// Package finbook provides the ledger store of a personal finance tracker.
// It is designed to be local-first and auditable: all state lives in a
// single human-readable JSON snapshot under the user's control.
//
// The core functionalities include:
//   - Entity Store: typed records for users, their profiles, and the
//     balance-bearing accounts within each profile, held in an in-memory,
//     mutex-guarded store.
//   - Transaction Engine: the only path by which balances change. It
//     validates incomes, expenses and transfers against category rules and
//     the negative-balance guard before applying them atomically, and can
//     roll a recorded transaction back.
//   - Query Engine: read-only filtering of transaction logs by account,
//     category, subcategory and date range, with aggregation into
//     subcategory totals and period summaries.
//   - Persistence Adapter: whole-file snapshotting with atomic replace on
//     save and an explicit reload-before-read contract.
//
// This package serves as the foundational logic for the `fin` command-line
// tool; authentication and presentation are the caller's concern.
package finbook
