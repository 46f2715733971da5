package finbook

import "errors"

// Sentinel errors returned by store operations. They are always wrapped
// with context via fmt.Errorf("%w: ..."), so callers match them with
// errors.Is.
var (
	// ErrExists reports a name collision: username, profile or account
	// already taken.
	ErrExists = errors.New("already exists")

	// ErrNotFound reports a reference to an unknown user, profile, account
	// or transaction.
	ErrNotFound = errors.New("not found")

	// ErrIntegrity reports an operation that would leave the ledger
	// inconsistent: wrong accounts for a category, a balance driven below
	// zero, or a default profile that does not exist.
	ErrIntegrity = errors.New("integrity violation")

	// ErrInvalidArgument reports malformed input: an unknown category, a
	// non-positive amount, or an upper date bound without a lower one.
	ErrInvalidArgument = errors.New("invalid argument")
)
