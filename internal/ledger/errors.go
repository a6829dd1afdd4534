package ledger

import "errors"

// Error taxonomy for ledger operations. All of these are locally
// recoverable: the caller can retry with valid input. Handlers match with
// errors.Is to pick the HTTP status.
var (
	// ErrValidation marks malformed input (missing required fields, bad
	// enums, non-positive amounts). Rejected at ingestion, never enters
	// the replay.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds marks an operation needing more balance than
	// the wallet holds. No state change.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrIneligible marks an operation blocked by a ledger rule: lock
	// period active, nothing to withdraw, termination before day 30. The
	// wrapped message carries the specific user-facing reason.
	ErrIneligible = errors.New("operation not eligible")

	// ErrNotFound marks a reference to an unknown user or account.
	ErrNotFound = errors.New("not found")
)
