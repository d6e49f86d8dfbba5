package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("appointment not found")

	// ErrAmbiguousLedgerLink means more than one ledger transaction
	// claims the same related appointment. That state is already
	// corrupt, so it is surfaced instead of picking a row.
	ErrAmbiguousLedgerLink = errors.New("multiple transactions linked to one appointment")
)

// PartialCascadeError reports that the appointment write itself was
// committed but a cascaded write failed afterwards. The caller must
// treat the stores as inconsistent until corrected; no rollback is
// attempted.
type PartialCascadeError struct {
	Step string
	Err  error
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("appointment committed but %s cascade failed: %v", e.Step, e.Err)
}

func (e *PartialCascadeError) Unwrap() error { return e.Err }
