package purge

import (
	"errors"
	"fmt"
)

// Configuration-time errors. These abort policy construction; no partial
// policy is ever handed to the decider.
var (
	// ErrConflictingRules: only_ids and exclude_ids are mutually exclusive.
	ErrConflictingRules = errors.New("only_ids and exclude_ids are mutually exclusive")

	// ErrThresholdOverlap: only_ids reaches into the protected system range.
	ErrThresholdOverlap = errors.New("only_ids overlaps the system threshold")

	// ErrUnsupportedKind: the kind has no terminal absent state to purge into.
	ErrUnsupportedKind = errors.New("entity kind does not support purging")
)

// EntityError records a single candidate's failure. The decider collects
// these in the Report and keeps going; they never abort the batch.
type EntityError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }
