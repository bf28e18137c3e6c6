package purge

import (
	"fmt"
	"iter"

	"github.com/ChrisPortman/puppet/internal/core"
)

// Inspector enumerates live, on-machine entities of a kind. Candidates
// yields entities lazily, in system enumeration order, so memory stays
// bounded under large candidate sets.
type Inspector interface {
	Candidates(ctx *core.SystemContext, kind Kind) (iter.Seq[*Entity], error)
}

// Catalog answers whether an entity is already declared in the manifest.
// Implementations must be pure: the decider's determinism depends on it.
type Catalog interface {
	IsDeclared(kind Kind, name string) bool
}

// Remover is the execution boundary for purges: capability checks,
// speculative validation, and the actual removal.
type Remover interface {
	// Supported reports whether the kind has a terminal absent state at
	// all. This is a capability check, done once per run.
	Supported(kind Kind) bool

	// ValidateAbsent checks, without committing anything, that the entity
	// accepts the terminal absent state.
	ValidateAbsent(ctx *core.SystemContext, kind Kind, e *Entity) error

	// Apply performs one removal. Each call is independently fallible.
	Apply(ctx *core.SystemContext, a Action) (core.Result, error)
}

// Action is one planned purge. NoOp is inherited from the governing run
// configuration and tells the remover to simulate instead of delete.
type Action struct {
	Kind   Kind
	Entity *Entity
	Reason string
	NoOp   bool
}

// Kept records an entity that was evaluated but protected, with the
// exemption reason.
type Kept struct {
	Name   string
	Reason string
}

// Report collects the outcome of planning one kind. Actions preserves the
// candidate enumeration order. Errors holds the per-entity failures that
// were skipped over.
type Report struct {
	Kind    Kind
	Actions []Action
	Kept    []Kept
	Errors  []*EntityError
}

// Decider drives the per-kind pipeline: enumerate candidates, drop the
// declared ones, apply the exemption policy, emit actions. It holds no
// state across candidates; each decision depends only on its own entity
// and the policy.
type Decider struct {
	Policy    *Policy
	Inspector Inspector
	Catalog   Catalog
	Remover   Remover
	NoOp      bool
}

// Plan produces the full, ordered action list for one kind. The whole
// plan is built before anything is applied, so a later candidate's
// failure can never leave an earlier one half-purged. Per-entity failures
// are recorded in the report and skipped; they never abort the batch.
func (d *Decider) Plan(ctx *core.SystemContext) (*Report, error) {
	kind := d.Policy.Kind

	if !d.Remover.Supported(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	candidates, err := d.Inspector.Candidates(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s candidates: %w", kind, err)
	}

	report := &Report{Kind: kind}
	for e := range candidates {
		// Declared entities are under management elsewhere, never a
		// purge target.
		if d.Catalog.IsDeclared(kind, e.Name) {
			continue
		}

		if err := d.Remover.ValidateAbsent(ctx, kind, e); err != nil {
			report.Errors = append(report.Errors, &EntityError{Kind: kind, Name: e.Name, Err: err})
			continue
		}

		decision, err := d.Policy.Decide(e)
		if err != nil {
			report.Errors = append(report.Errors, &EntityError{Kind: kind, Name: e.Name, Err: err})
			continue
		}

		if decision.Purge {
			report.Actions = append(report.Actions, Action{Kind: kind, Entity: e, Reason: decision.Reason, NoOp: d.NoOp})
		} else {
			report.Kept = append(report.Kept, Kept{Name: e.Name, Reason: decision.Reason})
		}
	}

	return report, nil
}
