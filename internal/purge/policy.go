package purge

import (
	"fmt"
	"strconv"

	"github.com/ChrisPortman/puppet/internal/idset"
)

// DefaultSystemThreshold is the id boundary used by the boolean shorthand:
// unless_system: true protects every id at or below this value.
const DefaultSystemThreshold = 500

// Options is the raw, stringly-typed configuration surface for a policy,
// as it arrives from the manifest. UnlessSystem accepts an integer
// threshold, a bool shorthand (true maps to DefaultSystemThreshold, false
// disables the rule) or nil. The id fields accept anything idset.Parse
// accepts.
type Options struct {
	UnlessSystem any
	OnlyIDs      any
	ExcludeIDs   any
}

// Policy is the per-kind exemption configuration deciding which undeclared
// entities may be purged. Construct it with NewPolicy; a Policy is
// validated once and immutable afterwards.
type Policy struct {
	Kind            Kind
	SystemThreshold *int
	OnlyIDs         *idset.Set
	ExcludeIDs      *idset.Set

	protected map[string]struct{}
}

// NewPolicy normalizes opts into a Policy and validates it immediately.
// protected is the hard-coded name deny-list for the kind (usually
// DefaultProtected(kind)); the policy keeps its own copy.
func NewPolicy(kind Kind, opts Options, protected []string) (*Policy, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	threshold, err := normalizeThreshold(opts.UnlessSystem)
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", kind, err)
	}

	only, err := idset.Parse(opts.OnlyIDs)
	if err != nil {
		return nil, fmt.Errorf("[%s] only_ids: %w", kind, err)
	}

	exclude, err := idset.Parse(opts.ExcludeIDs)
	if err != nil {
		return nil, fmt.Errorf("[%s] exclude_ids: %w", kind, err)
	}

	names := make(map[string]struct{}, len(protected))
	for _, n := range protected {
		names[n] = struct{}{}
	}

	p := &Policy{
		Kind:            kind,
		SystemThreshold: threshold,
		OnlyIDs:         only,
		ExcludeIDs:      exclude,
		protected:       names,
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func normalizeThreshold(v any) (*int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !t {
			return nil, nil
		}
		n := DefaultSystemThreshold
		return &n, nil
	case int:
		n := t
		return &n, nil
	case int64:
		n := int(t)
		return &n, nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("unless_system: %q is not an integer or bool", t)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("unless_system: unsupported value %v (%T)", v, v)
	}
}

// validate runs the cross-field checks once at construction. Both rules in
// conflict abort the policy; we never silently pick one over the other.
// The checks apply to every kind alike.
func (p *Policy) validate() error {
	if !p.OnlyIDs.IsEmpty() && !p.ExcludeIDs.IsEmpty() {
		return fmt.Errorf("[%s] %w", p.Kind, ErrConflictingRules)
	}
	if p.SystemThreshold != nil && !p.OnlyIDs.IsEmpty() {
		if min, ok := p.OnlyIDs.Min(); ok && min <= *p.SystemThreshold {
			return fmt.Errorf("[%s] %w: id %d is at or below threshold %d",
				p.Kind, ErrThresholdOverlap, min, *p.SystemThreshold)
		}
	}
	return nil
}

// Decision is the outcome for a single entity.
type Decision struct {
	Purge  bool
	Reason string
}

func keep(reason string) Decision {
	return Decision{Purge: false, Reason: reason}
}

// Decide classifies one undeclared entity. Precedence is fixed, first
// match wins:
//
//  1. hard-coded protected names (unconditional floor);
//  2. only_ids, if configured, is exhaustive: membership alone decides;
//  3. exclude_ids membership keeps the entity;
//  4. ids at or below the system threshold are kept;
//  5. otherwise the entity is purged.
//
// The numeric id is only resolved when a rule needs it; a failed
// resolution is returned as the error and counts as a per-entity failure.
func (p *Policy) Decide(e *Entity) (Decision, error) {
	if _, ok := p.protected[e.Name]; ok {
		return keep("hardcoded system entity"), nil
	}

	if !p.OnlyIDs.IsEmpty() {
		id, err := e.ID()
		if err != nil {
			return Decision{}, err
		}
		if p.OnlyIDs.Contains(id) {
			return Decision{Purge: true, Reason: "in only-id allowlist"}, nil
		}
		return keep("not in only-id allowlist"), nil
	}

	if !p.ExcludeIDs.IsEmpty() {
		id, err := e.ID()
		if err != nil {
			return Decision{}, err
		}
		if p.ExcludeIDs.Contains(id) {
			return keep("excluded by id"), nil
		}
	}

	if p.SystemThreshold != nil {
		id, err := e.ID()
		if err != nil {
			return Decision{}, err
		}
		if id <= *p.SystemThreshold {
			return keep("at or below system threshold"), nil
		}
	}

	return Decision{Purge: true, Reason: "no exemption applies"}, nil
}
