// Package idset parses and represents immutable sets of non-negative
// numeric identifiers (uids, gids), written as discrete values and
// inclusive lo..hi ranges.
package idset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec reports a malformed id or range token.
var ErrInvalidSpec = errors.New("invalid id spec")

// SpecError carries the offending token alongside ErrInvalidSpec.
type SpecError struct {
	Token  string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid id spec %q: %s", e.Token, e.Reason)
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

type span struct {
	lo, hi int
}

// Set is an immutable set of non-negative ids, stored as the union of
// discrete values and inclusive ranges.
type Set struct {
	ids   []int
	spans []span
}

// Parse normalizes the accepted grammar into a Set. It accepts:
//   - a comma-separated string: "10,20..25,30"
//   - a single integer
//   - a sequence mixing integers, strings and sub-sequences
//     (one level of nesting is flattened)
//   - nil, yielding an empty set
//
// Anything else fails with a *SpecError wrapping ErrInvalidSpec.
func Parse(spec any) (*Set, error) {
	s := &Set{}
	if err := s.add(spec, false); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) add(spec any, nested bool) error {
	switch v := spec.(type) {
	case nil:
		return nil
	case int:
		return s.addValue(v, strconv.Itoa(v))
	case int64:
		return s.addValue(int(v), strconv.FormatInt(v, 10))
	case uint64:
		return s.addValue(int(v), strconv.FormatUint(v, 10))
	case string:
		for _, tok := range strings.Split(v, ",") {
			if err := s.addToken(tok); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if nested {
			return &SpecError{Token: fmt.Sprint(v), Reason: "sequences may only be nested one level deep"}
		}
		for _, item := range v {
			if err := s.add(item, true); err != nil {
				return err
			}
		}
		return nil
	case []int:
		for _, id := range v {
			if err := s.addValue(id, strconv.Itoa(id)); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, str := range v {
			if err := s.add(str, true); err != nil {
				return err
			}
		}
		return nil
	default:
		return &SpecError{Token: fmt.Sprint(v), Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

func (s *Set) addValue(id int, token string) error {
	if id < 0 {
		return &SpecError{Token: token, Reason: fmt.Sprintf("id %d is negative", id)}
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *Set) addToken(tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return &SpecError{Token: tok, Reason: "empty token"}
	}

	if lo, hi, found := strings.Cut(tok, ".."); found {
		loVal, err := parseID(lo)
		if err != nil {
			return &SpecError{Token: tok, Reason: err.Error()}
		}
		hiVal, err := parseID(hi)
		if err != nil {
			return &SpecError{Token: tok, Reason: err.Error()}
		}
		if loVal > hiVal {
			return &SpecError{Token: tok, Reason: "range lower bound exceeds upper bound"}
		}
		s.spans = append(s.spans, span{lo: loVal, hi: hiVal})
		return nil
	}

	id, err := parseID(tok)
	if err != nil {
		return &SpecError{Token: tok, Reason: err.Error()}
	}
	s.ids = append(s.ids, id)
	return nil
}

func parseID(str string) (int, error) {
	str = strings.TrimSpace(str)
	id, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", str)
	}
	if id < 0 {
		return 0, fmt.Errorf("id %d is negative", id)
	}
	return id, nil
}

// Contains reports whether id equals any discrete value or falls within
// any range, inclusive on both ends.
func (s *Set) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	for _, sp := range s.spans {
		if id >= sp.lo && id <= sp.hi {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set holds no values and no ranges.
func (s *Set) IsEmpty() bool {
	return len(s.ids) == 0 && len(s.spans) == 0
}

// Min returns the smallest value reachable from the set. The second return
// is false for an empty set.
func (s *Set) Min() (int, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	min := -1
	for _, v := range s.ids {
		if min < 0 || v < min {
			min = v
		}
	}
	for _, sp := range s.spans {
		if min < 0 || sp.lo < min {
			min = sp.lo
		}
	}
	return min, true
}

// String renders the set back into the comma-separated spec form,
// in insertion order (values first, then ranges).
func (s *Set) String() string {
	var parts []string
	for _, v := range s.ids {
		parts = append(parts, strconv.Itoa(v))
	}
	for _, sp := range s.spans {
		parts = append(parts, fmt.Sprintf("%d..%d", sp.lo, sp.hi))
	}
	return strings.Join(parts, ",")
}
