package purge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func staticEntity(name string, id int) *Entity {
	return NewEntity(name, func() (int, error) { return id, nil })
}

func TestNewPolicy_ThresholdShorthand(t *testing.T) {
	t.Run("true maps to default threshold", func(t *testing.T) {
		p, err := NewPolicy(KindUser, Options{UnlessSystem: true}, nil)
		assert.NoError(t, err)
		if assert.NotNil(t, p.SystemThreshold) {
			assert.Equal(t, DefaultSystemThreshold, *p.SystemThreshold)
		}
	})

	t.Run("false disables the rule", func(t *testing.T) {
		p, err := NewPolicy(KindUser, Options{UnlessSystem: false}, nil)
		assert.NoError(t, err)
		assert.Nil(t, p.SystemThreshold)
	})

	t.Run("integer is taken verbatim", func(t *testing.T) {
		p, err := NewPolicy(KindUser, Options{UnlessSystem: 1000}, nil)
		assert.NoError(t, err)
		if assert.NotNil(t, p.SystemThreshold) {
			assert.Equal(t, 1000, *p.SystemThreshold)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := NewPolicy(KindUser, Options{UnlessSystem: []any{1}}, nil)
		assert.Error(t, err)
	})
}

func TestNewPolicy_ConflictingRules(t *testing.T) {
	for _, kind := range Kinds() {
		_, err := NewPolicy(kind, Options{
			OnlyIDs:    "1000..2000",
			ExcludeIDs: "3000",
		}, nil)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrConflictingRules), "kind %s: expected ErrConflictingRules, got %v", kind, err)
	}
}

func TestNewPolicy_ThresholdOverlap(t *testing.T) {
	// 100 is at or below the threshold; the 600 upper bound is irrelevant.
	for _, kind := range Kinds() {
		_, err := NewPolicy(kind, Options{
			UnlessSystem: 500,
			OnlyIDs:      "100,200..600",
		}, nil)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrThresholdOverlap), "kind %s: expected ErrThresholdOverlap, got %v", kind, err)
	}

	// All of only_ids above the threshold is fine.
	_, err := NewPolicy(KindUser, Options{
		UnlessSystem: 500,
		OnlyIDs:      "501..600",
	}, nil)
	assert.NoError(t, err)
}

func TestDecide_SystemThreshold(t *testing.T) {
	p, err := NewPolicy(KindUser, Options{UnlessSystem: 500}, nil)
	assert.NoError(t, err)

	for _, id := range []int{0, 1, 499, 500} {
		d, err := p.Decide(staticEntity("someone", id))
		assert.NoError(t, err)
		assert.False(t, d.Purge, "id %d must be kept", id)
		assert.Equal(t, "at or below system threshold", d.Reason)
	}

	for _, id := range []int{501, 1000, 65534} {
		d, err := p.Decide(staticEntity("someone", id))
		assert.NoError(t, err)
		assert.True(t, d.Purge, "id %d must be purged", id)
	}
}

func TestDecide_ProtectedNamesAlwaysWin(t *testing.T) {
	// Even an only_ids allowlist containing the id cannot purge a
	// protected name.
	p, err := NewPolicy(KindUser, Options{OnlyIDs: "0..99999"}, []string{"root"})
	assert.NoError(t, err)

	d, err := p.Decide(staticEntity("root", 0))
	assert.NoError(t, err)
	assert.False(t, d.Purge)
	assert.Equal(t, "hardcoded system entity", d.Reason)

	// Protected names never need the id at all.
	exploding := NewEntity("root", func() (int, error) {
		t.Fatal("id resolved for a name-protected entity")
		return 0, nil
	})
	d, err = p.Decide(exploding)
	assert.NoError(t, err)
	assert.False(t, d.Purge)
}

func TestDecide_OnlyIDsIsExhaustive(t *testing.T) {
	// only_ids ignores the threshold entirely: membership alone decides.
	p, err := NewPolicy(KindUser, Options{
		UnlessSystem: 500,
		OnlyIDs:      "2000..2005",
	}, nil)
	assert.NoError(t, err)

	inside, err := p.Decide(staticEntity("a", 2003))
	assert.NoError(t, err)
	assert.True(t, inside.Purge)

	outside, err := p.Decide(staticEntity("b", 9000))
	assert.NoError(t, err)
	assert.False(t, outside.Purge)
	assert.Equal(t, "not in only-id allowlist", outside.Reason)
}

func TestDecide_ExcludeAndThresholdCompose(t *testing.T) {
	p, err := NewPolicy(KindGroup, Options{
		UnlessSystem: 500,
		ExcludeIDs:   "1000",
	}, nil)
	assert.NoError(t, err)

	// Either rule can save an entity.
	tests := []struct {
		id    int
		purge bool
	}{
		{10, false},   // below threshold
		{600, true},   // no rule applies
		{1000, false}, // excluded by id
		{1001, true},  // no rule applies
	}
	for _, tt := range tests {
		d, err := p.Decide(staticEntity("g", tt.id))
		assert.NoError(t, err)
		assert.Equal(t, tt.purge, d.Purge, "id %d", tt.id)
	}
}

func TestDecide_NoRulesMeansPurge(t *testing.T) {
	p, err := NewPolicy(KindUser, Options{}, nil)
	assert.NoError(t, err)

	d, err := p.Decide(staticEntity("drifter", 1234))
	assert.NoError(t, err)
	assert.True(t, d.Purge)

	// No rule needs the id, so resolution must not run.
	lazy := NewEntity("drifter", func() (int, error) {
		t.Fatal("id resolved although no rule needs it")
		return 0, nil
	})
	d, err = p.Decide(lazy)
	assert.NoError(t, err)
	assert.True(t, d.Purge)
}

func TestDecide_ResolutionFailureIsReturned(t *testing.T) {
	p, err := NewPolicy(KindUser, Options{UnlessSystem: 500}, nil)
	assert.NoError(t, err)

	boom := errors.New("nss lookup failed")
	e := NewEntity("ghost", func() (int, error) { return 0, boom })

	_, err = p.Decide(e)
	assert.ErrorIs(t, err, boom)
}

func TestEntity_IDResolvedOnce(t *testing.T) {
	calls := 0
	e := NewEntity("cached", func() (int, error) {
		calls++
		return 42, nil
	})

	for range 3 {
		id, err := e.ID()
		assert.NoError(t, err)
		assert.Equal(t, 42, id)
	}
	assert.Equal(t, 1, calls)
}
