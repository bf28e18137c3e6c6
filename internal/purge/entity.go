package purge

import "sync"

// Entity is a live, undeclared object being evaluated for purge. Its
// numeric identifier is resolved lazily through the resolver and cached:
// resolution may be an expensive external lookup, and several rules may
// need the id during one decision.
type Entity struct {
	Name string

	resolve func() (int, error)
	once    sync.Once
	id      int
	err     error
}

// NewEntity builds an entity whose id is produced by resolve on first use.
func NewEntity(name string, resolve func() (int, error)) *Entity {
	return &Entity{Name: name, resolve: resolve}
}

// ID resolves the numeric identifier at most once per run.
func (e *Entity) ID() (int, error) {
	e.once.Do(func() {
		e.id, e.err = e.resolve()
	})
	return e.id, e.err
}
