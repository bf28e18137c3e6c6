package config

import "github.com/ChrisPortman/puppet/internal/purge"

// Catalog is the desired-state lookup consumed by the purge decider. It is
// built once from the manifest and read-only afterwards.
type Catalog struct {
	declared map[string]struct{}
}

// Declared builds the catalog of managed entries. Entries with state
// "absent" are still declared: they are under management either way.
func (c *Config) Declared() *Catalog {
	cat := &Catalog{declared: make(map[string]struct{}, len(c.Resources))}
	for _, r := range c.Resources {
		cat.declared[r.Type+"/"+r.Name] = struct{}{}
	}
	return cat
}

// IsDeclared reports whether the named entity appears in the manifest.
func (cat *Catalog) IsDeclared(kind purge.Kind, name string) bool {
	_, ok := cat.declared[string(kind)+"/"+name]
	return ok
}
