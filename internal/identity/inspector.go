// Package identity inspects and removes Linux users and groups through the
// transport layer.
package identity

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/purge"
)

// Inspector enumerates live users and groups with getent.
type Inspector struct{}

// database maps an entity kind to its NSS database.
func database(kind purge.Kind) (string, error) {
	switch kind {
	case purge.KindUser:
		return "passwd", nil
	case purge.KindGroup:
		return "group", nil
	}
	return "", fmt.Errorf("%w: %s", purge.ErrUnsupportedKind, kind)
}

// Candidates lists every entry in the kind's NSS database. Only the name
// is taken from the enumeration; the numeric id is resolved lazily per
// entity, the same way the single-entry lookups work.
func (Inspector) Candidates(ctx *core.SystemContext, kind purge.Kind) (iter.Seq[*purge.Entity], error) {
	db, err := database(kind)
	if err != nil {
		return nil, err
	}

	out, err := ctx.Transport.Execute(ctx.Context, "getent "+db)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s entries: %w", db, err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	return func(yield func(*purge.Entity) bool) {
		for _, line := range lines {
			// getent output format: name:x:id:...
			name, _, found := strings.Cut(line, ":")
			if !found || name == "" {
				continue
			}
			e := purge.NewEntity(name, idResolver(ctx, db, name))
			if !yield(e) {
				return
			}
		}
	}, nil
}

// idResolver defers the numeric id lookup until a policy actually needs
// it. The entity memoizes the result, so the query runs at most once per
// entity per run.
func idResolver(ctx *core.SystemContext, db, name string) func() (int, error) {
	return func() (int, error) {
		out, err := ctx.Transport.Execute(ctx.Context, "getent "+db+" "+name)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve id for %s: %w", name, err)
		}
		parts := strings.Split(strings.TrimSpace(out), ":")
		if len(parts) < 3 {
			return 0, fmt.Errorf("unexpected output from getent: %s", out)
		}
		id, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("non-numeric id %q for %s", parts[2], name)
		}
		return id, nil
	}
}
