package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ChrisPortman/puppet/internal/config"
	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/identity"
	"github.com/ChrisPortman/puppet/internal/purge"
)

// buildDeciders assembles one decider per enabled purge block. Policy
// construction fails fast: any configuration conflict aborts the run
// before a single candidate is looked at.
func buildDeciders(ctx *core.SystemContext, cfg *config.Config, noop bool) ([]*purge.Decider, error) {
	catalog := cfg.Declared()

	var deciders []*purge.Decider
	for _, kind := range purge.Kinds() {
		pc, ok := cfg.Purge[string(kind)]
		if !ok || !pc.Enabled {
			continue
		}

		if pc.When != "" {
			met, err := core.EvaluateCondition(pc.When, ctx)
			if err != nil {
				return nil, fmt.Errorf("[%s] %w", kind, err)
			}
			if !met {
				slog.Info("purge condition not met, skipping kind", "kind", kind, "when", pc.When)
				continue
			}
		}

		policy, err := purge.NewPolicy(kind, purge.Options{
			UnlessSystem: pc.UnlessSystem,
			OnlyIDs:      pc.OnlyIDs,
			ExcludeIDs:   pc.ExcludeIDs,
		}, purge.DefaultProtected(kind))
		if err != nil {
			return nil, err
		}

		deciders = append(deciders, &purge.Decider{
			Policy:    policy,
			Inspector: identity.Inspector{},
			Catalog:   catalog,
			Remover:   identity.Remover{},
			NoOp:      noop,
		})
	}
	return deciders, nil
}
