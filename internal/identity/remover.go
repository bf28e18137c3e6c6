package identity

import (
	"fmt"
	"strings"

	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/purge"
	"github.com/ChrisPortman/puppet/internal/utils"
)

// Remover implements the purge execution boundary with userdel/groupdel
// through the transport.
type Remover struct{}

// Supported reports whether the kind can be driven to an absent state.
func (Remover) Supported(kind purge.Kind) bool {
	switch kind {
	case purge.KindUser, purge.KindGroup:
		return true
	}
	return false
}

// ValidateAbsent confirms, without committing anything, that the entity
// accepts the terminal absent state: the name must be a lawful system
// identifier and the delete tool must exist on the target.
func (Remover) ValidateAbsent(ctx *core.SystemContext, kind purge.Kind, e *purge.Entity) error {
	cmd, err := deleteCommand(kind, e.Name)
	if err != nil {
		return err
	}
	bin, _, _ := strings.Cut(cmd, " ")
	if _, err := ctx.Transport.Execute(ctx.Context, "command -v "+bin); err != nil {
		return fmt.Errorf("%s is not available on the target: %w", bin, err)
	}
	return nil
}

// Apply performs one removal. DryRun (from the context) and the action's
// inherited NoOp flag both downgrade it to a simulation.
func (Remover) Apply(ctx *core.SystemContext, a purge.Action) (core.Result, error) {
	cmd, err := deleteCommand(a.Kind, a.Entity.Name)
	if err != nil {
		return core.Failure(err, "Refusing removal"), err
	}

	if a.NoOp || ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[DryRun] %s %s would be removed", a.Kind, a.Entity.Name)), nil
	}

	if out, err := ctx.Transport.Execute(ctx.Context, cmd); err != nil {
		return core.Failure(err, fmt.Sprintf("Failed to remove %s %s: %s", a.Kind, a.Entity.Name, out)), err
	}
	return core.SuccessChange(fmt.Sprintf("%s %s removed", a.Kind, a.Entity.Name)), nil
}

// deleteCommand builds the removal command for a kind. Names are validated
// before being interpolated into a shell command line.
func deleteCommand(kind purge.Kind, name string) (string, error) {
	if !utils.IsValidName(name) {
		return "", fmt.Errorf("refusing to remove %q: not a valid system name", name)
	}
	switch kind {
	case purge.KindUser:
		return "userdel " + name, nil
	case purge.KindGroup:
		return "groupdel " + name, nil
	}
	return "", fmt.Errorf("%w: %s", purge.ErrUnsupportedKind, kind)
}
