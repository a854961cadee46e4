package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrReconcileOffersCommandIsNotConstructed = errors.New(
	"ReconcileOffersCommand must be created via NewReconcileOffersCommand constructor",
)

// ReconcileOffersCommand retires live offers whose Original can no longer be
// assigned. It is idempotent and safe to run at any time.
type ReconcileOffersCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileOffersCommand() ReconcileOffersCommand {
	return ReconcileOffersCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileOffersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOffersCommandIsNotConstructed)
}
