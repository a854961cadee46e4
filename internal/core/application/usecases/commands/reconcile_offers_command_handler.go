package commands

import (
	"context"
)

type ReconcileOffersCommandHandler struct {
	uowFactory UoWFactory
}

func NewReconcileOffersCommandHandler(uowFactory UoWFactory) ReconcileOffersCommandHandler {
	return ReconcileOffersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of offers it superseded.
func (h ReconcileOffersCommandHandler) Handle(ctx context.Context, cmd ReconcileOffersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	count, err := uow.JobRepository().SupersedeStaleOffers(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return count, nil
}
