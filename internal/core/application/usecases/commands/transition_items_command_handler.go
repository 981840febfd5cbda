package commands

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
)

// ItemTransitionResult is the per-item outcome of a batch transition.
// Exactly one of NewVersion and Err is meaningful.
type ItemTransitionResult struct {
	ItemID     kernel.UUID
	NewVersion int
	Err        error
}

// TransitionItemsCommandHandler applies a batch of transitions best-effort:
// requests are processed in submission order, each through the full
// single-item path, and one illegal request never blocks the rest.
type TransitionItemsCommandHandler struct {
	itemHandler *TransitionItemCommandHandler
}

// NewTransitionItemsCommandHandler creates a batch handler delegating to the
// given single-item handler.
func NewTransitionItemsCommandHandler(itemHandler *TransitionItemCommandHandler) TransitionItemsCommandHandler {
	return TransitionItemsCommandHandler{
		itemHandler: itemHandler,
	}
}

// Handle processes every request in the batch and returns one result per
// request, in submission order. The returned error covers only the batch
// envelope itself; per-item failures live in the result list.
func (h *TransitionItemsCommandHandler) Handle(
	ctx context.Context, cmd TransitionItemsCommand,
) ([]ItemTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	results := make([]ItemTransitionResult, 0, len(cmd.Requests()))
	for _, request := range cmd.Requests() {
		itemResult, err := h.itemHandler.Handle(ctx, request)
		if err != nil {
			results = append(results, ItemTransitionResult{
				ItemID: request.ItemID(),
				Err:    err,
			})
			continue
		}
		results = append(results, ItemTransitionResult{
			ItemID:     request.ItemID(),
			NewVersion: itemResult.NewVersion,
		})
	}

	return results, nil
}
