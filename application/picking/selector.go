package picking

import (
	"context"

	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
)

// selectOrders resolves the orders a new session will claim: the explicit id
// list when the caller supplies one, otherwise the eligible-order query
// (priority rank, then oldest first). Both paths return only unclaimed,
// organization-owned, warehouse-matched orders; an empty result is valid here
// and rejected by CreateSession.
func (a *pickingAppImpl) selectOrders(ctx context.Context, orgID uint64, req *model.CreateSessionRequest, maxOrders int) ([]model.Order, error) {
	if len(req.OrderIDs) > 0 {
		ids := req.OrderIDs
		if len(ids) > maxOrders {
			ids = ids[:maxOrders]
		}
		return a.orderRepo.GetUnclaimedOrdersByIDs(ctx, orgID, req.WarehouseID, ids)
	}

	filter := &model.OrderFilter{
		Carrier:  req.Carrier,
		Priority: constant.OrderPriority(req.Priority),
	}
	return a.orderRepo.SelectEligibleOrders(ctx, orgID, req.WarehouseID, filter, maxOrders)
}
