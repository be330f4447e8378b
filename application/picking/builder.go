package picking

import (
	"context"
	"database/sql"
	"strings"

	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
	"github.com/muhammadheryan/picking-engine/utils/logger"
	"go.uber.org/zap"
)

// buildPickingList aggregates line items across the selected orders by sku.
// The first order to mention a sku seeds the entry and resolves its
// highest-stock location; later mentions only add quantity and a
// contribution record. Iteration follows the orders slice so contribution
// order is deterministic.
func (a *pickingAppImpl) buildPickingList(ctx context.Context, orders []model.Order, warehouseID uint64) ([]model.PickingListItem, error) {
	items := make([]model.PickingListItem, 0)
	index := make(map[string]int)

	for _, o := range orders {
		for _, line := range o.Items {
			key := strings.ToUpper(line.SKU)
			if i, ok := index[key]; ok {
				items[i].Quantity += line.Quantity
				appendContribution(&items[i], o.ID, o.OrderNumber, line.Quantity)
				continue
			}

			loc, err := a.inventoryRepo.GetBestLocation(ctx, line.SKU, warehouseID)
			if err == sql.ErrNoRows {
				// Unknown to inventory: pickable by sku only, routed last.
				logger.Warn("[BuildPickingList] sku has no inventory record", zap.String("sku", line.SKU))
				loc = &model.SKULocation{SKU: line.SKU, ProductName: line.SKU}
			} else if err != nil {
				return nil, err
			}

			item := model.PickingListItem{
				SKU:      line.SKU,
				Name:     loc.ProductName,
				Barcode:  loc.Barcode,
				Quantity: line.Quantity,
				Zone:     loc.Zone,
				Aisle:    loc.Aisle,
				Rack:     loc.Rack,
				Shelf:    loc.Shelf,
				Bin:      loc.Bin,
				Status:   constant.ItemStatusPending,
			}
			appendContribution(&item, o.ID, o.OrderNumber, line.Quantity)
			index[key] = len(items)
			items = append(items, item)
		}
	}

	return items, nil
}

// appendContribution merges duplicate lines of one order into a single
// contribution so an order never contributes twice to the same sku.
func appendContribution(item *model.PickingListItem, orderID uint64, orderNumber string, quantity int) {
	for i := range item.Contributions {
		if item.Contributions[i].OrderID == orderID {
			item.Contributions[i].Quantity += quantity
			return
		}
	}
	item.Contributions = append(item.Contributions, model.OrderContribution{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Quantity:    quantity,
	})
}
