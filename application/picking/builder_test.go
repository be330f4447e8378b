package picking

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	inventorymocks "github.com/muhammadheryan/picking-engine/mocks/repository/inventory"
	"github.com/muhammadheryan/picking-engine/model"
)

func TestBuildPickingList(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates shared sku across orders", func(t *testing.T) {
		invRepo := inventorymocks.NewInventoryRepository(t)
		invRepo.On("GetBestLocation", ctx, "SKU-A", uint64(7)).Return(&model.SKULocation{
			SKU: "SKU-A", ProductName: "Widget", Barcode: "123", Zone: "A", Aisle: "A-01", Rack: "R1",
		}, nil).Once()
		invRepo.On("GetBestLocation", ctx, "SKU-B", uint64(7)).Return(&model.SKULocation{
			SKU: "SKU-B", ProductName: "Gadget", Barcode: "456", Zone: "A", Aisle: "A-02", Rack: "R2",
		}, nil).Once()

		app := &pickingAppImpl{inventoryRepo: invRepo}
		orders := []model.Order{
			{ID: 101, OrderNumber: "SO-101", Items: []model.OrderLineItem{{SKU: "SKU-A", Quantity: 2}}},
			{ID: 102, OrderNumber: "SO-102", Items: []model.OrderLineItem{
				{SKU: "SKU-A", Quantity: 3},
				{SKU: "SKU-B", Quantity: 1},
			}},
		}

		items, err := app.buildPickingList(ctx, orders, 7)
		if err != nil {
			t.Fatalf("buildPickingList() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("items = %d, want 2", len(items))
		}

		shared := items[0]
		if shared.SKU != "SKU-A" || shared.Quantity != 5 {
			t.Fatalf("SKU-A quantity = %d, want 5", shared.Quantity)
		}
		if len(shared.Contributions) != 2 {
			t.Fatalf("SKU-A contributions = %d, want 2", len(shared.Contributions))
		}
		if shared.Contributions[0].OrderID != 101 || shared.Contributions[0].Quantity != 2 {
			t.Errorf("first contribution = %+v, want order 101 qty 2", shared.Contributions[0])
		}
		if shared.Contributions[1].OrderID != 102 || shared.Contributions[1].Quantity != 3 {
			t.Errorf("second contribution = %+v, want order 102 qty 3", shared.Contributions[1])
		}
		if shared.Name != "Widget" || shared.Barcode != "123" {
			t.Errorf("location resolution = %s/%s, want Widget/123", shared.Name, shared.Barcode)
		}
	})

	t.Run("merges duplicate lines of one order into a single contribution", func(t *testing.T) {
		invRepo := inventorymocks.NewInventoryRepository(t)
		invRepo.On("GetBestLocation", ctx, "SKU-A", uint64(7)).Return(&model.SKULocation{
			SKU: "SKU-A", ProductName: "Widget",
		}, nil).Once()

		app := &pickingAppImpl{inventoryRepo: invRepo}
		orders := []model.Order{
			{ID: 101, OrderNumber: "SO-101", Items: []model.OrderLineItem{
				{SKU: "SKU-A", Quantity: 2},
				{SKU: "sku-a", Quantity: 1},
			}},
		}

		items, err := app.buildPickingList(ctx, orders, 7)
		if err != nil {
			t.Fatalf("buildPickingList() error = %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("items = %d, want 1", len(items))
		}
		if items[0].Quantity != 3 {
			t.Errorf("quantity = %d, want 3", items[0].Quantity)
		}
		if len(items[0].Contributions) != 1 || items[0].Contributions[0].Quantity != 3 {
			t.Errorf("contributions = %+v, want single entry qty 3", items[0].Contributions)
		}
	})

	t.Run("sku without inventory record falls back to sku name and no location", func(t *testing.T) {
		invRepo := inventorymocks.NewInventoryRepository(t)
		invRepo.On("GetBestLocation", ctx, "GHOST", uint64(7)).Return(nil, sql.ErrNoRows).Once()

		app := &pickingAppImpl{inventoryRepo: invRepo}
		orders := []model.Order{
			{ID: 101, OrderNumber: "SO-101", Items: []model.OrderLineItem{{SKU: "GHOST", Quantity: 1}}},
		}

		items, err := app.buildPickingList(ctx, orders, 7)
		if err != nil {
			t.Fatalf("buildPickingList() error = %v", err)
		}
		if items[0].Name != "GHOST" {
			t.Errorf("name = %s, want GHOST", items[0].Name)
		}
		if items[0].HasLocation() {
			t.Error("item should have no location")
		}
		if items[0].LocationCode() != model.LocationUnassigned {
			t.Errorf("location code = %s, want %s", items[0].LocationCode(), model.LocationUnassigned)
		}
	})

	t.Run("inventory error aborts the build", func(t *testing.T) {
		invRepo := inventorymocks.NewInventoryRepository(t)
		invRepo.On("GetBestLocation", ctx, "SKU-A", uint64(7)).Return(nil, errors.New("db error")).Once()

		app := &pickingAppImpl{inventoryRepo: invRepo}
		orders := []model.Order{
			{ID: 101, OrderNumber: "SO-101", Items: []model.OrderLineItem{{SKU: "SKU-A", Quantity: 1}}},
		}

		if _, err := app.buildPickingList(ctx, orders, 7); err == nil {
			t.Fatal("buildPickingList() expected error")
		}
	})
}
