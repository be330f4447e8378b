package inventory

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/picking-engine/model"
)

type SQL struct {
	conn *sqlx.DB
}

// InventoryRepository resolves skus to warehouse locations. The engine only
// reads inventory; replenishment belongs to the inventory system.
type InventoryRepository interface {
	GetBestLocation(ctx context.Context, sku string, warehouseID uint64) (*model.SKULocation, error)
}

func NewInventoryRepository(conn *sqlx.DB) InventoryRepository {
	return &SQL{conn: conn}
}

const getBestLocation = `SELECT p.sku, p.name as product_name, p.barcode,
COALESCE(pl.zone,'') as zone, COALESCE(pl.aisle,'') as aisle, COALESCE(pl.rack,'') as rack,
COALESCE(pl.shelf,'') as shelf, COALESCE(pl.bin,'') as bin, COALESCE(pl.available_qty,0) as available_qty
FROM product p
LEFT JOIN product_location pl ON pl.sku = p.sku AND pl.warehouse_id = ?
WHERE p.sku = ?
ORDER BY pl.available_qty DESC
LIMIT 1`

// GetBestLocation returns the highest-stock location for a sku in a warehouse.
// A sku stored in no bin still resolves (empty location fields, zero stock);
// an unknown sku returns sql.ErrNoRows.
func (r *SQL) GetBestLocation(ctx context.Context, sku string, warehouseID uint64) (*model.SKULocation, error) {
	var loc model.SKULocation
	if err := r.conn.QueryRowxContext(ctx, getBestLocation, warehouseID, sku).StructScan(&loc); err != nil {
		return nil, err
	}
	return &loc, nil
}
