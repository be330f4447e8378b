package order

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	SelectEligibleOrders(ctx context.Context, orgID, warehouseID uint64, filter *model.OrderFilter, limit int) ([]model.Order, error)
	GetUnclaimedOrdersByIDs(ctx context.Context, orgID, warehouseID uint64, orderIDs []uint64) ([]model.Order, error)
	ClaimOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) (bool, error)
	ReleaseOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) (bool, error)
	MarkOrderPickedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	selectEligibleBase = "SELECT id, order_number, org_id, warehouse_id, priority, carrier, status, picking_session_id, created_at FROM `order` WHERE org_id = ? AND warehouse_id = ? AND status = ? AND picking_session_id IS NULL"

	// Urgent first, then by age so old orders are not starved.
	selectEligibleOrdering = " ORDER BY CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 WHEN 'low' THEN 3 ELSE 4 END, created_at ASC LIMIT ?"

	selectLineItems = "SELECT order_id, sku, quantity FROM order_item WHERE order_id IN (?) ORDER BY order_id, id"
)

func (r *SQL) SelectEligibleOrders(ctx context.Context, orgID, warehouseID uint64, filter *model.OrderFilter, limit int) ([]model.Order, error) {
	query := selectEligibleBase
	args := []interface{}{orgID, warehouseID, constant.OrderStatusPendingFulfillment}

	if filter != nil {
		if filter.Carrier != "" {
			query += " AND carrier = ?"
			args = append(args, filter.Carrier)
		}
		if filter.Priority != "" {
			query += " AND priority = ?"
			args = append(args, filter.Priority)
		}
	}
	query += selectEligibleOrdering
	args = append(args, limit)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.attachLineItems(ctx, orders)
}

func (r *SQL) GetUnclaimedOrdersByIDs(ctx context.Context, orgID, warehouseID uint64, orderIDs []uint64) ([]model.Order, error) {
	if len(orderIDs) == 0 {
		return []model.Order{}, nil
	}

	query, args, err := sqlx.In(selectEligibleBase+" AND id IN (?)", orgID, warehouseID, constant.OrderStatusPendingFulfillment, orderIDs)
	if err != nil {
		return nil, err
	}

	orders, err := r.queryOrders(ctx, r.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	// Preserve the caller's order so list aggregation stays deterministic.
	byID := make(map[uint64]model.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	sorted := make([]model.Order, 0, len(orders))
	for _, id := range orderIDs {
		if o, ok := byID[id]; ok {
			sorted = append(sorted, o)
		}
	}
	return r.attachLineItems(ctx, sorted)
}

func (r *SQL) queryOrders(ctx context.Context, query string, args ...interface{}) ([]model.Order, error) {
	rows, err := r.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.StructScan(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *SQL) attachLineItems(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uint64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(selectLineItems, ids)
	if err != nil {
		return nil, err
	}
	rows, err := r.conn.QueryxContext(ctx, r.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type lineRow struct {
		OrderID  uint64 `db:"order_id"`
		SKU      string `db:"sku"`
		Quantity int    `db:"quantity"`
	}
	byOrder := make(map[uint64][]model.OrderLineItem)
	for rows.Next() {
		var lr lineRow
		if err := rows.StructScan(&lr); err != nil {
			return nil, err
		}
		byOrder[lr.OrderID] = append(byOrder[lr.OrderID], model.OrderLineItem{SKU: lr.SKU, Quantity: lr.Quantity})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

// ClaimOrderTx attaches an order to a session only if no other session holds
// it. Returns false when the conditional update matched no row.
func (r *SQL) ClaimOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE `order` SET status = ?, picking_session_id = ? WHERE id = ? AND status = ? AND picking_session_id IS NULL",
		constant.OrderStatusPicking, sessionID, orderID, constant.OrderStatusPendingFulfillment)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ReleaseOrderTx returns an order to the pool only if this session holds it.
func (r *SQL) ReleaseOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE `order` SET status = ?, picking_session_id = NULL WHERE id = ? AND picking_session_id = ?",
		constant.OrderStatusPendingFulfillment, orderID, sessionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *SQL) MarkOrderPickedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, sessionID string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE `order` SET status = ? WHERE id = ? AND picking_session_id = ?",
		constant.OrderStatusPicked, orderID, sessionID)
	return err
}
