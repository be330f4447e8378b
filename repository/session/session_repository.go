package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/picking-engine/model"
)

type SQL struct {
	conn *sqlx.DB
}

// SessionRepository is the durable tier of the session store. Sessions are
// normalized across child tables so a single-item scan touches single rows
// instead of rewriting a serialized blob.
type SessionRepository interface {
	InsertSessionTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error
	GetSessionByID(ctx context.Context, sessionID string) (*model.PickingSession, error)
	UpdateSessionStateTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error
	UpdateItemTx(ctx context.Context, tx *sqlx.Tx, sessionID string, item *model.PickingListItem) error
	UpdateCountersTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error
	UpdateSessionOrderTx(ctx context.Context, tx *sqlx.Tx, sessionID string, o *model.SessionOrder) error
	InsertSessionErrorTx(ctx context.Context, tx *sqlx.Tx, e *model.SessionError) error
	InsertSessionEventTx(ctx context.Context, tx *sqlx.Tx, e *model.SessionEvent) error
	ListSessionErrors(ctx context.Context, sessionID string) ([]model.SessionError, error)
	GetPickerPerformance(ctx context.Context, orgID, pickerID uint64, from, to time.Time) (*model.PickerPerformance, error)
	GetWarehouseDailyStats(ctx context.Context, orgID, warehouseID uint64, from, to time.Time) ([]model.WarehouseDailyStats, error)
}

func NewSessionRepository(conn *sqlx.DB) SessionRepository {
	return &SQL{conn: conn}
}

const (
	insertSession = `INSERT INTO picking_session
(id, org_id, warehouse_id, picker_id, picker_name, strategy_id, status,
 total_items, picked_items, total_orders, completed_orders, error_count, estimated_minutes, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertSessionOrder = `INSERT INTO picking_session_order
(session_id, order_id, order_number, picked, has_shortage) VALUES (?, ?, ?, ?, ?)`

	insertListItem = `INSERT INTO picking_list_item
(session_id, sku, name, barcode, quantity, picked_quantity, zone, aisle, rack, shelf, bin, status, sequence)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertContribution = `INSERT INTO picking_item_contribution
(session_id, sku, order_id, order_number, quantity, picked_quantity) VALUES (?, ?, ?, ?, ?, ?)`

	getSession = `SELECT id, org_id, warehouse_id, picker_id, picker_name, strategy_id, status,
total_items, picked_items, total_orders, completed_orders, error_count, estimated_minutes,
started_at, paused_at, resumed_at, completed_at, cancelled_at,
actual_minutes, items_per_minute, duration_ratio, accuracy_pct
FROM picking_session WHERE id = ?`

	getSessionOrders = `SELECT order_id, order_number, picked, has_shortage, picked_at
FROM picking_session_order WHERE session_id = ? ORDER BY id`

	getListItems = `SELECT sku, name, barcode, quantity, picked_quantity, zone, aisle, rack, shelf, bin, status, sequence
FROM picking_list_item WHERE session_id = ? ORDER BY sequence`

	getContributions = `SELECT sku, order_id, order_number, quantity, picked_quantity
FROM picking_item_contribution WHERE session_id = ? ORDER BY id`

	updateSessionState = `UPDATE picking_session SET status = ?,
paused_at = ?, resumed_at = ?, completed_at = ?, cancelled_at = ?,
actual_minutes = ?, items_per_minute = ?, duration_ratio = ?, accuracy_pct = ?
WHERE id = ?`

	updateListItem = `UPDATE picking_list_item SET picked_quantity = ?, status = ?
WHERE session_id = ? AND sku = ?`

	updateContribution = `UPDATE picking_item_contribution SET picked_quantity = ?
WHERE session_id = ? AND sku = ? AND order_id = ?`

	updateCounters = `UPDATE picking_session SET picked_items = ?, completed_orders = ?, error_count = ?
WHERE id = ?`

	updateSessionOrder = `UPDATE picking_session_order SET picked = ?, has_shortage = ?, picked_at = ?
WHERE session_id = ? AND order_id = ?`

	insertSessionError = `INSERT INTO picking_session_error (session_id, type, payload, created_at)
VALUES (?, ?, ?, ?)`

	insertSessionEvent = `INSERT INTO picking_session_event (session_id, type, payload, created_at)
VALUES (?, ?, ?, ?)`

	listSessionErrors = `SELECT id, session_id, type, payload, created_at
FROM picking_session_error WHERE session_id = ? ORDER BY id`

	pickerPerformanceQuery = `SELECT picker_id, picker_name,
COUNT(*) as sessions,
COALESCE(SUM(picked_items),0) as picked_items,
COALESCE(SUM(completed_orders),0) as completed_orders,
COALESCE(AVG(actual_minutes),0) as avg_minutes,
COALESCE(SUM(picked_items) / NULLIF(SUM(actual_minutes),0),0) as items_per_minute,
COALESCE(AVG(accuracy_pct),0) as accuracy_pct
FROM picking_session
WHERE org_id = ? AND picker_id = ? AND status IN ('completed','completed_with_issues')
AND completed_at >= ? AND completed_at < ?
GROUP BY picker_id, picker_name`

	warehouseDailyQuery = `SELECT DATE_FORMAT(completed_at, '%Y-%m-%d') as day,
COUNT(DISTINCT picker_id) as active_pickers,
COUNT(*) as sessions,
COALESCE(SUM(picked_items),0) as picked_items,
COALESCE(SUM(completed_orders),0) as completed_orders,
COALESCE(AVG(actual_minutes),0) as avg_minutes
FROM picking_session
WHERE org_id = ? AND warehouse_id = ? AND status IN ('completed','completed_with_issues')
AND completed_at >= ? AND completed_at < ?
GROUP BY DATE_FORMAT(completed_at, '%Y-%m-%d')
ORDER BY day`
)

func (r *SQL) InsertSessionTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error {
	if _, err := tx.ExecContext(ctx, insertSession,
		s.ID, s.OrgID, s.WarehouseID, s.PickerID, s.PickerName, s.StrategyID, s.Status,
		s.TotalItems, s.PickedItems, s.TotalOrders, s.CompletedOrders, s.ErrorCount, s.EstimatedMinutes, s.StartedAt); err != nil {
		return err
	}

	for _, o := range s.Orders {
		if _, err := tx.ExecContext(ctx, insertSessionOrder, s.ID, o.OrderID, o.OrderNumber, o.Picked, o.HasShortage); err != nil {
			return err
		}
	}

	for _, it := range s.Items {
		if _, err := tx.ExecContext(ctx, insertListItem,
			s.ID, it.SKU, it.Name, it.Barcode, it.Quantity, it.PickedQuantity,
			it.Zone, it.Aisle, it.Rack, it.Shelf, it.Bin, it.Status, it.Sequence); err != nil {
			return err
		}
		for _, c := range it.Contributions {
			if _, err := tx.ExecContext(ctx, insertContribution, s.ID, it.SKU, c.OrderID, c.OrderNumber, c.Quantity, c.PickedQuantity); err != nil {
				return err
			}
		}
	}

	return nil
}

type sessionRow struct {
	model.PickingSession
	ActualMinutes  sql.NullFloat64 `db:"actual_minutes"`
	ItemsPerMinute sql.NullFloat64 `db:"items_per_minute"`
	DurationRatio  sql.NullFloat64 `db:"duration_ratio"`
	AccuracyPct    sql.NullFloat64 `db:"accuracy_pct"`
}

func (r *SQL) GetSessionByID(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	var row sessionRow
	if err := r.conn.QueryRowxContext(ctx, getSession, sessionID).StructScan(&row); err != nil {
		return nil, err
	}
	s := row.PickingSession
	if row.ActualMinutes.Valid {
		s.Metrics = &model.SessionMetrics{
			ActualMinutes:  row.ActualMinutes.Float64,
			ItemsPerMinute: row.ItemsPerMinute.Float64,
			DurationRatio:  row.DurationRatio.Float64,
			AccuracyPct:    row.AccuracyPct.Float64,
		}
	}

	orders, err := r.listOrders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.Orders = orders

	items, err := r.listItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.Items = items

	return &s, nil
}

func (r *SQL) listOrders(ctx context.Context, sessionID string) ([]model.SessionOrder, error) {
	rows, err := r.conn.QueryxContext(ctx, getSessionOrders, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.SessionOrder, 0)
	for rows.Next() {
		var o model.SessionOrder
		if err := rows.StructScan(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *SQL) listItems(ctx context.Context, sessionID string) ([]model.PickingListItem, error) {
	rows, err := r.conn.QueryxContext(ctx, getListItems, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PickingListItem, 0)
	index := make(map[string]int)
	for rows.Next() {
		var it model.PickingListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		index[it.SKU] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := r.conn.QueryxContext(ctx, getContributions, sessionID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	type contribRow struct {
		SKU string `db:"sku"`
		model.OrderContribution
	}
	for crows.Next() {
		var cr contribRow
		if err := crows.StructScan(&cr); err != nil {
			return nil, err
		}
		if i, ok := index[cr.SKU]; ok {
			items[i].Contributions = append(items[i].Contributions, cr.OrderContribution)
		}
	}
	return items, crows.Err()
}

func (r *SQL) UpdateSessionStateTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error {
	var actual, ipm, ratio, accuracy interface{}
	if s.Metrics != nil {
		actual, ipm, ratio, accuracy = s.Metrics.ActualMinutes, s.Metrics.ItemsPerMinute, s.Metrics.DurationRatio, s.Metrics.AccuracyPct
	}
	_, err := tx.ExecContext(ctx, updateSessionState,
		s.Status, s.PausedAt, s.ResumedAt, s.CompletedAt, s.CancelledAt,
		actual, ipm, ratio, accuracy, s.ID)
	return err
}

func (r *SQL) UpdateItemTx(ctx context.Context, tx *sqlx.Tx, sessionID string, item *model.PickingListItem) error {
	if _, err := tx.ExecContext(ctx, updateListItem, item.PickedQuantity, item.Status, sessionID, item.SKU); err != nil {
		return err
	}
	for _, c := range item.Contributions {
		if _, err := tx.ExecContext(ctx, updateContribution, c.PickedQuantity, sessionID, item.SKU, c.OrderID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) UpdateCountersTx(ctx context.Context, tx *sqlx.Tx, s *model.PickingSession) error {
	_, err := tx.ExecContext(ctx, updateCounters, s.PickedItems, s.CompletedOrders, s.ErrorCount, s.ID)
	return err
}

func (r *SQL) UpdateSessionOrderTx(ctx context.Context, tx *sqlx.Tx, sessionID string, o *model.SessionOrder) error {
	_, err := tx.ExecContext(ctx, updateSessionOrder, o.Picked, o.HasShortage, o.PickedAt, sessionID, o.OrderID)
	return err
}

func (r *SQL) InsertSessionErrorTx(ctx context.Context, tx *sqlx.Tx, e *model.SessionError) error {
	_, err := tx.ExecContext(ctx, insertSessionError, e.SessionID, e.Type, e.Payload, e.CreatedAt)
	return err
}

func (r *SQL) InsertSessionEventTx(ctx context.Context, tx *sqlx.Tx, e *model.SessionEvent) error {
	_, err := tx.ExecContext(ctx, insertSessionEvent, e.SessionID, e.Type, e.Payload, e.CreatedAt)
	return err
}

func (r *SQL) ListSessionErrors(ctx context.Context, sessionID string) ([]model.SessionError, error) {
	rows, err := r.conn.QueryxContext(ctx, listSessionErrors, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	errs := make([]model.SessionError, 0)
	for rows.Next() {
		var e model.SessionError
		if err := rows.StructScan(&e); err != nil {
			return nil, err
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

func (r *SQL) GetPickerPerformance(ctx context.Context, orgID, pickerID uint64, from, to time.Time) (*model.PickerPerformance, error) {
	var perf model.PickerPerformance
	err := r.conn.QueryRowxContext(ctx, pickerPerformanceQuery, orgID, pickerID, from, to).StructScan(&perf)
	if err == sql.ErrNoRows {
		return &model.PickerPerformance{PickerID: pickerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &perf, nil
}

func (r *SQL) GetWarehouseDailyStats(ctx context.Context, orgID, warehouseID uint64, from, to time.Time) ([]model.WarehouseDailyStats, error) {
	rows, err := r.conn.QueryxContext(ctx, warehouseDailyQuery, orgID, warehouseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.WarehouseDailyStats, 0)
	for rows.Next() {
		var st model.WarehouseDailyStats
		if err := rows.StructScan(&st); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
