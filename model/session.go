package model

import (
	"strings"
	"time"

	"github.com/muhammadheryan/picking-engine/constant"
)

// LocationUnassigned is the display value for items without a resolved location.
const LocationUnassigned = "unassigned"

// OrderContribution is the portion of an aggregated item's quantity belonging
// to one order. PickedQuantity tracks the units already allocated to that
// order, so order completion never over-counts a sku shared between orders.
type OrderContribution struct {
	OrderID        uint64 `db:"order_id" json:"order_id"`
	OrderNumber    string `db:"order_number" json:"order_number"`
	Quantity       int    `db:"quantity" json:"quantity"`
	PickedQuantity int    `db:"picked_quantity" json:"picked_quantity"`
}

// PickingListItem is one unique sku on the session's pick route.
type PickingListItem struct {
	SKU            string              `db:"sku" json:"sku"`
	Name           string              `db:"name" json:"name"`
	Barcode        string              `db:"barcode" json:"barcode"`
	Quantity       int                 `db:"quantity" json:"quantity"`
	PickedQuantity int                 `db:"picked_quantity" json:"picked_quantity"`
	Zone           string              `db:"zone" json:"zone"`
	Aisle          string              `db:"aisle" json:"aisle"`
	Rack           string              `db:"rack" json:"rack"`
	Shelf          string              `db:"shelf" json:"shelf"`
	Bin            string              `db:"bin" json:"bin"`
	Status         constant.ItemStatus `db:"status" json:"status"`
	Sequence       int                 `db:"sequence" json:"sequence"`
	Contributions  []OrderContribution `json:"contributions"`
}

// HasLocation reports whether the item resolved to a physical location.
func (i *PickingListItem) HasLocation() bool {
	return i.Zone != "" || i.Aisle != "" || i.Rack != ""
}

// LocationCode renders the location as scanned by pickers, e.g. "A-01-03-2-B".
func (i *PickingListItem) LocationCode() string {
	if !i.HasLocation() {
		return LocationUnassigned
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{i.Zone, i.Aisle, i.Rack, i.Shelf, i.Bin} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// SessionOrder is the session's summary of one claimed order.
type SessionOrder struct {
	OrderID     uint64     `db:"order_id" json:"order_id"`
	OrderNumber string     `db:"order_number" json:"order_number"`
	Picked      bool       `db:"picked" json:"picked"`
	HasShortage bool       `db:"has_shortage" json:"has_shortage"`
	PickedAt    *time.Time `db:"picked_at" json:"picked_at,omitempty"`
}

// SessionMetrics are computed once, when the session reaches a completed state.
type SessionMetrics struct {
	ActualMinutes  float64 `db:"actual_minutes" json:"actual_minutes"`
	ItemsPerMinute float64 `db:"items_per_minute" json:"items_per_minute"`
	DurationRatio  float64 `db:"duration_ratio" json:"duration_ratio"`
	AccuracyPct    float64 `db:"accuracy_pct" json:"accuracy_pct"`
}

// PickingSession owns one picker's walk through the warehouse.
type PickingSession struct {
	ID               string                 `db:"id" json:"id"`
	OrgID            uint64                 `db:"org_id" json:"org_id"`
	WarehouseID      uint64                 `db:"warehouse_id" json:"warehouse_id"`
	PickerID         uint64                 `db:"picker_id" json:"picker_id"`
	PickerName       string                 `db:"picker_name" json:"picker_name"`
	StrategyID       string                 `db:"strategy_id" json:"strategy_id"`
	Status           constant.SessionStatus `db:"status" json:"status"`
	Orders           []SessionOrder         `json:"orders"`
	Items            []PickingListItem      `json:"items"`
	TotalItems       int                    `db:"total_items" json:"total_items"`
	PickedItems      int                    `db:"picked_items" json:"picked_items"`
	TotalOrders      int                    `db:"total_orders" json:"total_orders"`
	CompletedOrders  int                    `db:"completed_orders" json:"completed_orders"`
	ErrorCount       int                    `db:"error_count" json:"error_count"`
	EstimatedMinutes int                    `db:"estimated_minutes" json:"estimated_minutes"`
	StartedAt        time.Time              `db:"started_at" json:"started_at"`
	PausedAt         *time.Time             `db:"paused_at" json:"paused_at,omitempty"`
	ResumedAt        *time.Time             `db:"resumed_at" json:"resumed_at,omitempty"`
	CompletedAt      *time.Time             `db:"completed_at" json:"completed_at,omitempty"`
	CancelledAt      *time.Time             `db:"cancelled_at" json:"cancelled_at,omitempty"`
	Metrics          *SessionMetrics        `json:"metrics,omitempty"`
}

// ItemBySKU returns the picking list entry for a sku, or nil.
func (s *PickingSession) ItemBySKU(sku string) *PickingListItem {
	for i := range s.Items {
		if strings.EqualFold(s.Items[i].SKU, sku) {
			return &s.Items[i]
		}
	}
	return nil
}

// NextPendingItem returns the first not-fully-picked item in route order, or nil.
func (s *PickingSession) NextPendingItem() *PickingListItem {
	var next *PickingListItem
	for i := range s.Items {
		it := &s.Items[i]
		if it.PickedQuantity >= it.Quantity {
			continue
		}
		if next == nil || it.Sequence < next.Sequence {
			next = it
		}
	}
	return next
}

// Clone deep-copies the session. Mutating operations work on a clone and swap
// it in only after the durable write succeeds.
func (s *PickingSession) Clone() *PickingSession {
	c := *s
	c.Orders = make([]SessionOrder, len(s.Orders))
	copy(c.Orders, s.Orders)
	c.Items = make([]PickingListItem, len(s.Items))
	for i := range s.Items {
		c.Items[i] = s.Items[i]
		c.Items[i].Contributions = make([]OrderContribution, len(s.Items[i].Contributions))
		copy(c.Items[i].Contributions, s.Items[i].Contributions)
	}
	if s.Metrics != nil {
		m := *s.Metrics
		c.Metrics = &m
	}
	return &c
}

// SessionError is one audit entry in the session's error log.
type SessionError struct {
	ID        uint64                    `db:"id" json:"id"`
	SessionID string                    `db:"session_id" json:"session_id"`
	Type      constant.SessionErrorType `db:"type" json:"type"`
	Payload   string                    `db:"payload" json:"payload"`
	CreatedAt time.Time                 `db:"created_at" json:"created_at"`
}

// SessionEvent is one arbitrary audit event (e.g. a manual pick).
type SessionEvent struct {
	ID        uint64    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Type      string    `db:"type" json:"type"`
	Payload   string    `db:"payload" json:"payload"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
