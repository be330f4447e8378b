package model

import (
	"time"

	"github.com/muhammadheryan/picking-engine/constant"
)

// OrderLineItem is one sku/quantity line on an order.
type OrderLineItem struct {
	SKU      string `db:"sku" json:"sku"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Order is the engine's view of an externally owned order. The engine mutates
// it only through status transitions and the picking_session_id back-reference.
type Order struct {
	ID               uint64                 `db:"id" json:"id"`
	OrderNumber      string                 `db:"order_number" json:"order_number"`
	OrgID            uint64                 `db:"org_id" json:"org_id"`
	WarehouseID      uint64                 `db:"warehouse_id" json:"warehouse_id"`
	Priority         constant.OrderPriority `db:"priority" json:"priority"`
	Carrier          string                 `db:"carrier" json:"carrier"`
	Status           constant.OrderStatus   `db:"status" json:"status"`
	PickingSessionID *string                `db:"picking_session_id" json:"picking_session_id,omitempty"`
	CreatedAt        time.Time              `db:"created_at" json:"created_at"`
	Items            []OrderLineItem        `json:"items"`
}

// OrderFilter narrows eligible-order selection. Zero values mean no filtering.
type OrderFilter struct {
	Carrier  string
	Priority constant.OrderPriority
}
