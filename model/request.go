package model

// CreateSessionRequest starts a new picking session. Either OrderIDs is given
// explicitly or orders are selected by the optional filters.
type CreateSessionRequest struct {
	WarehouseID uint64   `json:"warehouse_id" validate:"required"`
	PickerName  string   `json:"picker_name"`
	StrategyID  string   `json:"strategy_id" validate:"required"`
	OrderIDs    []uint64 `json:"order_ids,omitempty"`
	Carrier     string   `json:"carrier,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	MaxOrders   int      `json:"max_orders,omitempty" validate:"omitempty,gt=0"`
}

// ScanRequest validates one barcode scan against the session's picking list.
type ScanRequest struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gt=0"`
	Location string `json:"location,omitempty"`
}

// ManualPickRequest records a pick without scan validation.
type ManualPickRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"required"`
}

// ShortageRequest records a stock discrepancy found during picking.
type ShortageRequest struct {
	SKU         string `json:"sku" validate:"required"`
	ExpectedQty int    `json:"expected_qty" validate:"required,gte=0"`
	ActualQty   int    `json:"actual_qty" validate:"gte=0"`
	Reason      string `json:"reason" validate:"required"`
}

// CancelSessionRequest carries the cancellation reason for the audit log.
type CancelSessionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ScanResult string

const (
	ScanResultPicked           ScanResult = "picked"
	ScanResultItemNotFound     ScanResult = "item_not_found"
	ScanResultAlreadyPicked    ScanResult = "already_picked"
	ScanResultWrongLocation    ScanResult = "wrong_location"
	ScanResultQuantityExceeded ScanResult = "quantity_exceeded"
)

// Progress is the snapshot returned on every successful mutation.
type Progress struct {
	PickedItems     int     `json:"picked_items"`
	TotalItems      int     `json:"total_items"`
	Percentage      float64 `json:"percentage"`
	CompletedOrders int     `json:"completed_orders"`
	TotalOrders     int     `json:"total_orders"`
}

// ScanResponse tells the picker-facing UI exactly what happened, including
// enough detail to explain a rejection without a second round trip.
type ScanResponse struct {
	Result           ScanResult       `json:"result"`
	Message          string           `json:"message,omitempty"`
	Item             *PickingListItem `json:"item,omitempty"`
	ExpectedLocation string           `json:"expected_location,omitempty"`
	ScannedLocation  string           `json:"scanned_location,omitempty"`
	RequiredQty      int              `json:"required_qty,omitempty"`
	PickedQty        int              `json:"picked_qty,omitempty"`
	Progress         Progress         `json:"progress"`
	NextItem         *PickingListItem `json:"next_item,omitempty"`
	CompletedOrders  []uint64         `json:"completed_order_ids,omitempty"`
}

// SessionResponse wraps a session for transport.
type SessionResponse struct {
	Session *PickingSession `json:"session"`
}
