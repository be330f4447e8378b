package model

// PickerPerformance aggregates one picker's completed sessions over a date range.
type PickerPerformance struct {
	PickerID        uint64  `db:"picker_id" json:"picker_id"`
	PickerName      string  `db:"picker_name" json:"picker_name"`
	Sessions        int64   `db:"sessions" json:"sessions"`
	PickedItems     int64   `db:"picked_items" json:"picked_items"`
	CompletedOrders int64   `db:"completed_orders" json:"completed_orders"`
	AvgMinutes      float64 `db:"avg_minutes" json:"avg_minutes"`
	ItemsPerMinute  float64 `db:"items_per_minute" json:"items_per_minute"`
	AccuracyPct     float64 `db:"accuracy_pct" json:"accuracy_pct"`
}

// WarehouseDailyStats aggregates one warehouse day.
type WarehouseDailyStats struct {
	Day             string  `db:"day" json:"day"`
	ActivePickers   int64   `db:"active_pickers" json:"active_pickers"`
	Sessions        int64   `db:"sessions" json:"sessions"`
	PickedItems     int64   `db:"picked_items" json:"picked_items"`
	CompletedOrders int64   `db:"completed_orders" json:"completed_orders"`
	AvgMinutes      float64 `db:"avg_minutes" json:"avg_minutes"`
}
