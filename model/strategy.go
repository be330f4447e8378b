package model

// PickingStrategy is an immutable catalog entry describing how orders are
// grouped into one picking session.
type PickingStrategy struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	MaxOrders          int     `json:"max_orders"`
	RequiresCart       bool    `json:"requires_cart"`
	EfficiencyClass    string  `json:"efficiency_class"`
	EfficiencyModifier float64 `json:"-"`
}
