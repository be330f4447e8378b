package constant

type OrderStatus string

const (
	OrderStatusPendingFulfillment OrderStatus = "pending_fulfillment"
	OrderStatusPicking            OrderStatus = "picking"
	OrderStatusPicked             OrderStatus = "picked"
)

type OrderPriority string

const (
	OrderPriorityUrgent OrderPriority = "urgent"
	OrderPriorityHigh   OrderPriority = "high"
	OrderPriorityNormal OrderPriority = "normal"
	OrderPriorityLow    OrderPriority = "low"
)
