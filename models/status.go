package models

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// statusTransitions is the legal transition table: source status to the set
// of statuses it may move to. Terminal statuses have no entry.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// cancellableFrom narrows cancellation beyond the transition table: an order
// is only cancellable while it has not started preparation.
var cancellableFrom = map[OrderStatus]bool{
	StatusPending:   true,
	StatusConfirmed: true,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the table allows moving from s to target.
// It does not apply the narrower cancellation rule; see Order.TransitionTo.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is legal from s.
func (s OrderStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// Cancellable reports whether an order in status s may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return cancellableFrom[s]
}

// ActiveStatuses are the non-terminal statuses, used by the "active orders"
// dashboard lookup.
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery}
}
