package domain

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// statusRank orders the forward progression of an order. Cancelled sits
// outside the progression and ranks as unknown.
var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusPickedUp:  4,
	StatusDelivered: 5,
}

// Rank returns the position of s in the fulfillment progression, or -1 for
// cancelled and unknown statuses.
func (s OrderStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Before reports whether s precedes other in the fulfillment progression.
func (s OrderStatus) Before(other OrderStatus) bool {
	sr, or := s.Rank(), other.Rank()
	return sr >= 0 && or >= 0 && sr < or
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.Rank() >= 0
}
