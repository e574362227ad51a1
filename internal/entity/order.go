package entity

import (
	"fmt"
	"time"
)

// OrderStatus enumerates the order delivery lifecycle.
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// statusRank orders statuses along the delivery timeline.
var statusRank = map[OrderStatus]int{
	StatusConfirmed:      0,
	StatusPreparing:      1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

// ParseOrderStatus validates a raw status string against the known set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := statusRank[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

// CanAdvanceTo reports whether next is a forward move on the timeline.
// Orders never move backwards and never revisit the current status.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// OrderItem is a line-item snapshot captured at order time. Fields are
// copied from the menu item so later menu edits never change the order.
type OrderItem struct {
	ItemID   int64
	Name     string
	Price    int
	Quantity int
	Image    string
}

// Order is a placed order. Number and CreatedAt are assigned exactly once
// by the store; Total must always equal Subtotal + DeliveryFee.
type Order struct {
	ID              int64
	Number          string
	RestaurantID    int64
	Items           []OrderItem
	Subtotal        int
	DeliveryFee     int
	Total           int
	Status          OrderStatus
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
