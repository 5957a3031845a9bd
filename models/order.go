package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"delivery-service/apperr"
)

// Order is a customer's purchase request against one restaurant. Monetary
// fields are minor units (cents). Total is always derived:
// Total = Subtotal + DeliveryFee - Discount.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	RestaurantID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	PlacedAt        time.Time   `gorm:"not null" json:"placed_at"`
	DeliveryAddress string      `gorm:"not null" json:"delivery_address"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        int64       `gorm:"not null;default:0" json:"subtotal"`
	DeliveryFee     int64       `gorm:"not null;default:0" json:"delivery_fee"`
	Discount        int64       `gorm:"not null;default:0" json:"discount"`
	Total           int64       `gorm:"not null;default:0" json:"total"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"payment_method,omitempty"`

	EstimatedDeliveryMinutes *int       `json:"estimated_delivery_minutes,omitempty"`
	DeliveredAt              *time.Time `json:"delivered_at,omitempty"`
	CancelledAt              *time.Time `json:"cancelled_at,omitempty"`
	CancelReason             string     `json:"cancel_reason,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderItem is one line of an order. UnitPrice is the product's base price
// captured at order time and is never recomputed afterwards.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
}

// NewOrderItem prices one line: subtotal = quantity x unit price.
func NewOrderItem(productID uuid.UUID, quantity int, unitPrice int64) OrderItem {
	return OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  int64(quantity) * unitPrice,
	}
}

// NewOrderNumber builds a human-readable order number, e.g.
// ORD-20260828-9F3A1C07.
func NewOrderNumber(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), frag)
}

// RecalculateTotal recomputes Subtotal from the line items and derives Total
// from the stored fee and discount. Idempotent; must run after any mutation
// touching items, fee or discount.
func (o *Order) RecalculateTotal() {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.Subtotal
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.DeliveryFee - o.Discount
}

// AddItem attaches a line item and reprices the order.
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	o.RecalculateTotal()
}

// RemoveItem detaches the line item with the given id and reprices the order.
func (o *Order) RemoveItem(itemID uuid.UUID) bool {
	for i, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.RecalculateTotal()
			return true
		}
	}
	return false
}

func (o *Order) UpdateDeliveryFee(fee int64) {
	o.DeliveryFee = fee
	o.RecalculateTotal()
}

func (o *Order) UpdateDiscount(discount int64) {
	o.Discount = discount
	o.RecalculateTotal()
}

func (o *Order) UpdateDeliveryAddress(address string) {
	o.DeliveryAddress = address
}

func (o *Order) UpdateNotes(notes string) {
	o.Notes = notes
}

func (o *Order) UpdateEstimatedDeliveryMinutes(minutes int) {
	o.EstimatedDeliveryMinutes = &minutes
}

func (o *Order) UpdatePaymentMethod(method string) {
	o.PaymentMethod = method
}

// TransitionTo moves the order to target, enforcing the transition table and
// the narrower cancellation rule. On rejection the order is left untouched.
func (o *Order) TransitionTo(target OrderStatus, now time.Time) error {
	if target == o.Status {
		return apperr.InvalidStatef("order %s is already in status %s", o.OrderNumber, target)
	}
	if !o.Status.CanTransitionTo(target) {
		return apperr.InvalidTransitionf("invalid status transition from %s to %s", o.Status, target)
	}
	if target == StatusCancelled && !o.Status.Cancellable() {
		return apperr.InvalidStatef("order %s cannot be cancelled in status %s", o.OrderNumber, o.Status)
	}

	o.Status = target
	o.UpdatedAt = now
	switch target {
	case StatusCancelled:
		t := now
		o.CancelledAt = &t
		o.EstimatedDeliveryMinutes = nil
	case StatusDelivered:
		t := now
		o.DeliveredAt = &t
	}
	return nil
}

// Confirm moves a pending order to CONFIRMED.
func (o *Order) Confirm(now time.Time) error {
	return o.TransitionTo(StatusConfirmed, now)
}

// Cancel moves the order to CANCELLED and records the reason.
func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.TransitionTo(StatusCancelled, now); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// Deliver moves the order to DELIVERED and stamps the delivery time.
func (o *Order) Deliver(now time.Time) error {
	return o.TransitionTo(StatusDelivered, now)
}
