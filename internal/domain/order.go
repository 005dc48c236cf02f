package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderRefunded  OrderStatus = "REFUNDED"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// orderTransitions is the strict status graph: PENDING→PAID→SHIPPED→
// COMPLETED, CANCELLED only from PENDING, REFUNDED from any paid-or-later
// state. Terminal states have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped, OrderRefunded},
	OrderShipped:   {OrderCompleted, OrderRefunded},
	OrderCompleted: {OrderRefunded},
}

// CanTransition reports whether an order may move from one status to
// another. A same-status "transition" is allowed as a no-op so that
// at-least-once webhook delivery stays idempotent.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is the immutable snapshot of a checkout. Only Status and the
// payment intent reference mutate after creation.
type Order struct {
	ID              string      `json:"id"`
	BuyerID         string      `json:"buyerId"`
	Status          OrderStatus `json:"status"`
	TotalCents      int64       `json:"totalCents"`
	DiscountCents   int64       `json:"discountCents"`
	CouponCode      *string     `json:"couponCode,omitempty"`
	PaymentIntentID *string     `json:"-"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Items           []OrderItem `json:"items"`
}

// HasSeller reports whether at least one line item belongs to the seller.
func (o *Order) HasSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// OrderItem captures product title and price at purchase time, decoupled
// from later edits to the live product. SellerID is denormalized so
// seller scoping does not depend on the product row surviving.
type OrderItem struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	SellerID       string `json:"sellerId"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}
