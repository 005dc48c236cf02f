package domain

import "time"

type OwnerKind string

const (
	OwnerUser  OwnerKind = "user"
	OwnerGuest OwnerKind = "guest"
)

// CartOwner identifies who a cart belongs to: exactly one of an
// authenticated user or an anonymous guest session. Modeling this as a
// tagged union keeps the XOR invariant out of nullable-column branching.
type CartOwner struct {
	Kind OwnerKind
	ID   string
}

func UserOwner(userID string) CartOwner {
	return CartOwner{Kind: OwnerUser, ID: userID}
}

func GuestOwner(guestID string) CartOwner {
	return CartOwner{Kind: OwnerGuest, ID: guestID}
}

// Zero reports whether no owner was supplied.
func (o CartOwner) Zero() bool {
	return o.ID == ""
}

// Cart is the mutable pre-purchase collection for one owner. It is
// created lazily on first interaction and emptied by checkout or merge.
type Cart struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId,omitempty"`
	GuestID   *string    `json:"guestId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"items"`
}

// TotalCents sums live line prices. Cart totals are advisory; the
// authoritative total is computed at checkout from live product prices.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

// CartItem holds one (product, quantity) pair. At most one row exists per
// (cart, product); repeated additions increment the quantity.
type CartItem struct {
	ID         string    `json:"id"`
	CartID     string    `json:"cartId"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}
