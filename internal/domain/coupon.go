package domain

import "time"

type CouponKind string

const (
	CouponPercentage CouponKind = "PERCENTAGE"
	CouponFixed      CouponKind = "FIXED"
)

// Coupon is a seller-owned discount code. PERCENTAGE values are 1-100;
// FIXED values are positive cent amounts.
type Coupon struct {
	ID        string     `json:"id"`
	SellerID  string     `json:"sellerId"`
	Code      string     `json:"code"`
	Kind      CouponKind `json:"kind"`
	Value     int64      `json:"value"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Redeemable reports whether the coupon can be applied at the given time.
func (c *Coupon) Redeemable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}

// Discount returns the cent amount to subtract from a total. The result
// never exceeds the total.
func (c *Coupon) Discount(totalCents int64) int64 {
	var d int64
	switch c.Kind {
	case CouponPercentage:
		d = totalCents * c.Value / 100
	case CouponFixed:
		d = c.Value
	}
	if d > totalCents {
		d = totalCents
	}
	if d < 0 {
		d = 0
	}
	return d
}
