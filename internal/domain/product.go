package domain

import "time"

type ProductStatus string

const (
	ProductPending  ProductStatus = "PENDING"
	ProductApproved ProductStatus = "APPROVED"
	ProductRejected ProductStatus = "REJECTED"
)

// ValidProductStatus reports whether s is a known moderation status.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductPending, ProductApproved, ProductRejected:
		return true
	}
	return false
}

// Product is a seller-owned listing. Only APPROVED products appear in
// public listings; new listings start PENDING until an admin moderates.
type Product struct {
	ID          string        `json:"id"`
	SellerID    string        `json:"sellerId"`
	CategoryID  *string       `json:"categoryId,omitempty"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	PriceCents  int64         `json:"priceCents"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
