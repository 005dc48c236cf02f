package cart

import (
	"context"

	"marketplace/internal/domain"
)

type Repository interface {
	// GetOrCreate finds the owner's cart, creating an empty one when
	// absent. Items are eagerly loaded in insertion order.
	GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	// GetByOwner finds the owner's cart without creating one.
	GetByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	// AddItem upserts a (cart, product) line, incrementing the quantity
	// when the line exists.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity replaces an item's quantity. Zero deletes the item.
	// The item must belong to the owner's cart.
	SetItemQuantity(ctx context.Context, owner domain.CartOwner, itemID string, quantity int) error
	// RemoveItem deletes an item belonging to the owner's cart.
	RemoveItem(ctx context.Context, owner domain.CartOwner, itemID string) error
	// MergeGuestIntoUser folds the guest cart into the user's cart in one
	// transaction: colliding products sum quantities, the rest re-parent,
	// and the guest cart is deleted.
	MergeGuestIntoUser(ctx context.Context, userID, guestID string) error
}
