package domain

// Ownership predicates live here so handlers share one definition instead
// of drifting per-endpoint copies.

// CanManageProduct reports whether the actor may update or delete the
// product: its owning seller, or an admin.
func CanManageProduct(actor User, p Product) bool {
	return actor.Role == RoleAdmin || p.SellerID == actor.ID
}

// CanViewOrder reports whether the actor may read the order: the buyer,
// a seller with at least one line item in it, or an admin.
func CanViewOrder(actor User, o Order) bool {
	if actor.Role == RoleAdmin || o.BuyerID == actor.ID {
		return true
	}
	return actor.Role == RoleSeller && o.HasSeller(actor.ID)
}

// CanUpdateOrderStatus reports whether the actor may change the order's
// status: an admin, or a seller owning at least one line item. Note that
// any one seller on a multi-seller order can move the shared status.
func CanUpdateOrderStatus(actor User, o Order) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.Role == RoleSeller && o.HasSeller(actor.ID)
}

// CanManageCoupon reports whether the actor may mutate the coupon.
func CanManageCoupon(actor User, c Coupon) bool {
	return actor.Role == RoleAdmin || c.SellerID == actor.ID
}
