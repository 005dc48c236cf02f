package domain

import "testing"

func TestCanTransition_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderPaid},
		{OrderPending, OrderCancelled},
		{OrderPaid, OrderShipped},
		{OrderPaid, OrderRefunded},
		{OrderShipped, OrderCompleted},
		{OrderShipped, OrderRefunded},
		{OrderCompleted, OrderRefunded},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_RejectedEdges(t *testing.T) {
	rejected := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderShipped},
		{OrderPending, OrderCompleted},
		{OrderPending, OrderRefunded},
		{OrderPaid, OrderPending},
		{OrderPaid, OrderCancelled},
		{OrderShipped, OrderPaid},
		{OrderCancelled, OrderPaid},
		{OrderRefunded, OrderPending},
		{OrderRefunded, OrderCompleted},
	}
	for _, tc := range rejected {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestCanTransition_SameStatusIsNoOp(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled, OrderRefunded} {
		if !CanTransition(s, s) {
			t.Errorf("expected %s -> %s to be allowed as a no-op", s, s)
		}
	}
}

func TestHasSeller(t *testing.T) {
	o := Order{Items: []OrderItem{
		{SellerID: "seller-a"},
		{SellerID: "seller-b"},
	}}
	if !o.HasSeller("seller-a") {
		t.Fatal("expected seller-a to be present")
	}
	if o.HasSeller("seller-c") {
		t.Fatal("did not expect seller-c to be present")
	}
}
