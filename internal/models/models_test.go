package models

import "testing"

func TestStockRequestDecided(t *testing.T) {
	r := StockRequest{Status: RequestPending}
	if r.Decided() {
		t.Error("pending request must not be decided")
	}
	r.Status = RequestApproved
	if !r.Decided() {
		t.Error("approved request must be decided")
	}
	r.Status = RequestDenied
	if !r.Decided() {
		t.Error("denied request must be decided")
	}
}

func TestStockItemLowStock(t *testing.T) {
	cases := []struct {
		qty  int
		want bool
	}{
		{0, true},
		{5, true},
		{6, false},
		{100, false},
	}
	for _, c := range cases {
		s := StockItem{Quantity: c.qty}
		if s.LowStock() != c.want {
			t.Errorf("LowStock() with quantity %d: got %v, want %v", c.qty, s.LowStock(), c.want)
		}
	}
}
