package service

import (
	"testing"

	"github.com/efreitasn/bonddesk/internal/domain"
)

func TestTradeBookingService_BookTrade(t *testing.T) {
	s := NewTradeBookingService(nil)
	l := &countingListener[*domain.Trade]{}
	s.AddListener(l)

	trade := &domain.Trade{
		Product:  testBond("CUSIP1"),
		TradeID:  "T-1",
		Price:    99.5,
		Book:     "TRSY1",
		Quantity: 1000,
		Side:     domain.SideBuy,
	}
	s.BookTrade(trade)

	got, err := s.GetData("T-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Book != "TRSY1" {
		t.Fatalf("expected book TRSY1, got %s", got.Book)
	}
	if l.adds != 1 {
		t.Fatalf("expected one add notification, got %d", l.adds)
	}
}

func TestTradeBookingService_GetData_NotFound(t *testing.T) {
	s := NewTradeBookingService(nil)

	_, err := s.GetData("missing")
	if err != domain.ErrTradeNotFound {
		t.Fatalf("expected ErrTradeNotFound, got %v", err)
	}
}

// A colliding trade ID silently overwrites the earlier trade; this is
// the documented (and deliberate) simplification, not an error.
func TestTradeBookingService_DuplicateID_Overwrites(t *testing.T) {
	s := NewTradeBookingService(nil)
	bond := testBond("CUSIP1")

	s.BookTrade(&domain.Trade{Product: bond, TradeID: "T-1", Quantity: 100, Side: domain.SideBuy, Book: "TRSY1"})
	s.BookTrade(&domain.Trade{Product: bond, TradeID: "T-1", Quantity: 200, Side: domain.SideSell, Book: "TRSY2"})

	got, err := s.GetData("T-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Quantity != 200 || got.Side != domain.SideSell {
		t.Fatalf("expected the second trade to win, got qty=%d side=%s", got.Quantity, got.Side)
	}
}
