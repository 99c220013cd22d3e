// Package service implements the domain services of the pipeline, each
// instantiating the generic pubsub service with its own mutation logic,
// plus the listener bridges wiring them into the desk data flow.
package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// TradeBookingService books trades to a particular book. Keyed on trade
// ID.
type TradeBookingService struct {
	*pubsub.Service[string, *domain.Trade]
}

// NewTradeBookingService creates an empty trade booking service.
func NewTradeBookingService(logger *slog.Logger) *TradeBookingService {
	return &TradeBookingService{
		Service: pubsub.NewService("trade_booking", func(t *domain.Trade) string {
			return t.TradeID
		}, domain.ErrTradeNotFound, logger),
	}
}

// BookTrade stores the trade by its ID and fans out an add notification.
// Trade IDs are caller-supplied and assumed unique; a colliding ID
// silently overwrites the earlier trade, it is not flagged as an error.
func (s *TradeBookingService) BookTrade(t *domain.Trade) {
	s.OnMessage(t)
}
