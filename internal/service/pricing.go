package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// PricingService manages internal mid prices and bid/offer spreads.
// Keyed on product ID.
type PricingService struct {
	*pubsub.Service[string, *domain.Price]
}

// NewPricingService creates an empty pricing service.
func NewPricingService(logger *slog.Logger) *PricingService {
	return &PricingService{
		Service: pubsub.NewService("pricing", func(p *domain.Price) string {
			return p.Product.ProductID()
		}, domain.ErrPriceNotFound, logger),
	}
}

// PublishPrice stores the price and fans out an add notification.
func (s *PricingService) PublishPrice(p *domain.Price) {
	s.OnMessage(p)
}
