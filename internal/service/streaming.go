package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// StreamingService publishes two-way price streams. Keyed on product
// ID.
type StreamingService struct {
	*pubsub.Service[string, *domain.PriceStream]
}

// NewStreamingService creates an empty streaming service.
func NewStreamingService(logger *slog.Logger) *StreamingService {
	return &StreamingService{
		Service: pubsub.NewService("streaming", func(ps *domain.PriceStream) string {
			return ps.Product.ProductID()
		}, domain.ErrPriceStreamNotFound, logger),
	}
}

// PublishPrice stores the two-way stream and fans out an add
// notification.
func (s *StreamingService) PublishPrice(ps *domain.PriceStream) {
	s.OnMessage(ps)
}
