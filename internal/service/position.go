package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// PositionService manages positions across multiple books and
// securities. Keyed on product ID.
type PositionService struct {
	*pubsub.Service[string, *domain.Position]
}

// NewPositionService creates an empty position service.
func NewPositionService(logger *slog.Logger) *PositionService {
	return &PositionService{
		Service: pubsub.NewService("position", func(p *domain.Position) string {
			return p.Product().ProductID()
		}, domain.ErrPositionNotFound, logger),
	}
}

// AddTrade folds a trade into the position for its product, creating
// the position on first sight. The book entry accumulates the signed
// quantity (buys positive, sells negative) and listeners receive an
// update notification with the mutated position.
func (s *PositionService) AddTrade(t *domain.Trade) *domain.Position {
	return s.Upsert(t.Product.ProductID(), func(p *domain.Position, exists bool) *domain.Position {
		if !exists {
			p = domain.NewPosition(t.Product)
		}
		p.UpdateBook(t.Book, t.SignedQuantity())
		return p
	})
}
