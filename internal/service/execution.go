package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// ExecutionService executes orders on an exchange. Keyed on order ID.
type ExecutionService struct {
	*pubsub.Service[string, *domain.ExecutionOrder]
	logger *slog.Logger
}

// NewExecutionService creates an empty execution service.
func NewExecutionService(logger *slog.Logger) *ExecutionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecutionService{
		Service: pubsub.NewService("execution", func(o *domain.ExecutionOrder) string {
			return o.OrderID
		}, domain.ErrExecutionNotFound, logger),
		logger: logger,
	}
}

// ExecuteOrder stores the order by its ID, fans out an add notification,
// and logs the execution with the market label. The market is a side
// channel only; it is not part of the stored order.
func (s *ExecutionService) ExecuteOrder(o *domain.ExecutionOrder, market domain.Market) {
	s.Service.OnMessage(o)
	s.logger.Info("order executed",
		slog.String("order_id", o.OrderID),
		slog.String("product_id", o.Product.ProductID()),
		slog.String("market", string(market)),
		slog.Float64("price", o.Price),
		slog.Int64("quantity", o.VisibleQuantity),
	)
}

// OnMessage executes an externally-sourced order on the default market,
// BROKERTEC.
func (s *ExecutionService) OnMessage(o *domain.ExecutionOrder) {
	s.ExecuteOrder(o, domain.MarketBrokerTec)
}
