package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// DefaultPV01Factor is the per-unit risk factor assigned to a product
// the first time it is risked. It is a static per-product constant and
// is never recomputed afterwards.
const DefaultPV01Factor = 0.01

// RiskService vends PV01 risk for single products and across bucketed
// sectors. Keyed on product ID.
type RiskService struct {
	*pubsub.Service[string, *domain.PV01]
	factor float64
}

// NewRiskService creates a risk service using DefaultPV01Factor.
func NewRiskService(logger *slog.Logger) *RiskService {
	return &RiskService{
		Service: pubsub.NewService("risk", func(pv *domain.PV01) string {
			return pv.Product.ProductID()
		}, domain.ErrRiskNotFound, logger),
		factor: DefaultPV01Factor,
	}
}

// AddPosition risks a position. On first sight of the product a PV01
// record is created with the default factor; afterwards only the
// quantity is replaced with the position's current aggregate (the
// position is already netted, so updates replace rather than
// accumulate). Listeners receive an update notification.
func (s *RiskService) AddPosition(p *domain.Position) *domain.PV01 {
	aggregate := p.AggregatePosition()
	return s.Upsert(p.Product().ProductID(), func(pv *domain.PV01, exists bool) *domain.PV01 {
		if !exists {
			return &domain.PV01{
				Product:  p.Product(),
				Value:    s.factor,
				Quantity: aggregate,
			}
		}
		pv.Quantity = aggregate
		return pv
	})
}

// GetBucketedRisk computes the bucketed risk for a sector as a fresh
// value: the quantity-weighted average PV01 of the members,
// Σ(pv01·qty)/Σ(qty), and the total quantity Σ(qty). It fails with the
// risk NotFound sentinel if any member has never been risked, and with
// ErrZeroBucketQuantity when the total quantity nets to zero, since the
// weighted average is undefined there.
func (s *RiskService) GetBucketedRisk(sector domain.BucketedSector) (domain.SectorRisk, error) {
	var (
		weighted float64
		totalQty int64
	)
	for _, product := range sector.Products {
		pv, err := s.GetData(product.ProductID())
		if err != nil {
			return domain.SectorRisk{}, err
		}
		weighted += pv.Value * float64(pv.Quantity)
		totalQty += pv.Quantity
	}

	if totalQty == 0 {
		return domain.SectorRisk{}, domain.ErrZeroBucketQuantity
	}

	return domain.SectorRisk{
		Sector:   sector,
		Value:    weighted / float64(totalQty),
		Quantity: totalQty,
	}, nil
}
