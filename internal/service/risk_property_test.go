package service

import (
	"fmt"
	"testing"

	"github.com/efreitasn/bonddesk/internal/domain"
	"pgregory.net/rapid"
)

// Property: since every product carries the same static risk factor,
// the bucketed weighted average equals that factor whenever the total
// quantity is non-zero, and the total quantity is the sum of the
// members' aggregates.
func TestProperty_BucketedRiskWeighting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRiskService(nil)

		n := rapid.IntRange(1, 10).Draw(t, "numProducts")
		sector := domain.BucketedSector{Name: "Bucket"}
		var total int64

		for i := 0; i < n; i++ {
			bond := testBond(fmt.Sprintf("CUSIP%d", i))
			qty := rapid.Int64Range(-5_000_000, 5_000_000).Draw(t, "qty")
			s.AddPosition(riskPosition(bond, qty))
			sector.Products = append(sector.Products, bond)
			total += qty
		}

		sr, err := s.GetBucketedRisk(sector)
		if total == 0 {
			if err != domain.ErrZeroBucketQuantity {
				t.Fatalf("zero total: expected ErrZeroBucketQuantity, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sr.Quantity != total {
			t.Fatalf("total quantity: expected %d, got %d", total, sr.Quantity)
		}
		const eps = 1e-9
		if diff := sr.Value - DefaultPV01Factor; diff > eps || diff < -eps {
			t.Fatalf("uniform factors: expected weighted average %v, got %v", DefaultPV01Factor, sr.Value)
		}
	})
}
