package service

import (
	"math"
	"testing"

	"github.com/efreitasn/bonddesk/internal/domain"
)

// riskPosition builds a position with a single-book aggregate quantity.
func riskPosition(bond *domain.Bond, qty int64) *domain.Position {
	p := domain.NewPosition(bond)
	p.UpdateBook("TRSY1", qty)
	return p
}

func TestRiskService_AddPosition_CreatesWithDefaultFactor(t *testing.T) {
	s := NewRiskService(nil)
	bond := testBond("CUSIP1")

	s.AddPosition(riskPosition(bond, 100))

	pv, err := s.GetData("CUSIP1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pv.Value != DefaultPV01Factor {
		t.Fatalf("expected factor %v, got %v", DefaultPV01Factor, pv.Value)
	}
	if pv.Quantity != 100 {
		t.Fatalf("expected quantity 100, got %d", pv.Quantity)
	}
}

// Updates replace the quantity with the already-netted aggregate, they
// never accumulate on top of it.
func TestRiskService_AddPosition_ReplacesQuantity(t *testing.T) {
	s := NewRiskService(nil)
	bond := testBond("CUSIP1")
	l := &countingListener[*domain.PV01]{}
	s.AddListener(l)

	s.AddPosition(riskPosition(bond, 100))
	s.AddPosition(riskPosition(bond, 150))

	pv, err := s.GetData("CUSIP1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pv.Quantity != 150 {
		t.Fatalf("expected quantity 150 (replace, not 250), got %d", pv.Quantity)
	}
	if pv.Value != DefaultPV01Factor {
		t.Fatalf("risk factor must stay static, got %v", pv.Value)
	}
	if l.updates != 2 {
		t.Fatalf("expected 2 update notifications, got %d", l.updates)
	}
}

func TestRiskService_GetData_NotFound(t *testing.T) {
	s := NewRiskService(nil)

	_, err := s.GetData("CUSIP1")
	if err != domain.ErrRiskNotFound {
		t.Fatalf("expected ErrRiskNotFound, got %v", err)
	}
}

func TestRiskService_GetBucketedRisk_WeightedAverage(t *testing.T) {
	s := NewRiskService(nil)
	a := testBond("CUSIPA")
	b := testBond("CUSIPB")

	s.AddPosition(riskPosition(a, 100))
	s.AddPosition(riskPosition(b, 200))

	sector := domain.BucketedSector{Name: "FrontEnd", Products: []domain.Product{a, b}}
	sr, err := s.GetBucketedRisk(sector)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(sr.Value-0.01) > 1e-12 {
		t.Fatalf("expected weighted average 0.01, got %v", sr.Value)
	}
	if sr.Quantity != 300 {
		t.Fatalf("expected total quantity 300, got %d", sr.Quantity)
	}
	if sr.Sector.Name != "FrontEnd" {
		t.Fatalf("expected sector FrontEnd, got %s", sr.Sector.Name)
	}
}

func TestRiskService_GetBucketedRisk_UnriskedMember(t *testing.T) {
	s := NewRiskService(nil)
	a := testBond("CUSIPA")
	b := testBond("CUSIPB")

	s.AddPosition(riskPosition(a, 100))

	sector := domain.BucketedSector{Name: "FrontEnd", Products: []domain.Product{a, b}}
	_, err := s.GetBucketedRisk(sector)
	if err != domain.ErrRiskNotFound {
		t.Fatalf("expected ErrRiskNotFound for unrisked member, got %v", err)
	}
}

func TestRiskService_GetBucketedRisk_ZeroQuantity(t *testing.T) {
	s := NewRiskService(nil)
	a := testBond("CUSIPA")
	b := testBond("CUSIPB")

	s.AddPosition(riskPosition(a, 100))
	s.AddPosition(riskPosition(b, -100))

	sector := domain.BucketedSector{Name: "FrontEnd", Products: []domain.Product{a, b}}
	_, err := s.GetBucketedRisk(sector)
	if err != domain.ErrZeroBucketQuantity {
		t.Fatalf("expected ErrZeroBucketQuantity, got %v", err)
	}
}

// Each query constructs a fresh value; mutating one result must not
// leak into the next.
func TestRiskService_GetBucketedRisk_FreshValuePerCall(t *testing.T) {
	s := NewRiskService(nil)
	a := testBond("CUSIPA")

	s.AddPosition(riskPosition(a, 100))
	sector := domain.BucketedSector{Name: "Solo", Products: []domain.Product{a}}

	first, err := s.GetBucketedRisk(sector)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first.Quantity = 999999

	second, err := s.GetBucketedRisk(sector)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.Quantity != 100 {
		t.Fatalf("expected fresh value with quantity 100, got %d", second.Quantity)
	}
}
