package service

import (
	"time"

	"github.com/efreitasn/bonddesk/internal/domain"
)

// testBond builds a bond product for tests.
func testBond(cusip string) *domain.Bond {
	return &domain.Bond{
		CUSIP:    cusip,
		Ticker:   "T",
		Coupon:   4.25,
		Maturity: time.Date(2030, 11, 30, 0, 0, 0, 0, time.UTC),
	}
}

// countingListener counts notifications per kind.
type countingListener[V any] struct {
	adds    int
	updates int
	removes int
	lastAdd V
	lastUpd V
}

func (l *countingListener[V]) ProcessAdd(v V)    { l.adds++; l.lastAdd = v }
func (l *countingListener[V]) ProcessUpdate(v V) { l.updates++; l.lastUpd = v }
func (l *countingListener[V]) ProcessRemove(v V) { l.removes++ }
