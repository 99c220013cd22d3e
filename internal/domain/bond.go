package domain

import "time"

// Product is any instrument the services distribute data for. It is opaque
// to the pipeline; services only rely on its identifier.
type Product interface {
	ProductID() string
}

// Bond is a fixed-income product identified by its CUSIP.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   float64
	Maturity time.Time
}

// ProductID returns the CUSIP.
func (b *Bond) ProductID() string {
	return b.CUSIP
}
