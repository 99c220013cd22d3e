package domain

// PV01 is the price value of a one-basis-point rate move for a product,
// together with the position quantity the figure applies to.
type PV01 struct {
	Product  Product
	Value    float64
	Quantity int64
}

// BucketedSector is a named, fixed group of products whose risk is
// aggregated together. Sectors are never stored by a service; bucketed
// risk is computed on demand from current PV01 values of the members.
type BucketedSector struct {
	Name     string
	Products []Product
}

// SectorRisk is the bucketed risk for a sector: the quantity-weighted
// average PV01 of the members and the total quantity. A fresh value is
// constructed per query.
type SectorRisk struct {
	Sector   BucketedSector
	Value    float64
	Quantity int64
}
