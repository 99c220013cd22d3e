// Package refdata loads the bond universe and risk bucket definitions
// from a YAML file. Inbound connectors resolve products here before
// calling into the pipeline.
package refdata

import (
	"fmt"
	"os"
	"time"

	"github.com/efreitasn/bonddesk/internal/domain"
	"gopkg.in/yaml.v3"
)

// bondDef is the YAML shape of one bond.
type bondDef struct {
	CUSIP    string  `yaml:"cusip"`
	Ticker   string  `yaml:"ticker"`
	Coupon   float64 `yaml:"coupon"`
	Maturity string  `yaml:"maturity"` // YYYY-MM-DD
}

// bucketDef is the YAML shape of one risk bucket.
type bucketDef struct {
	Name   string   `yaml:"name"`
	CUSIPs []string `yaml:"cusips"`
}

// fileDef is the YAML document root.
type fileDef struct {
	Bonds   []bondDef   `yaml:"bonds"`
	Buckets []bucketDef `yaml:"buckets"`
}

// Universe holds the resolved bond universe and named sector buckets.
type Universe struct {
	bonds   map[string]*domain.Bond
	order   []string
	sectors map[string]domain.BucketedSector
}

// Load reads and validates a universe file. Duplicate CUSIPs, unknown
// bucket members, and malformed maturities are errors.
func Load(path string) (*Universe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read refdata: %w", err)
	}

	var def fileDef
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse refdata: %w", err)
	}

	return build(def)
}

func build(def fileDef) (*Universe, error) {
	if len(def.Bonds) == 0 {
		return nil, fmt.Errorf("refdata: no bonds defined")
	}

	u := &Universe{
		bonds:   make(map[string]*domain.Bond, len(def.Bonds)),
		sectors: make(map[string]domain.BucketedSector, len(def.Buckets)),
	}

	for _, bd := range def.Bonds {
		if bd.CUSIP == "" {
			return nil, fmt.Errorf("refdata: bond with empty cusip")
		}
		if _, dup := u.bonds[bd.CUSIP]; dup {
			return nil, fmt.Errorf("refdata: duplicate cusip %q", bd.CUSIP)
		}
		maturity, err := time.Parse("2006-01-02", bd.Maturity)
		if err != nil {
			return nil, fmt.Errorf("refdata: bond %q: invalid maturity %q", bd.CUSIP, bd.Maturity)
		}
		u.bonds[bd.CUSIP] = &domain.Bond{
			CUSIP:    bd.CUSIP,
			Ticker:   bd.Ticker,
			Coupon:   bd.Coupon,
			Maturity: maturity,
		}
		u.order = append(u.order, bd.CUSIP)
	}

	for _, bkt := range def.Buckets {
		if bkt.Name == "" {
			return nil, fmt.Errorf("refdata: bucket with empty name")
		}
		if _, dup := u.sectors[bkt.Name]; dup {
			return nil, fmt.Errorf("refdata: duplicate bucket %q", bkt.Name)
		}
		sector := domain.BucketedSector{Name: bkt.Name}
		for _, cusip := range bkt.CUSIPs {
			bond, ok := u.bonds[cusip]
			if !ok {
				return nil, fmt.Errorf("refdata: bucket %q references unknown cusip %q", bkt.Name, cusip)
			}
			sector.Products = append(sector.Products, bond)
		}
		u.sectors[bkt.Name] = sector
	}

	return u, nil
}

// Bond resolves a product by CUSIP. Returns domain.ErrProductNotFound
// for unknown CUSIPs.
func (u *Universe) Bond(cusip string) (*domain.Bond, error) {
	b, ok := u.bonds[cusip]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return b, nil
}

// Bonds returns the universe in file order.
func (u *Universe) Bonds() []*domain.Bond {
	out := make([]*domain.Bond, 0, len(u.order))
	for _, cusip := range u.order {
		out = append(out, u.bonds[cusip])
	}
	return out
}

// Sector resolves a named risk bucket. Returns domain.ErrSectorNotFound
// for unknown buckets.
func (u *Universe) Sector(name string) (domain.BucketedSector, error) {
	s, ok := u.sectors[name]
	if !ok {
		return domain.BucketedSector{}, domain.ErrSectorNotFound
	}
	return s, nil
}

// SectorNames lists the defined bucket names in no particular order.
func (u *Universe) SectorNames() []string {
	names := make([]string, 0, len(u.sectors))
	for name := range u.sectors {
		names = append(names, name)
	}
	return names
}

// Default returns the built-in on-the-run treasury universe used when
// no refdata file is configured: the 2Y through 30Y benchmarks bucketed
// into FrontEnd, Belly, and LongEnd.
func Default() *Universe {
	u, err := build(fileDef{
		Bonds: []bondDef{
			{CUSIP: "91282CAV3", Ticker: "T", Coupon: 4.125, Maturity: "2027-11-30"},
			{CUSIP: "91282CAW1", Ticker: "T", Coupon: 4.000, Maturity: "2028-11-15"},
			{CUSIP: "91282CAX9", Ticker: "T", Coupon: 4.250, Maturity: "2030-11-30"},
			{CUSIP: "91282CAY7", Ticker: "T", Coupon: 4.375, Maturity: "2032-11-15"},
			{CUSIP: "91282CAZ4", Ticker: "T", Coupon: 4.500, Maturity: "2035-11-15"},
			{CUSIP: "912810TXA", Ticker: "T", Coupon: 4.625, Maturity: "2045-11-15"},
			{CUSIP: "912810TYB", Ticker: "T", Coupon: 4.750, Maturity: "2055-11-15"},
		},
		Buckets: []bucketDef{
			{Name: "FrontEnd", CUSIPs: []string{"91282CAV3", "91282CAW1"}},
			{Name: "Belly", CUSIPs: []string{"91282CAX9", "91282CAY7", "91282CAZ4"}},
			{Name: "LongEnd", CUSIPs: []string{"912810TXA", "912810TYB"}},
		},
	})
	if err != nil {
		panic(err)
	}
	return u
}
