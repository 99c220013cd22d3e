// Package persist implements the durable layer behind the historical
// data services: a SQLite-backed recorder for positions, risk,
// executions, price streams, and inquiries.
package persist

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/efreitasn/bonddesk/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	persist_key  TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	aggregate    INTEGER NOT NULL,
	books        TEXT NOT NULL,
	recorded_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS risk (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	persist_key  TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	pv01         REAL NOT NULL,
	quantity     INTEGER NOT NULL,
	recorded_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS executions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	persist_key  TEXT NOT NULL,
	order_id     TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	side         TEXT NOT NULL,
	order_type   TEXT NOT NULL,
	price        REAL NOT NULL,
	visible_qty  INTEGER NOT NULL,
	hidden_qty   INTEGER NOT NULL,
	recorded_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS price_streams (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	persist_key   TEXT NOT NULL,
	product_id    TEXT NOT NULL,
	bid_price     REAL NOT NULL,
	bid_visible   INTEGER NOT NULL,
	bid_hidden    INTEGER NOT NULL,
	offer_price   REAL NOT NULL,
	offer_visible INTEGER NOT NULL,
	offer_hidden  INTEGER NOT NULL,
	recorded_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS inquiries (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	persist_key  TEXT NOT NULL,
	inquiry_id   TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	side         TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	price        REAL NOT NULL,
	state        TEXT NOT NULL,
	recorded_at  TEXT NOT NULL
);
`

// Store is a SQLite-backed append-only recorder. Every Record* call
// inserts a new row, so the tables hold the full history of snapshots
// rather than only the latest value.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath, creates the
// tables, and returns a ready-to-use Store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// RecordPosition appends a position snapshot.
func (s *Store) RecordPosition(persistKey string, p *domain.Position) error {
	books, err := json.Marshal(p.Books())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO positions (persist_key, product_id, aggregate, books, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		persistKey, p.Product().ProductID(), p.AggregatePosition(), string(books), now(),
	)
	return err
}

// RecordRisk appends a PV01 snapshot.
func (s *Store) RecordRisk(persistKey string, pv *domain.PV01) error {
	_, err := s.db.Exec(
		`INSERT INTO risk (persist_key, product_id, pv01, quantity, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		persistKey, pv.Product.ProductID(), pv.Value, pv.Quantity, now(),
	)
	return err
}

// RecordExecution appends an execution order snapshot.
func (s *Store) RecordExecution(persistKey string, o *domain.ExecutionOrder) error {
	_, err := s.db.Exec(
		`INSERT INTO executions (persist_key, order_id, product_id, side, order_type, price, visible_qty, hidden_qty, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		persistKey, o.OrderID, o.Product.ProductID(), string(o.Side), string(o.OrderType),
		o.Price, o.VisibleQuantity, o.HiddenQuantity, now(),
	)
	return err
}

// RecordPriceStream appends a two-way stream snapshot.
func (s *Store) RecordPriceStream(persistKey string, ps *domain.PriceStream) error {
	_, err := s.db.Exec(
		`INSERT INTO price_streams (persist_key, product_id, bid_price, bid_visible, bid_hidden, offer_price, offer_visible, offer_hidden, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		persistKey, ps.Product.ProductID(),
		ps.BidOrder.Price, ps.BidOrder.VisibleQuantity, ps.BidOrder.HiddenQuantity,
		ps.OfferOrder.Price, ps.OfferOrder.VisibleQuantity, ps.OfferOrder.HiddenQuantity,
		now(),
	)
	return err
}

// RecordInquiry appends an inquiry snapshot.
func (s *Store) RecordInquiry(persistKey string, i *domain.Inquiry) error {
	_, err := s.db.Exec(
		`INSERT INTO inquiries (persist_key, inquiry_id, product_id, side, quantity, price, state, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		persistKey, i.InquiryID, i.Product.ProductID(), string(i.Side), i.Quantity, i.Price, string(i.State), now(),
	)
	return err
}

// CountRows returns the number of rows in a recorder table. Intended
// for tests and operational checks.
func (s *Store) CountRows(table string) (int, error) {
	switch table {
	case "positions", "risk", "executions", "price_streams", "inquiries":
	default:
		return 0, sql.ErrNoRows
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
	return n, err
}
