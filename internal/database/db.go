package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/greencalc/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the publish journal connection.
// The journal remembers which ledger rows were published; the ledger file
// stays the source of truth for bill data.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS published_bills (
		seq INTEGER PRIMARY KEY,
		date TEXT NOT NULL,
		kwh REAL NOT NULL,
		published_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_published_date ON published_bills(date);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// MarkPublished records that the bill at bill.Seq was published.
// A row whose date or consumption changed since it was journaled is re-recorded.
func (db *DB) MarkPublished(bill models.BillRecord) error {
	query := `
	INSERT OR REPLACE INTO published_bills (seq, date, kwh, published_at)
	VALUES (?, ?, ?, ?)
	`

	publishedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(query, bill.Seq, bill.DateString(), bill.KWh, publishedAt)
	if err != nil {
		return fmt.Errorf("marking bill as published: %w", err)
	}
	return nil
}

// IsPublished checks whether the journal holds bill at its position with the same date and consumption
func (db *DB) IsPublished(bill models.BillRecord) (bool, error) {
	query := `SELECT date, kwh FROM published_bills WHERE seq = ?`

	var date string
	var kwh float64
	err := db.conn.QueryRow(query, bill.Seq).Scan(&date, &kwh)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying published bill: %w", err)
	}

	return date == bill.DateString() && kwh == bill.KWh, nil
}

// Unpublished filters bills down to those the journal has not seen, keeping order
func (db *DB) Unpublished(bills []models.BillRecord) ([]models.BillRecord, error) {
	published, err := db.publishedSet()
	if err != nil {
		return nil, err
	}

	var results []models.BillRecord
	for _, b := range bills {
		if p, ok := published[b.Seq]; ok && p.date == b.DateString() && p.kwh == b.KWh {
			continue
		}
		results = append(results, b)
	}
	return results, nil
}

// PublishedCount returns the number of journaled bills
func (db *DB) PublishedCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM published_bills`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting published bills: %w", err)
	}
	return n, nil
}

type journalEntry struct {
	date string
	kwh  float64
}

func (db *DB) publishedSet() (map[int]journalEntry, error) {
	rows, err := db.conn.Query(`SELECT seq, date, kwh FROM published_bills`)
	if err != nil {
		return nil, fmt.Errorf("querying published bills: %w", err)
	}
	defer rows.Close()

	set := make(map[int]journalEntry)
	for rows.Next() {
		var seq int
		var e journalEntry
		if err := rows.Scan(&seq, &e.date, &e.kwh); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		set[seq] = e
	}

	return set, rows.Err()
}
