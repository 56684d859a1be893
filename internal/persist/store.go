package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a save slot has never been written.
var ErrNotFound = errors.New("persist: slot not found")

// Slot is one save-slot row.
type Slot struct {
	Name      string
	Payload   []byte
	UpdatedAt time.Time
}

// Store is a sqlite-backed save-slot store. One row per named slot; a
// write replaces the previous payload for that slot.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Open opens (creating if needed) the save database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open save db %s: %w", path, err)
	}
	// The tick loop is the only writer; a single connection avoids
	// sqlite busy errors without WAL tuning.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init save schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes a slot, replacing any previous payload.
func (s *Store) Put(name string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", name, err)
	}
	return nil
}

// Get reads a slot's payload. Returns ErrNotFound for an unwritten slot.
func (s *Store) Get(name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM saves WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", name, err)
	}
	return payload, nil
}

// List returns every slot, newest first, payloads included.
func (s *Store) List() ([]Slot, error) {
	rows, err := s.db.Query(`SELECT name, payload, updated_at FROM saves ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var slot Slot
		var ts int64
		if err := rows.Scan(&slot.Name, &slot.Payload, &ts); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slot.UpdatedAt = time.Unix(ts, 0)
		out = append(out, slot)
	}
	return out, rows.Err()
}
