// Package store caches provider records in SQLite so a process can fall
// back to the last good record when its configuration sources fail.
//
// Each provider is kept as its canonical document plus a separate station
// table. When a cached document carries no stations of its own, the
// station table supplies them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration

	"github.com/dimchat/gsp/internal/provider"
)

// ErrNotFound is returned when a provider is not cached.
var ErrNotFound = errors.New("provider not cached")

// Record describes one cached provider.
type Record struct {
	ID        string
	UpdatedAt time.Time
}

// Store is a provider cache backed by a SQLite file.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenStore opens or creates the cache at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; SQLite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS providers (
			id         TEXT PRIMARY KEY,
			seq        INTEGER NOT NULL,
			document   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS stations (
			provider_id TEXT NOT NULL,
			position    INTEGER NOT NULL,
			id          TEXT NOT NULL,
			name        TEXT NOT NULL DEFAULT '',
			host        TEXT NOT NULL DEFAULT '',
			port        INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (provider_id, id)
		);
		CREATE INDEX IF NOT EXISTS idx_stations_order ON stations(provider_id, position);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProvider stores p's canonical document and replaces its station
// table with p's stations when it has any. A provider keeps its position
// in the provider list across updates.
func (s *Store) SaveProvider(p *provider.Provider) error {
	doc, err := p.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding provider: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO providers (id, seq, document, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM providers), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, p.ID(), string(doc), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving provider %s: %w", p.ID(), err)
	}

	if stations := p.Stations(); len(stations) > 0 {
		if err := replaceStations(tx, p.ID(), stations); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Provider loads a cached record.
func (s *Store) Provider(id string) (*provider.Provider, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM providers WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading provider %s: %w", id, err)
	}

	p, err := provider.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("cached provider %s: %w", id, err)
	}
	if len(p.Stations()) > 0 {
		return p, nil
	}

	stations, err := s.Stations(id)
	if err != nil || len(stations) == 0 {
		return p, err
	}
	table, err := provider.EncodeStations(stations)
	if err != nil {
		return nil, err
	}
	return provider.ParseMerged([]byte(doc), []byte(`{"stations": `+string(table)+`}`))
}

// Providers lists cached providers in the order they were first saved.
func (s *Store) Providers() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, updated_at FROM providers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ts string
		if err := rows.Scan(&r.ID, &ts); err != nil {
			return nil, fmt.Errorf("scanning provider: %w", err)
		}
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveStations replaces the station table of provider id.
func (s *Store) SaveStations(id string, stations []provider.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceStations(tx, id, stations); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceStations(tx *sql.Tx, id string, stations []provider.Station) error {
	if _, err := tx.Exec(`DELETE FROM stations WHERE provider_id = ?`, id); err != nil {
		return fmt.Errorf("clearing stations of %s: %w", id, err)
	}
	for i, st := range stations {
		_, err := tx.Exec(`
			INSERT INTO stations (provider_id, position, id, name, host, port)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, st.ID, st.Name, st.Host, st.Port)
		if err != nil {
			return fmt.Errorf("saving station %s: %w", st.ID, err)
		}
	}
	return nil
}

// Stations returns the station table of provider id in stored order.
func (s *Store) Stations(id string) ([]provider.Station, error) {
	rows, err := s.db.Query(`
		SELECT id, name, host, port FROM stations
		WHERE provider_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	defer rows.Close()

	var out []provider.Station
	for rows.Next() {
		var st provider.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Host, &st.Port); err != nil {
			return nil, fmt.Errorf("scanning station: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// DeleteProvider removes a provider and its station table.
func (s *Store) DeleteProvider(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM providers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting provider %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM stations WHERE provider_id = ?`, id); err != nil {
		return fmt.Errorf("deleting stations of %s: %w", id, err)
	}
	return tx.Commit()
}
