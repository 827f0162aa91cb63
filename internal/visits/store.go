// Package visits records page visits in SQLite. Client addresses are never
// stored: each one is reduced to a salted, truncated SHA-256 digest.
package visits

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Sentinel errors.
var (
	ErrOpen   = errors.New("opening visit store")
	ErrRecord = errors.New("recording visit")
	ErrQuery  = errors.New("querying visit stats")
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// hashLen is the number of hex characters kept from the digest.
const hashLen = 16

const dayLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip  TEXT    NOT NULL,
	user_agent TEXT    NOT NULL,
	path       TEXT    NOT NULL,
	day        TEXT    NOT NULL,
	at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visits_day ON visits (day);
`

// Visit is one recorded page view.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
	At        time.Time
}

// PathCount is the number of visits to one path.
type PathCount struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

// DayCount is the number of visits on one UTC day.
type DayCount struct {
	Day    string `json:"day"`
	Visits int64  `json:"visits"`
}

// Stats summarizes the visit log.
type Stats struct {
	Total  int64       `json:"total"`
	Unique int64       `json:"unique"`
	Paths  []PathCount `json:"paths"`
	Days   []DayCount  `json:"days"`
}

// Store is a SQLite-backed visit log. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	salt string
}

// Open opens (creating if needed) the store at path. Use MemoryPath for a
// throwaway store.
func Open(ctx context.Context, path, salt string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOpen)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	// SQLite allows one writer; a single connection also keeps an
	// in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return &Store{db: db, salt: salt}, nil
}

// HashIP returns the truncated SHA-256 of ip+salt.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:hashLen]
}

// Record stores v. A zero At is replaced by the current time.
func (s *Store) Record(ctx context.Context, v Visit) error {
	at := v.At
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, day, at) VALUES (?, ?, ?, ?, ?)`,
		HashIP(v.IP, s.salt), v.UserAgent, v.Path, at.Format(dayLayout), at.Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecord, err)
	}
	return nil
}

// Stats returns totals, per-path counts (most visited first) and per-day
// counts for the last days days (oldest first). days <= 0 includes every day.
func (s *Store) Stats(ctx context.Context, days int) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visits`).Scan(&st.Total, &st.Unique)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: totals: %v", ErrQuery, err)
	}

	st.Paths, err = queryCounts(ctx, s.db,
		`SELECT path, COUNT(*) FROM visits GROUP BY path ORDER BY COUNT(*) DESC, path`,
		func(k string, n int64) PathCount { return PathCount{Path: k, Visits: n} })
	if err != nil {
		return Stats{}, fmt.Errorf("%w: paths: %v", ErrQuery, err)
	}

	since := ""
	if days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -(days - 1)).Format(dayLayout)
	}
	st.Days, err = queryCounts(ctx, s.db,
		`SELECT day, COUNT(*) FROM visits WHERE day >= ? GROUP BY day ORDER BY day`,
		func(k string, n int64) DayCount { return DayCount{Day: k, Visits: n} }, since)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: days: %v", ErrQuery, err)
	}

	return st, nil
}

func queryCounts[T any](ctx context.Context, db *sql.DB, query string, mk func(string, int64) T, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out = append(out, mk(key, n))
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
