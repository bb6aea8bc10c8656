package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/austiecodes/promptrec/internal/utils"
)

//go:embed sql/schema.sql
var schemaSQL string

//go:embed sql/queries.sql
var queriesSQL string

// queries holds parsed SQL queries by name
var queries map[string]string

func init() {
	queries = parseQueries(queriesSQL)
}

// parseQueries extracts named queries from a SQL file.
// Queries are marked with "-- name: QueryName" comments.
func parseQueries(content string) map[string]string {
	result := make(map[string]string)
	re := regexp.MustCompile(`(?m)^--\s*name:\s*(\w+)\s*$`)
	matches := re.FindAllStringSubmatchIndex(content, -1)

	for i, match := range matches {
		name := content[match[2]:match[3]]
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		result[name] = strings.TrimSpace(content[match[1]:end])
	}

	return result
}

// Kind distinguishes the two collaborator calls.
type Kind string

const (
	KindSuggest Kind = "suggest"
	KindChat    Kind = "chat"
)

// Status is the outcome of a recorded request.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
	StatusStale  Status = "stale"
)

// RequestRecord is one row of the request log.
type RequestRecord struct {
	ID          string
	Kind        Kind
	Query       string
	Status      Status
	ResultCount int
	Latency     time.Duration
	Error       string
	CreatedAt   time.Time
}

// KindStats aggregates records sharing a kind and status.
type KindStats struct {
	Kind       Kind
	Status     Status
	Count      int
	AvgLatency time.Duration
}

// Store persists the request log in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens the request log under the app directory.
func NewStore() (*Store, error) {
	appDir, err := utils.GetAppDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(appDir, "requests.db"))
}

// Open opens or creates the request log at path. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request database: %w", err)
	}
	// one connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	store, err := NewStoreWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStoreWithDB creates a store over an existing connection.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Record saves rec, filling ID and CreatedAt when unset.
func (s *Store) Record(rec *RequestRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := s.db.Exec(queries["InsertRequest"],
		rec.ID, string(rec.Kind), rec.Query, string(rec.Status),
		rec.ResultCount, rec.Latency.Milliseconds(), errText, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]RequestRecord, error) {
	rows, err := s.db.Query(queries["SelectRecentRequests"], limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent requests: %w", err)
	}
	defer rows.Close()

	var records []RequestRecord
	for rows.Next() {
		var rec RequestRecord
		var kind, status string
		var latencyMs, createdAtMs int64
		var errText sql.NullString

		if err := rows.Scan(&rec.ID, &kind, &rec.Query, &status,
			&rec.ResultCount, &latencyMs, &errText, &createdAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}

		rec.Kind = Kind(kind)
		rec.Status = Status(status)
		rec.Latency = time.Duration(latencyMs) * time.Millisecond
		rec.CreatedAt = time.UnixMilli(createdAtMs)
		if errText.Valid {
			rec.Error = errText.String
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats returns counts and mean latency grouped by kind and status.
func (s *Store) Stats() ([]KindStats, error) {
	rows, err := s.db.Query(queries["CountRequests"])
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	defer rows.Close()

	var stats []KindStats
	for rows.Next() {
		var ks KindStats
		var kind, status string
		var avgMs float64

		if err := rows.Scan(&kind, &status, &ks.Count, &avgMs); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		ks.Kind = Kind(kind)
		ks.Status = Status(status)
		ks.AvgLatency = time.Duration(avgMs * float64(time.Millisecond))
		stats = append(stats, ks)
	}

	return stats, rows.Err()
}

// Clear deletes every record.
func (s *Store) Clear() error {
	_, err := s.db.Exec(queries["ClearRequests"])
	return err
}
