package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/earoncy/cyberdiag/internal/recommend"
	"github.com/earoncy/cyberdiag/internal/scoring"
	"github.com/earoncy/cyberdiag/internal/session"
)

//go:embed schema.sql
var schemaSQL string

// AssessmentRecord is one archived assessment result.
type AssessmentRecord struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"session_id"`
	Organization string          `json:"organization"`
	Country      string          `json:"country"`
	Percent      int             `json:"percent"`
	Level        recommend.Level `json:"level"`
	Result       scoring.Result  `json:"result"`
	SessionJSON  string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// History is the SQLite archive of completed assessments.
type History struct {
	db   *sql.DB
	path string
}

// OpenHistory opens (and initializes if needed) the history database.
func OpenHistory(path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of failing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &History{db: db, path: path}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Append archives a scored assessment and returns the stored record.
func (h *History) Append(sess *session.Session, result scoring.Result, level recommend.Level) (*AssessmentRecord, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	sessionJSON, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	rec := &AssessmentRecord{
		ID:           uuid.New().String(),
		SessionID:    sess.ID,
		Organization: sess.Org.Name,
		Country:      sess.Org.Country,
		Percent:      result.Percent,
		Level:        level,
		Result:       result,
		SessionJSON:  string(sessionJSON),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = h.db.Exec(`
		INSERT INTO assessments (id, session_id, organization, country, percent, level, result_json, session_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.Organization, rec.Country, rec.Percent,
		string(rec.Level), string(resultJSON), rec.SessionJSON, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert assessment: %w", err)
	}
	return rec, nil
}

// List returns archived assessments, most recent first. A non-positive
// limit returns everything.
func (h *History) List(limit int) ([]*AssessmentRecord, error) {
	query := `
		SELECT id, session_id, organization, country, percent, level, result_json, session_json, created_at
		FROM assessments ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var records []*AssessmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns one archived assessment by id.
func (h *History) Get(id string) (*AssessmentRecord, error) {
	row := h.db.QueryRow(`
		SELECT id, session_id, organization, country, percent, level, result_json, session_json, created_at
		FROM assessments WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assessment %s not found", id)
	}
	return rec, err
}

// Purge deletes every archived assessment.
func (h *History) Purge() error {
	if _, err := h.db.Exec("DELETE FROM assessments"); err != nil {
		return fmt.Errorf("purge assessments: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	var level, resultJSON string
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.Organization, &rec.Country,
		&rec.Percent, &level, &resultJSON, &rec.SessionJSON, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	rec.Level = recommend.Level(level)
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("decode archived result: %w", err)
	}
	return &rec, nil
}
