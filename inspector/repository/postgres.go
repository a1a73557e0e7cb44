package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/viant/callflow/inspector/graph"
)

// PostgresStore keeps project raw data and node source units in PostgreSQL
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

// RawData represents an uploaded project document
type RawData struct {
	ID          int64
	ProjectName string
	Created     time.Time
	Data        []byte
}

// NewPostgresStore opens a store for the supplied DSN
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the underlying pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates store tables once
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS raw_data (
  id BIGSERIAL PRIMARY KEY,
  project_name TEXT NOT NULL DEFAULT '',
  created TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  data TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS node (
  id BIGSERIAL PRIMARY KEY,
  raw_data BIGINT NOT NULL REFERENCES raw_data(id) ON DELETE CASCADE,
  project_name TEXT NOT NULL DEFAULT '',
  node_name TEXT NOT NULL,
  created TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  file TEXT NOT NULL DEFAULT '',
  UNIQUE (raw_data, node_name)
);
CREATE INDEX IF NOT EXISTS idx_node_raw_data ON node (raw_data);
`)
	})
	return s.schemaErr
}

// PutRawData stores a project document and returns its id
func (s *PostgresStore) PutRawData(ctx context.Context, projectName string, data []byte) (int64, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO raw_data (project_name, data) VALUES ($1, $2) RETURNING id`, projectName, string(data)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert raw data %s: %w", projectName, err)
	}
	return id, nil
}

// RawData returns a project document
func (s *PostgresStore) RawData(ctx context.Context, id int64) (*RawData, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	var result = &RawData{ID: id}
	var data string
	err := s.db.QueryRowContext(ctx, `
SELECT project_name, created, data FROM raw_data WHERE id = $1`, id).Scan(&result.ProjectName, &result.Created, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &graph.NotFoundError{Kind: "raw data", Name: strconv.FormatInt(id, 10), In: "store"}
	}
	if err != nil {
		return nil, err
	}
	result.Data = []byte(data)
	return result, nil
}

// PutNode upserts a node source unit
func (s *PostgresStore) PutNode(ctx context.Context, rawDataID int64, projectName string, unit *graph.Unit) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO node (raw_data, project_name, node_name, file)
VALUES ($1, $2, $3, $4)
ON CONFLICT (raw_data, node_name)
DO UPDATE SET file=EXCLUDED.file, project_name=EXCLUDED.project_name, created=NOW()`,
		rawDataID, projectName, unit.Name, unit.Text)
	return err
}

// Units returns node source units of a raw data id, project is the decimal id
func (s *PostgresStore) Units(ctx context.Context, project string) (graph.Units, error) {
	id, err := ParseRawDataID(project)
	if err != nil {
		return nil, err
	}
	if _, err = s.RawData(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT node_name, file FROM node WHERE raw_data = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var units = graph.Units{}
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, err
		}
		units[name] = text
	}
	return units, rows.Err()
}

// ParseRawDataID parses a positive raw data id
func ParseRawDataID(project string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(project), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid raw data id: %q", project)
	}
	return id, nil
}
