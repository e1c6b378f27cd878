package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps documents in the "documents" table as JSON.
// Works with any sqlx driver whose SQL accepts $N placeholders and
// ON CONFLICT upserts (sqlite, pgx).
type SQLStore struct {
	db *sqlx.DB
}

type documentRow struct {
	ID     string `db:"id"`
	Fields string `db:"fields"`
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, path string) (Fields, error) {
	if _, _, err := split(path); err != nil {
		return nil, err
	}

	var raw string
	query := `SELECT fields FROM documents WHERE path = $1`

	err := s.db.GetContext(ctx, &raw, query, path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return decodeFields(raw)
}

func (s *SQLStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	query := `SELECT id, fields FROM documents WHERE parent = $1 ORDER BY id ASC`

	err := s.db.SelectContext(ctx, &rows, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Fields)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", row.ID, err)
		}
		docs = append(docs, Document{ID: row.ID, Fields: fields})
	}

	return docs, nil
}

func (s *SQLStore) Set(ctx context.Context, path string, fields Fields) error {
	parent, id, err := split(path)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO documents (path, parent, id, fields, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (path) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query, path, parent, id, string(raw), now, now)
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}

	return nil
}

func (s *SQLStore) Delete(ctx context.Context, path string) error {
	if _, _, err := split(path); err != nil {
		return err
	}

	query := `DELETE FROM documents WHERE path = $1`
	_, err := s.db.ExecContext(ctx, query, path)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func decodeFields(raw string) (Fields, error) {
	fields := Fields{}
	err := json.Unmarshal([]byte(raw), &fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return fields, nil
}
