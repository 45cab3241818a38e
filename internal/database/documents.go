package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")

// Documents stores raw dashboard documents by name.
type Documents struct {
	db *sql.DB
}

func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db}
}

func (d *Documents) Get(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT body FROM dashboard_documents WHERE name = $1`,
		name,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return body, nil
}

// Put inserts or replaces a document. body must be valid JSON.
func (d *Documents) Put(ctx context.Context, name string, body []byte) error {
	if !json.Valid(body) {
		return errors.New("document body is not valid JSON")
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO dashboard_documents (name, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`, name, string(body), time.Now())
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}
