// Package db provides PostgreSQL storage for serialized resume documents.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL creates the documents table when it does not exist
const schemaSQL = `CREATE TABLE IF NOT EXISTS resume_documents (
	key        TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	revision   INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the resume_documents table if needed
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create resume_documents table: %w", err)
	}
	return nil
}

// SaveDocument stores content under key, replacing any previous value.
// The content is stored verbatim so the canonical serialization survives byte for byte.
func (db *DB) SaveDocument(ctx context.Context, key, content string) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_documents (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET
		     content = EXCLUDED.content,
		     revision = resume_documents.revision + 1,
		     updated_at = NOW()
		 RETURNING key, content, revision, created_at, updated_at`,
		key, content,
	).Scan(&doc.Key, &doc.Content, &doc.Revision, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by key. Returns nil, nil when no row exists.
func (db *DB) GetDocument(ctx context.Context, key string) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT key, content, revision, created_at, updated_at
		 FROM resume_documents WHERE key = $1`,
		key,
	).Scan(&doc.Key, &doc.Content, &doc.Revision, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return &doc, nil
}

// DeleteDocument removes a document by key
func (db *DB) DeleteDocument(ctx context.Context, key string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resume_documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", key)
	}
	return nil
}
