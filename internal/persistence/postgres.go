package persistence

import (
	"context"

	"github.com/jonathan/resume-builder/internal/db"
)

// PostgresSink stores values in the resume_documents table
type PostgresSink struct {
	db *db.DB
}

// NewPostgresSink creates a PostgresSink over an open database and ensures the table exists
func NewPostgresSink(ctx context.Context, database *db.DB) (*PostgresSink, error) {
	if err := database.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return &PostgresSink{db: database}, nil
}

// Write upserts the value under key
func (p *PostgresSink) Write(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := p.db.SaveDocument(ctx, key, value); err != nil {
		return &WriteError{Sink: "postgres", Key: key, Cause: err}
	}
	return nil
}

// Close closes the connection pool
func (p *PostgresSink) Close() error {
	p.db.Close()
	return nil
}
