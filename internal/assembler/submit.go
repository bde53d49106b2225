package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultKey is the key the serialized document is written under
const DefaultKey = "resumeData"

// Sink is the key-value persistence capability a Submitter writes to
type Sink interface {
	Write(ctx context.Context, key, value string) error
}

// Result describes a successful submit
type Result struct {
	Key      string
	Text     string
	Document types.ResumeDocument
	Duration time.Duration
}

// Submitter assembles, serializes and persists documents. At most one submit runs at a time.
type Submitter struct {
	sink   Sink
	key    string
	logger *slog.Logger
	busy   atomic.Bool
}

// NewSubmitter creates a Submitter writing under key. An empty key uses DefaultKey;
// a nil logger uses slog.Default().
func NewSubmitter(sink Sink, key string, logger *slog.Logger) *Submitter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{sink: sink, key: key, logger: logger}
}

// Key returns the key documents are written under
func (s *Submitter) Key() string {
	return s.key
}

// Submit snapshots src, serializes the snapshot and writes it to the sink.
// It never mutates src. A sink failure is returned as *PersistenceError.
func (s *Submitter) Submit(ctx context.Context, src Source) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.busy.Store(false)

	return s.write(ctx, Assemble(src))
}

// SubmitDocument writes an already assembled document. Hosts that guard the store
// with a lock assemble under the lock and submit after releasing it.
func (s *Submitter) SubmitDocument(ctx context.Context, doc types.ResumeDocument) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.busy.Store(false)

	return s.write(ctx, doc)
}

func (s *Submitter) write(ctx context.Context, doc types.ResumeDocument) (*Result, error) {
	start := time.Now()
	text, err := Serialize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resume document: %w", err)
	}

	if err := s.sink.Write(ctx, s.key, text); err != nil {
		s.logger.Error("resume submit failed", "key", s.key, "error", err)
		return nil, &PersistenceError{Key: s.key, Cause: err}
	}

	elapsed := time.Since(start)
	s.logger.Info("resume submitted", "key", s.key, "bytes", len(text), "duration", elapsed)

	return &Result{Key: s.key, Text: text, Document: doc, Duration: elapsed}, nil
}
