package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSink writes each key to <dir>/<key>.json
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink rooted at dir, creating the directory if needed
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("file sink: directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("file sink: failed to create directory %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Path returns the file a key is written to
func (f *FileSink) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Write replaces the file for key. The new content is written to a temporary file
// first and renamed into place, so readers never observe a partial document.
func (f *FileSink) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return &InvalidKeyError{Key: key, Reason: "key must not contain path separators"}
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+".*.tmp")
	if err != nil {
		return &WriteError{Sink: "file", Key: key, Cause: err}
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return &WriteError{Sink: "file", Key: key, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &WriteError{Sink: "file", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Sink: "file", Key: key, Cause: err}
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return &WriteError{Sink: "file", Key: key, Cause: err}
	}
	return nil
}

// Close is a no-op
func (f *FileSink) Close() error {
	return nil
}
