// Package jsondoc provides atomic whole-document JSON file persistence.
//
// Each document is stored as a single pretty-printed UTF-8 JSON file.
// Writes go to a temporary file in the same directory which is then
// renamed over the target, so readers observe either the previous
// complete document or the new complete document, never a partial write.
package jsondoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CorruptError reports a document file that exists but cannot be parsed.
// It is surfaced to the caller rather than silently replaced by defaults:
// resetting a tenant's data on a parse error would be silent data loss.
type CorruptError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Read loads the JSON document at path into v.
// Returns false with a nil error when the file does not exist, so callers
// can materialize defaults. A file that exists but fails to parse yields
// a *CorruptError.
func Read(path string, v any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is resolved by the layout, not raw user input
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &CorruptError{Path: path, Err: err}
	}
	return true, nil
}

// Write atomically persists v as indented JSON at path, creating parent
// directories as needed.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Write to a temp file in the same directory so the rename stays on
	// one filesystem and is atomic.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("failed to write temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Sync(); err != nil {
		return errors.Join(fmt.Errorf("failed to sync temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close temp file: %w", err), os.Remove(tmpPath))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Join(fmt.Errorf("failed to rename temp file to %s: %w", path, err), os.Remove(tmpPath))
	}
	return nil
}
