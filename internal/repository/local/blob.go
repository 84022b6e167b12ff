// Package local implements the repositories on a single JSON file, one array
// per collection key, mirroring the admin_* localStorage blobs of the browser UI.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	blobDirPerm  = 0o750
	blobFilePerm = 0o600
)

// Blob is a JSON document of collection key to array of records.
// Every read-modify-write runs under mu, so writes are serialized.
type Blob struct {
	mu   sync.Mutex
	path string
}

// Open prepares a blob at path, creating its directory.
func Open(path string) (*Blob, error) {
	if err := os.MkdirAll(filepath.Dir(path), blobDirPerm); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &Blob{path: path}, nil
}

// Path is the file backing the blob.
func (b *Blob) Path() string {
	return b.path
}

// load returns the raw collections; a missing file is an empty blob.
func (b *Blob) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}
	return doc, nil
}

// save replaces the file atomically.
func (b *Blob) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blob: %w", err)
	}

	tmp := b.path + ".tmp"
	if err = os.WriteFile(tmp, data, blobFilePerm); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	if err = os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace blob: %w", err)
	}
	return nil
}

// readKey decodes one collection.
func readKey[T any](doc map[string]json.RawMessage, key string) ([]T, error) {
	raw, ok := doc[key]
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func writeKey[T any](doc map[string]json.RawMessage, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	doc[key] = raw
	return nil
}
