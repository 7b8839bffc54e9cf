// Package file implements a ContentStore with one JSON file per key.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

// entry is the on-disk layout of one key.
type entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Store implements ports.ContentStore using a file-per-key strategy under dir.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	clean := filepath.Clean(dir)
	if err := os.MkdirAll(clean, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreConnectFailed.Error()), "dir", clean)
	}
	return &Store{dir: clean, now: time.Now}, nil
}

// Get retrieves the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	filename := s.filename(key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	// A different key means a hash collision; the file belongs to someone else.
	if e.Key != key {
		return "", false, nil
	}
	if !e.ExpiresAt.IsZero() && !s.now().Before(e.ExpiresAt) {
		return "", false, nil
	}

	return e.Value, true, nil
}

// Put stores value under key.
func (s *Store) Put(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{Key: key, Value: value}
	if ttl > 0 {
		e.ExpiresAt = s.now().Add(ttl).UTC()
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrRecordEncodeFailed.Error())
	}

	if err := s.atomicWriteFile(s.filename(key), data); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+".json")
}

// atomicWriteFile writes data to a temp file and renames it over path.
func (s *Store) atomicWriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(s.dir, "entry-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
