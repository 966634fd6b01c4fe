package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps rendered artifacts on disk, one JSON envelope per key,
// fanned out into 256 subdirectories by the first byte of the key hash.
type FileCache struct {
	dir string
}

var _ Cache = (*FileCache)(nil)

// NewFileCache opens (and if needed creates) a cache rooted at dir.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk form of one artifact. A zero Expires never expires.
type envelope struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires_at"`
}

func (e envelope) stale(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Get returns the artifact under key. An unreadable or expired envelope is a
// miss and is dropped from disk.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	file := c.file(key)
	raw, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var env envelope
	if json.Unmarshal(raw, &env) != nil || env.stale(time.Now()) {
		_ = os.Remove(file)
		return nil, false, nil
	}
	return env.Data, true, nil
}

// Set writes data under key; ttl <= 0 keeps it until cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := envelope{Data: data}
	if ttl > 0 {
		env.Expires = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	file := c.file(key)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, raw, 0o644)
}

// Delete drops key. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.file(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op; nothing is held open between calls.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) file(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}
