package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"veld/internal/diag"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest identifies file content.
type Digest [sha256.Size]byte

// ContentDigest hashes file content for cache lookups.
func ContentDigest(content []byte) Digest {
	return sha256.Sum256(content)
}

// Cache stores scan results per content digest on disk, so unchanged
// files replay their problems instead of being rescanned. The reporter
// layer above never sees the difference: cached problems flow through
// the same entry points as fresh ones.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema   uint16
	Path     string
	Problems []diag.Problem
}

// OpenCache initializes and returns a cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenCacheAt returns a cache rooted at dir; used by tests and by
// --cache-dir overrides.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "scan", hexKey[:2], hexKey+".bin")
}

// Get returns the cached problems for key, if any. A payload with a
// stale schema counts as a miss.
func (c *Cache) Get(key Digest) ([]diag.Problem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return payload.Problems, true
}

// Put stores problems under key.
func (c *Cache) Put(key Digest, path string, problems []diag.Problem) error {
	raw, err := msgpack.Marshal(cachePayload{
		Schema:   cacheSchemaVersion,
		Path:     path,
		Problems: problems,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dest := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	return nil
}
