// Package cache provides a TTL key/value store persisting each entry as an independent JSON document.
//
// Corruption of one entry can never affect another, and a corrupt or expired
// entry is evicted and reported as a miss rather than surfaced as an error.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/log"
)

// entry is the on-disk envelope wrapped around every cached value.
type entry struct {
	Key        string          `json:"key"`
	Timestamp  int64           `json:"timestamp"`
	TTLSeconds int64           `json:"ttl_seconds"`
	Data       json.RawMessage `json:"data"`
}

// Cache is a filesystem-backed TTL store. A single coarse lock serializes all
// readers and writers; call volume is one logical request per navigation, so
// simplicity wins over throughput here.
type Cache struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// New returns a cache rooted at dir. The directory is created on first write.
func New(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

func (c *Cache) filepath(key string) string {
	digest := sha1.Sum([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(digest[:])+".json")
}

// Get reads the entry for key into target and reports whether it was a hit.
// Absent, expired, and unparsable entries all read as a miss; the latter two
// are evicted on the way out.
func (c *Cache) Get(key string, ttl time.Duration, target any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filepath(key)
	raw, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Debugf("cache: evicting corrupt entry %s: %v", key, err)
		_ = filesystem.API().Remove(path)
		return false
	}

	if c.now().Unix()-e.Timestamp > int64(ttl.Seconds()) {
		_ = filesystem.API().Remove(path)
		return false
	}

	if err := json.Unmarshal(e.Data, target); err != nil {
		log.Debugf("cache: evicting undecodable entry %s: %v", key, err)
		_ = filesystem.API().Remove(path)
		return false
	}
	return true
}

// Set persists value under key, overwriting any prior entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := entry{
		Key:        key,
		Timestamp:  c.now().Unix(),
		TTLSeconds: int64(ttl.Seconds()),
		Data:       data,
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := filesystem.API().MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return filesystem.API().WriteFile(c.filepath(key), raw, 0o644)
}

// Delete evicts the entry for key, if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = filesystem.API().Remove(c.filepath(key))
}

// ClearPrefix evicts every entry whose logical key starts with prefix.
// Entries whose envelope cannot be read are evicted as well.
func (c *Cache) ClearPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos, err := filesystem.API().ReadDir(c.dir)
	if err != nil {
		return
	}

	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}

		path := filepath.Join(c.dir, info.Name())
		raw, err := filesystem.API().ReadFile(path)
		if err != nil {
			continue
		}

		var e entry
		if err := json.Unmarshal(raw, &e); err != nil || strings.HasPrefix(e.Key, prefix) {
			_ = filesystem.API().Remove(path)
		}
	}
}

// ClearAll evicts every entry.
func (c *Cache) ClearAll() {
	c.ClearPrefix("")
}
