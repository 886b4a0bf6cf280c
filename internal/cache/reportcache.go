// Package cache stores finished analysis reports on disk so an unchanged
// language file is not re-analyzed.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ReportCache stores serialized reports keyed by a digest of the analyzed
// file bytes and the analysis settings.
type ReportCache struct {
	Dir string
	// StrictPerms, when true, enforces 0700 on the cache directory and 0600
	// on files.
	StrictPerms bool
}

func (c *ReportCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	if c.StrictPerms {
		if info, err := os.Stat(c.Dir); err == nil {
			if info.Mode()&0o777 != 0o700 {
				_ = os.Chmod(c.Dir, 0o700)
			}
		}
	}
	return nil
}

// KeyFrom builds a cache key from the analyzed file content and a canonical
// rendering of the settings that influence the result.
func KeyFrom(content []byte, settings string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte("\n\n"))
	h.Write([]byte(settings))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ReportCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns cached bytes if present. A hit refreshes the entry's mtime so
// EnforceLimits evicts least recently used entries first.
func (c *ReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := c.ensureDir(); err != nil {
		return nil, false, err
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, nil
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return b, true, nil
}

// Save writes bytes to the cache.
func (c *ReportCache) Save(_ context.Context, key string, data []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if c.StrictPerms {
		mode = 0o600
	}
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	return os.Rename(tmp, c.pathFor(key))
}
