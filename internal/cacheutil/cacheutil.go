// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps downloaded workbooks on disk so repeated diffs of
// the same remote object skip the download.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/xlsxdiff/internal/log"
)

// Cache is a directory of entries addressed by bucket and clear-text key.
// Keys are hashed into file names. A disabled Cache misses every Get and
// drops every Put.
type Cache struct {
	dir     string
	enabled bool
}

// New resolves the cache from the environment:
//  1. XLSXDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/xlsxdiff
//
// XLSXDIFF_CACHE=0 or false disables caching.
func New() *Cache {
	if v := os.Getenv("XLSXDIFF_CACHE"); v == "0" || v == "false" {
		return &Cache{}
	}
	if d := os.Getenv("XLSXDIFF_CACHE_DIR"); d != "" {
		return &Cache{dir: d, enabled: true}
	}
	if d, err := os.UserCacheDir(); err == nil && d != "" {
		return &Cache{dir: filepath.Join(d, "xlsxdiff"), enabled: true}
	}
	return &Cache{}
}

// NewAt returns an enabled cache rooted at dir.
func NewAt(dir string) *Cache {
	return &Cache{dir: dir, enabled: dir != ""}
}

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool { return c != nil && c.enabled }

// Dir returns the root directory, or "" when disabled.
func (c *Cache) Dir() string {
	if !c.Enabled() {
		return ""
	}
	return c.dir
}

// Path returns where the entry for key lives.
func (c *Cache) Path(bucket, key string) string {
	return filepath.Join(c.dir, bucket, encodeKey(key))
}

// Get returns the cached bytes for key.
func (c *Cache) Get(bucket, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := os.ReadFile(c.Path(bucket, key))
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s size=%s", key, humanize.Bytes(uint64(len(data))))
	return data, true
}

// Put stores data under key. The file is written to a temp name and renamed
// so a concurrent reader never sees a partial entry.
func (c *Cache) Put(bucket, key string, data []byte) error {
	if !c.Enabled() {
		return nil
	}
	dir := filepath.Join(c.dir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(bucket, key)); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s size=%s", key, humanize.Bytes(uint64(len(data))))
	return nil
}

// Purge removes entries older than maxAge. A non-positive maxAge is a no-op.
func (c *Cache) Purge(maxAge time.Duration) error {
	if maxAge <= 0 || !c.Enabled() {
		log.Debug("cache cleaning disabled")
		return nil
	}

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
