// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/diffai/internal/log"
)

const (
	// EnvDir overrides the cache location.
	EnvDir = "DIFFAI_CACHE_DIR"
	// EnvEnabled set to "0" or "false" turns the cache off.
	EnvEnabled = "DIFFAI_CACHE"
)

// Entry is a cached remote object body. Key is the clear-text key and
// EncodedKey the hashed file name.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Dir resolves the base cache directory: DIFFAI_CACHE_DIR when set, else
// os.UserCacheDir()/diffai. It returns false when neither resolves.
func Dir() (string, bool) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, true
	}
	user, err := os.UserCacheDir()
	if err != nil || user == "" {
		return "", false
	}
	return filepath.Join(user, "diffai"), true
}

// Enabled reports whether DIFFAI_CACHE leaves the cache on.
func Enabled() bool {
	switch os.Getenv(EnvEnabled) {
	case "0", "false":
		return false
	}
	return true
}

// EnsureBaseDir creates the cache directory. The bool is false when the cache
// is disabled or has no location.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath is where clearKey lives under subdirs, and whether it is there now.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	parts := append([]string{base}, subdirs...)
	p := filepath.Join(append(parts, encodeKey(clearKey))...)
	_, err := os.Stat(p)
	return p, err == nil
}

// Purge removes entries last written more than hours ago. hours <= 0 keeps
// everything.
func Purge(hours int) error {
	base, ok := Dir()
	if hours <= 0 || !ok {
		return nil
	}

	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	removed := 0
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", p)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	log.Debugf("cache purge: base=%s removed=%d", base, removed)
	return nil
}

// Read returns the cached entry for clearKey. Bodies come back byte for byte
// since tensor files are binary.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{Key: clearKey, EncodedKey: filepath.Base(p), Path: p, Data: data}, true
}

// Write stores data for clearKey under subdirs. A disabled cache is a no-op.
func Write(subdirs []string, clearKey string, data []byte) error {
	p, _ := EntryPath(subdirs, clearKey)
	if !Enabled() || p == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s bytes=%d", clearKey, len(data))
	return nil
}

// Fetch is a read-through lookup: a hit returns the cached body, a miss calls
// fetch and stores what it returns. Write failures only cost the next hit.
func Fetch(subdirs []string, clearKey string, fetch func() ([]byte, error)) ([]byte, error) {
	if e, ok := Read(subdirs, clearKey); ok {
		return e.Data, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := Write(subdirs, clearKey, data); err != nil {
		log.WithError(err).Warnf("cache write skipped: key=%s", clearKey)
	}
	return data, nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
