// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"karatelabs.io/x/launcher/pkg/utils"
)

// DefaultCacheTTL is how long a cached manifest counts as fresh.
const DefaultCacheTTL = 24 * time.Hour

// CacheEntry is the on-disk cache record: the last successfully fetched
// manifest plus the fetch timestamp. An entry older than its TTL is treated
// as absent for the fresh tier but still usable as a stale fallback.
type CacheEntry struct {
	FetchedAt  time.Time       `json:"fetched_at"`
	TTLSeconds int64           `json:"ttl_seconds"`
	Manifest   json.RawMessage `json:"manifest"`
}

func (e *CacheEntry) TTL() time.Duration {
	if e.TTLSeconds <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(e.TTLSeconds) * time.Second
}

func (e *CacheEntry) Fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL()
}

// ReadCache loads a cache entry. A missing file is (nil, nil).
func ReadCache(path string) (*CacheEntry, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// WriteCache persists a fetched manifest. The write goes through a
// process-unique temporary file and a rename, so a concurrent reader never
// sees a partial entry. Losing the write to a race is harmless.
func WriteCache(path string, raw []byte, fetchedAt time.Time) error {
	if err := utils.EnsureDirs(filepath.Dir(path)); err != nil {
		return err
	}
	entry := CacheEntry{
		FetchedAt:  fetchedAt,
		TTLSeconds: int64(DefaultCacheTTL / time.Second),
		Manifest:   json.RawMessage(raw),
	}
	bytes, err := json.MarshalIndent(&entry, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
