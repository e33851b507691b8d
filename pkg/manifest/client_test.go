// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karatelabs.io/x/launcher/pkg/launchererrors"
)

type manifestServer struct {
	ts       *httptest.Server
	requests atomic.Int64
	fail     atomic.Bool
	body     []byte
}

func newManifestServer(t *testing.T, body string) *manifestServer {
	t.Helper()
	s := &manifestServer{body: []byte(body)}
	s.ts = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if s.fail.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(s.body)
	}))
	t.Cleanup(s.ts.Close)
	return s
}

func newTestClient(t *testing.T, s *manifestServer) *Client {
	t.Helper()
	return &Client{
		URL:        s.ts.URL,
		CachePath:  filepath.Join(t.TempDir(), "cache", "manifest.json"),
		HTTPClient: s.ts.Client(),
		Now:        time.Now,
	}
}

func TestResolveRemoteWritesCache(t *testing.T) {
	s := newManifestServer(t, validManifest)
	c := newTestClient(t, s)

	m, source := c.Resolve(context.Background())
	assert.Equal(t, SourceRemote, source)

	version, found := m.ChannelDefault("stable", ArchiveArtifact)
	require.True(t, found)
	assert.Equal(t, "1.5.2", version)

	entry, err := ReadCache(c.CachePath)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Fresh(time.Now()))

	// Round-trip: the cached manifest is the one fetched.
	cached, err := Parse(entry.Manifest)
	require.NoError(t, err)
	assert.Equal(t, m, cached)
}

func TestResolveFreshCacheSkipsNetwork(t *testing.T) {
	s := newManifestServer(t, validManifest)
	c := newTestClient(t, s)

	_, source := c.Resolve(context.Background())
	require.Equal(t, SourceRemote, source)
	require.Equal(t, int64(1), s.requests.Load())

	_, source = c.Resolve(context.Background())
	assert.Equal(t, SourceCache, source)
	assert.Equal(t, int64(1), s.requests.Load())
}

func TestResolveStaleCacheFallback(t *testing.T) {
	s := newManifestServer(t, validManifest)
	c := newTestClient(t, s)

	_, source := c.Resolve(context.Background())
	require.Equal(t, SourceRemote, source)

	// Expire the cache and break the network.
	c.Now = func() time.Time { return time.Now().Add(2 * DefaultCacheTTL) }
	s.fail.Store(true)

	m, source := c.Resolve(context.Background())
	assert.Equal(t, SourceStaleCache, source)

	version, found := m.ChannelDefault("stable", ArchiveArtifact)
	require.True(t, found)
	assert.Equal(t, "1.5.2", version)
}

func TestResolveBuiltinFallback(t *testing.T) {
	s := newManifestServer(t, validManifest)
	s.fail.Store(true)
	c := newTestClient(t, s)

	m, source := c.Resolve(context.Background())
	assert.Equal(t, SourceBuiltin, source)
	require.NoError(t, m.Validate())
}

func TestResolveCorruptRemoteFallsBack(t *testing.T) {
	s := newManifestServer(t, `{"schema_version": 1}`)
	c := newTestClient(t, s)

	_, source := c.Resolve(context.Background())
	assert.Equal(t, SourceBuiltin, source)
}

func TestFetchReportsUnreachability(t *testing.T) {
	s := newManifestServer(t, validManifest)
	s.fail.Store(true)
	c := newTestClient(t, s)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}

func TestFetchRejectsPlainHTTPURL(t *testing.T) {
	c := &Client{
		URL:        "http://example.com/manifest.json",
		CachePath:  filepath.Join(t.TempDir(), "cache", "manifest.json"),
		HTTPClient: http.DefaultClient,
		Now:        time.Now,
	}

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, launchererrors.ConfigurationError, launchererrors.Standardize(err).Code)

	// Without a cache the resolver degrades to builtin conventions.
	m, source := c.Resolve(context.Background())
	assert.Equal(t, SourceBuiltin, source)
	require.NoError(t, m.Validate())
}

func TestCacheWriteFailureIsNonFatal(t *testing.T) {
	s := newManifestServer(t, validManifest)
	c := newTestClient(t, s)
	// A cache path that cannot be created: parent is a file.
	parent := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))
	c.CachePath = filepath.Join(parent, "manifest.json")

	_, source := c.Resolve(context.Background())
	assert.Equal(t, SourceRemote, source)
}
