// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/jdx/go-netrc"
	"karatelabs.io/x/launcher/pkg/fetcher"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/launcherversion"
)

// Source records where a resolved manifest came from, for diagnostics.
type Source string

const (
	SourceRemote     Source = "remote"
	SourceCache      Source = "cache"
	SourceStaleCache Source = "stale-cache"
	SourceBuiltin    Source = "builtin"
)

const fetchTimeout = 10 * time.Second

// Client fetches the version manifest with a layered fallback: remote,
// fresh cache, stale cache, builtin conventions. It never hard-fails purely
// because the manifest is unreachable.
type Client struct {
	URL        string
	CachePath  string
	HTTPClient *http.Client

	// Now is injectable for cache freshness tests.
	Now func() time.Time
}

func NewClient(paths *launcherconfig.Paths) *Client {
	url := DefaultManifestURL
	if override, ok := os.LookupEnv(launcherconfig.ManifestURLEnvVar); ok {
		url = override
	}
	return &Client{
		URL:        url,
		CachePath:  paths.ManifestCachePath(),
		HTTPClient: &http.Client{Timeout: fetchTimeout},
		Now:        time.Now,
	}
}

// Resolve returns the effective manifest for this invocation.
//
// A fresh cache entry short-circuits the network entirely. Otherwise the
// remote document is fetched, validated and written through to the cache;
// on any failure the chain degrades to the stale cache entry (with a
// warning) and finally to builtin conventions.
func (c *Client) Resolve(ctx context.Context) (*Manifest, Source) {
	cached, err := ReadCache(c.CachePath)
	if err != nil {
		slog.Warn("failed to read manifest cache", "path", c.CachePath, "error", err)
		cached = nil
	}

	if cached != nil && cached.Fresh(c.Now()) {
		if m, err := Parse(cached.Manifest); err == nil {
			return m, SourceCache
		}
		slog.Warn("cached manifest is corrupt, refetching", "path", c.CachePath)
	}

	m, raw, err := c.fetch(ctx)
	if err == nil {
		if cacheErr := WriteCache(c.CachePath, raw, c.Now()); cacheErr != nil {
			slog.Warn("failed to write manifest cache", "path", c.CachePath, "error", cacheErr)
		}
		return m, SourceRemote
	}
	slog.Warn("manifest fetch failed", "url", c.URL, "error", err)

	if cached != nil {
		if m, parseErr := Parse(cached.Manifest); parseErr == nil {
			slog.Warn("using stale cached manifest", "fetched_at", cached.FetchedAt)
			return m, SourceStaleCache
		}
	}

	slog.Warn("no usable manifest, falling back to builtin defaults")
	return Builtin(), SourceBuiltin
}

// Fetch retrieves and validates the remote manifest without any fallback.
// Used by explicit update flows that must report unreachability.
func (c *Client) Fetch(ctx context.Context) (*Manifest, error) {
	m, raw, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr := WriteCache(c.CachePath, raw, c.Now()); cacheErr != nil {
		slog.Warn("failed to write manifest cache", "path", c.CachePath, "error", cacheErr)
	}
	return m, nil
}

func (c *Client) fetch(ctx context.Context) (*Manifest, []byte, error) {
	if err := fetcher.RequireHTTPS(c.URL); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, nil, launchererrors.NewNetworkError(err)
	}
	req.Header.Set("User-Agent", launcherversion.UserAgent())
	addNetrcAuth(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, launchererrors.NewNetworkError(
			fmt.Errorf("failed to fetch manifest from %q: %w", c.URL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, launchererrors.NewNetworkError(
			fmt.Errorf("failed to fetch manifest from %q: HTTP %d", c.URL, resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, launchererrors.NewNetworkError(
			fmt.Errorf("failed to read manifest from %q: %w", c.URL, err))
	}

	m, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return m, raw, nil
}

// addNetrcAuth attaches basic auth from ~/.netrc when the request host has
// an entry there. Absence of the file or the machine is not an error.
func addNetrcAuth(req *http.Request) {
	username, password, found := netrcCredentials(req.URL)
	if found {
		req.SetBasicAuth(username, password)
	}
}

func netrcCredentials(u *url.URL) (string, string, bool) {
	usr, err := user.Current()
	if err != nil {
		return "", "", false
	}
	n, err := netrc.Parse(filepath.Join(usr.HomeDir, ".netrc"))
	if err != nil {
		return "", "", false
	}
	machine := n.Machine(u.Hostname())
	if machine == nil {
		return "", "", false
	}
	return machine.Get("login"), machine.Get("password"), true
}
