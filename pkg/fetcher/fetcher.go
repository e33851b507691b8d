// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fetcher downloads artifacts over HTTPS, verifies their sha256
// digest, and places them atomically. A destination path never holds a
// partially written file: downloads land in a process-unique temporary file
// in the destination's directory and are renamed into place only after
// verification.
package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jdx/go-netrc"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/launcherversion"
	"karatelabs.io/x/launcher/pkg/utils"
)

const downloadTimeout = 15 * time.Minute

// Progress receives byte counts while a download streams. total is zero when
// the server sends no content length.
type Progress func(done, total uint64)

// Downloader fetches single artifacts. One attempt per invocation, no
// retries and no resume.
type Downloader struct {
	HTTPClient *http.Client
	Progress   Progress
}

func NewDownloader() *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{Timeout: downloadTimeout},
	}
}

// FetchAndVerify downloads url to dest, checking the body's sha256 against
// expectedSHA256 (hex, case-insensitive) when non-empty. On checksum
// mismatch the temporary file is removed and dest is left untouched.
func (d *Downloader) FetchAndVerify(ctx context.Context, rawURL, expectedSHA256, dest string) error {
	if err := RequireHTTPS(rawURL); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return launchererrors.NewNetworkError(err)
	}
	req.Header.Set("User-Agent", launcherversion.UserAgent())
	addNetrcAuth(req)

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return launchererrors.NewNetworkError(
			fmt.Errorf("failed to download %q: %w", rawURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return launchererrors.NewNetworkError(
			fmt.Errorf("failed to download %q: HTTP %d", rawURL, resp.StatusCode))
	}

	if err := utils.EnsureDirs(filepath.Dir(dest)); err != nil {
		return err
	}

	// Temp file lives next to dest so the final rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	hasher := sha256.New()
	total := uint64(0)
	if resp.ContentLength > 0 {
		total = uint64(resp.ContentLength)
	}

	writer := io.MultiWriter(tmp, hasher)
	done, copyErr := copyWithProgress(writer, resp.Body, total, d.Progress)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return launchererrors.NewNetworkError(
			fmt.Errorf("download of %q interrupted after %s: %w", rawURL, humanize.Bytes(done), copyErr))
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return closeErr
	}

	if expectedSHA256 != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, expectedSHA256) {
			os.Remove(tmpPath)
			return launchererrors.NewChecksumMismatchError(
				fmt.Errorf("checksum mismatch for %q: expected %s, got %s", rawURL, strings.ToLower(expectedSHA256), actual))
		}
	}

	return os.Rename(tmpPath, dest)
}

const maxSidecarSize = 64 * 1024

// FetchExpectedDigest retrieves the sha256 sidecar published next to an
// artifact (the artifact URL with a ".sha256" suffix) and extracts the
// digest for the artifact's filename. Used when the manifest entry itself
// carries no checksum.
func (d *Downloader) FetchExpectedDigest(ctx context.Context, artifactURL string) (string, error) {
	sidecarURL := artifactURL + ".sha256"
	if err := RequireHTTPS(sidecarURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sidecarURL, nil)
	if err != nil {
		return "", launchererrors.NewNetworkError(err)
	}
	req.Header.Set("User-Agent", launcherversion.UserAgent())
	addNetrcAuth(req)

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", launchererrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", launchererrors.NewNetworkError(
			fmt.Errorf("failed to fetch checksum sidecar %q: HTTP %d", sidecarURL, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSidecarSize))
	if err != nil {
		return "", launchererrors.NewNetworkError(err)
	}

	u, err := url.Parse(artifactURL)
	if err != nil {
		return "", launchererrors.NewConfigurationError(err)
	}
	return ParseChecksumSidecar(data, filepath.Base(u.Path))
}

func copyWithProgress(dst io.Writer, src io.Reader, total uint64, progress Progress) (uint64, error) {
	buf := make([]byte, 128*1024)
	var done uint64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return done, writeErr
			}
			done += uint64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if readErr == io.EOF {
			return done, nil
		}
		if readErr != nil {
			return done, readErr
		}
	}
}

// RequireHTTPS rejects non-https URLs before any dial.
func RequireHTTPS(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return launchererrors.NewConfigurationError(
			fmt.Errorf("invalid download url %q: %w", rawURL, err))
	}
	if u.Scheme != "https" {
		return launchererrors.NewConfigurationError(
			fmt.Errorf("refusing to download %q: only https urls are allowed", rawURL))
	}
	return nil
}

func addNetrcAuth(req *http.Request) {
	usr, err := user.Current()
	if err != nil {
		return
	}
	n, err := netrc.Parse(filepath.Join(usr.HomeDir, ".netrc"))
	if err != nil {
		return
	}
	machine := n.Machine(req.URL.Hostname())
	if machine == nil {
		return
	}
	req.SetBasicAuth(machine.Get("login"), machine.Get("password"))
}
