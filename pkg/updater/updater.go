// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package updater reconciles the manifest against local installed state.
// Components are processed sequentially and independently; a failure in one
// never blocks the other. Placement is additive-then-prune: the new artifact
// is fully in place before any old version is removed, so a concurrent
// launch reading the old path still succeeds.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"karatelabs.io/x/launcher/pkg/archive"
	"karatelabs.io/x/launcher/pkg/fetcher"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/manifest"
	"karatelabs.io/x/launcher/pkg/platform"
	"karatelabs.io/x/launcher/pkg/utils"
	"karatelabs.io/x/launcher/pkg/versionresolve"
)

// Phase tracks a component through its update lifecycle.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseResolving   Phase = "resolving"
	PhaseUpToDate    Phase = "up-to-date"
	PhaseNeedsAction Phase = "needs-action"
	PhaseConfirming  Phase = "confirming"
	PhaseFetching    Phase = "fetching"
	PhaseVerifying   Phase = "verifying"
	PhasePlacing     Phase = "placing"
	PhaseDone        Phase = "done"
	PhaseSkipped     Phase = "skipped"
	PhaseFailed      Phase = "failed"
)

// Result is the terminal report for one component.
type Result struct {
	Component string `json:"component"`
	Phase     Phase  `json:"phase"`
	Target    string `json:"target,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Err       error  `json:"-"`
}

// Components in update order.
var Components = []string{manifest.ArchiveArtifact, manifest.RuntimeArtifact}

// Updater drives setup and update flows.
type Updater struct {
	Paths      *launcherconfig.Paths
	Config     *launcherconfig.Config
	Platform   *platform.Platform
	Manifest   *manifest.Manifest
	Downloader *fetcher.Downloader
	Runtimes   *jre.Manager

	// Confirm is asked before fetching each component. Nil means proceed.
	Confirm func(prompt string) bool
	// Force treats up-to-date components as needing action.
	Force bool

	Printer utils.RawPrinter
}

// Run processes the requested components and returns their terminal
// results. The worst per-component outcome decides the exit code.
func (u *Updater) Run(ctx context.Context, components []string) []Result {
	if len(components) == 0 {
		components = Components
	}

	results := make([]Result, 0, len(components))
	for _, component := range components {
		results = append(results, u.runComponent(ctx, component))
	}

	u.recordUpdateCheck()
	return results
}

// ExitCode folds component results into the process exit code, reporting
// the most severe failure.
func ExitCode(results []Result) int {
	code := launchererrors.ExitSuccess
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if c := launchererrors.ExitCode(r.Err); c > code {
			code = c
		}
	}
	return code
}

func (u *Updater) runComponent(ctx context.Context, component string) Result {
	result := Result{Component: component, Phase: PhaseResolving}

	res, err := u.resolve(component)
	if err != nil {
		return u.fail(result, err)
	}
	result.Target = res.Target

	if overridden, detail := u.overridden(component); overridden {
		result.Phase = PhaseSkipped
		result.Detail = detail
		return result
	}

	if res.State == versionresolve.UpToDate && !u.Force {
		result.Phase = PhaseUpToDate
		return result
	}

	result.Phase = PhaseConfirming
	if u.Confirm != nil {
		prompt := fmt.Sprintf("Install %s %s?", component, res.Target)
		if !u.Confirm(prompt) {
			result.Phase = PhaseSkipped
			result.Detail = "declined"
			return result
		}
	}

	switch component {
	case manifest.ArchiveArtifact:
		err = u.installArchive(ctx, res.Target)
	case manifest.RuntimeArtifact:
		err = u.installRuntime(ctx, res.Target)
	default:
		err = launchererrors.NewConfigurationError(fmt.Errorf("unknown component %q", component))
	}
	if err != nil {
		return u.fail(result, err)
	}

	result.Phase = PhaseDone
	return result
}

func (u *Updater) fail(result Result, err error) Result {
	result.Phase = PhaseFailed
	result.Err = err
	result.Detail = err.Error()
	slog.Error("component update failed", "component", result.Component, "error", err)
	return result
}

func (u *Updater) resolve(component string) (*versionresolve.Resolution, error) {
	req := versionresolve.Request{
		Artifact: component,
		Channel:  u.Config.Channel,
		Version:  launcherconfig.LatestVersion,
	}
	if component == manifest.ArchiveArtifact {
		req.Version = u.Config.Version
		req.OverridePath = u.Config.DistPath
	}

	installed, err := u.installedVersions(component)
	if err != nil {
		return nil, err
	}
	return versionresolve.Resolve(req, u.Manifest, installed)
}

func (u *Updater) installedVersions(component string) ([]string, error) {
	switch component {
	case manifest.ArchiveArtifact:
		root, _ := u.Paths.ResolveRoot(launcherconfig.Archive)
		return archive.InstalledVersions(root)
	case manifest.RuntimeArtifact:
		return u.Runtimes.InstalledVersions()
	}
	return nil, nil
}

// overridden reports whether a component is user-managed via an explicit
// path, in which case the updater never touches it.
func (u *Updater) overridden(component string) (bool, string) {
	switch component {
	case manifest.ArchiveArtifact:
		if u.Config.DistPath != "" {
			return true, fmt.Sprintf("dist-path override %q is user-managed", u.Config.DistPath)
		}
	case manifest.RuntimeArtifact:
		if u.Config.JrePath != "" {
			return true, fmt.Sprintf("jre-path override %q is user-managed", u.Config.JrePath)
		}
	}
	return false, ""
}

func (u *Updater) installArchive(ctx context.Context, target string) error {
	download, err := u.Manifest.ResolveDownload(manifest.ArchiveArtifact, target, u.Platform.Key())
	if err != nil {
		return err
	}

	root, _ := u.Paths.ResolveRoot(launcherconfig.Archive)
	if err := utils.EnsureDirs(root); err != nil {
		return err
	}

	dest := archive.JarPath(root, target)
	u.progressf("Downloading %s %s", manifest.ArchiveArtifact, target)
	if err := u.Downloader.FetchAndVerify(ctx, download.URL, u.expectedDigest(ctx, download), dest); err != nil {
		return err
	}

	u.pruneArchives(root, target)
	return nil
}

func (u *Updater) installRuntime(ctx context.Context, target string) error {
	download, err := u.Manifest.ResolveDownload(manifest.RuntimeArtifact, target, u.Platform.Key())
	if err != nil {
		return err
	}

	root, _ := u.Paths.ResolveRoot(launcherconfig.Runtime)
	if err := utils.EnsureDirs(root); err != nil {
		return err
	}

	// Download and staging both live under the runtime root so the final
	// rename stays on one filesystem.
	archivePath := filepath.Join(root, filepath.Base(download.URL))
	u.progressf("Downloading %s %s", manifest.RuntimeArtifact, target)
	if err := u.Downloader.FetchAndVerify(ctx, download.URL, u.expectedDigest(ctx, download), archivePath); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	staging, cleanup, err := utils.MkdirTemp(root, ".extract-*")
	if err != nil {
		return err
	}
	defer cleanup()

	u.progressf("Extracting %s", filepath.Base(archivePath))
	if err := fetcher.Extract(archivePath, staging); err != nil {
		return launchererrors.NewRuntimeUnavailableError(
			fmt.Errorf("failed to extract runtime archive: %w", err))
	}

	dest := filepath.Join(root, u.Platform.RuntimeDirName(target))
	if err := placeRuntime(extractedRoot(staging), dest); err != nil {
		return launchererrors.NewRuntimeUnavailableError(err)
	}

	if _, err := jre.FindJavaExecutable(dest, u.Platform); err != nil {
		return launchererrors.NewRuntimeUnavailableError(
			fmt.Errorf("extracted runtime %q is unusable: %w", dest, err))
	}

	u.pruneRuntimes(root, target)
	return nil
}

// expectedDigest returns the checksum to verify a download against. Manifest
// entries usually carry one inline; convention-derived entries do not, in
// which case a ".sha256" sidecar next to the artifact is tried. Without
// either the download proceeds unverified.
func (u *Updater) expectedDigest(ctx context.Context, download *manifest.Download) string {
	if download.SHA256 != "" {
		return download.SHA256
	}
	digest, err := u.Downloader.FetchExpectedDigest(ctx, download.URL)
	if err != nil {
		slog.Debug("no checksum sidecar", "url", download.URL, "error", err)
		return ""
	}
	return digest
}

// placeRuntime renames the extracted runtime into dest. A directory already
// present at dest (a forced re-install, or a concurrent invocation that won
// the race on the same version) is moved aside first and removed only after
// the replacement is in place, so a reader never finds dest missing or
// half-written.
func placeRuntime(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if _, statErr := os.Stat(dest); statErr != nil {
		return err
	}

	aside := fmt.Sprintf("%s.old-%d-%d", dest, os.Getpid(), time.Now().UnixNano())
	if err := os.Rename(dest, aside); err != nil {
		return err
	}
	if err := os.Rename(src, dest); err != nil {
		// Restore the previous runtime so the installation stays usable.
		_ = os.Rename(aside, dest)
		return err
	}
	_ = os.RemoveAll(aside)
	return nil
}

// extractedRoot returns the directory to move into place: the single
// top-level directory when the archive is wrapped in one, else the staging
// directory itself.
func extractedRoot(staging string) string {
	entries, err := os.ReadDir(staging)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return staging
	}
	return filepath.Join(staging, entries[0].Name())
}

// pruneArchives removes superseded jars after the target is in place.
// Failures are warnings; license files are never touched.
func (u *Updater) pruneArchives(root, keep string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || isProtectedFile(e.Name()) {
			continue
		}
		v := archive.VersionFromJarName(e.Name())
		if v == "" || v == keep {
			continue
		}
		if err := os.Remove(filepath.Join(root, e.Name())); err != nil {
			slog.Warn("failed to prune old archive", "file", e.Name(), "error", err)
		}
	}
}

func (u *Updater) pruneRuntimes(root, keep string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	keepDir := u.Platform.RuntimeDirName(keep)
	suffix := "-" + u.Platform.Key()
	for _, e := range entries {
		if !e.IsDir() || e.Name() == keepDir {
			continue
		}
		// Only prune runtimes for this platform; other dirs are not ours.
		if len(e.Name()) <= len(suffix) || e.Name()[len(e.Name())-len(suffix):] != suffix {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			slog.Warn("failed to prune old runtime", "dir", e.Name(), "error", err)
		}
	}
}

func isProtectedFile(name string) bool {
	return name == launcherconfig.LicenseFileName || name == launcherconfig.ThirdPartyLicenseFileName
}

// recordUpdateCheck stamps the last-update-check record. Best-effort; a
// lost write just means the next invocation checks again.
func (u *Updater) recordUpdateCheck() {
	path := u.Paths.LastUpdateCheckPath()
	if err := utils.EnsureDirs(filepath.Dir(path)); err != nil {
		return
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(path, []byte(stamp), 0644); err != nil {
		slog.Debug("failed to record update check", "error", err)
	}
}

func (u *Updater) progressf(format string, args ...interface{}) {
	if u.Printer != nil {
		u.Printer.PrintErrf(format+"\n", args...)
	}
}
