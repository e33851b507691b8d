// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"karatelabs.io/x/launcher/pkg/utils"
)

// Category is a kind of resource resolved with local/global precedence.
type Category int

const (
	Archive Category = iota
	Runtime
	Extensions
)

func (c Category) DirName() string {
	switch c {
	case Archive:
		return "dist"
	case Runtime:
		return "jre"
	case Extensions:
		return "ext"
	default:
		return "unknown"
	}
}

func (c Category) String() string {
	return c.DirName()
}

// Provenance tags a resolved resource root for diagnostic display.
type Provenance int

const (
	Global Provenance = iota
	Local
)

func (p Provenance) String() string {
	if p == Local {
		return "local"
	}
	return "global"
}

// Paths holds the home directory and the working directory the per-category
// resource roots are resolved against. Both are resolved once per process
// and immutable afterwards.
type Paths struct {
	// Home is the global home directory (KARATE_HOME or ~/.karate).
	// It may not exist yet; callers create it lazily.
	Home string

	// Cwd is the working directory the project-local override marker is
	// looked up in.
	Cwd string
}

// NewPaths resolves the home directory (env override, else the default
// user-scoped path) and captures the working directory.
func NewPaths() (*Paths, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewPathsAt(cwd, home), nil
}

// NewPathsAt builds Paths against explicit directories.
func NewPathsAt(cwd, home string) *Paths {
	return &Paths{Home: home, Cwd: cwd}
}

func resolveHome() (string, error) {
	if v, ok := os.LookupEnv(HomeEnvVar); ok {
		return v, nil
	}
	return getAppUserDataDirectory("karate")
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}

// localMarkerDir returns the project marker directory if it exists in the
// working directory.
func (p *Paths) localMarkerDir() (string, bool) {
	marker := filepath.Join(p.Cwd, ProjectMarkerDirName)
	ok, err := utils.DirExists(marker)
	if err != nil || !ok {
		return "", false
	}
	return marker, true
}

// ResolveRoot resolves the directory a category is read from: the
// project-local override when `.karate/{category}/` exists as a directory,
// else the global home's subdirectory. Each category is evaluated
// independently; a marker directory holding only a config file resolves
// every category to global.
func (p *Paths) ResolveRoot(category Category) (string, Provenance) {
	if marker, ok := p.localMarkerDir(); ok {
		localRoot := filepath.Join(marker, category.DirName())
		if exists, err := utils.DirExists(localRoot); err == nil && exists {
			return localRoot, Local
		}
	}
	return filepath.Join(p.Home, category.DirName()), Global
}

// ExtensionDirs returns every extension directory to load, local first.
// Extensions are composable, so local and global are unioned rather than
// one excluding the other. During classpath construction the first
// occurrence of a filename wins, so local entries shadow global ones.
func (p *Paths) ExtensionDirs() []string {
	dirs := []string{}
	if marker, ok := p.localMarkerDir(); ok {
		localExt := filepath.Join(marker, Extensions.DirName())
		if exists, err := utils.DirExists(localExt); err == nil && exists {
			dirs = append(dirs, localExt)
		}
	}
	return append(dirs, filepath.Join(p.Home, Extensions.DirName()))
}

// HasLocalOverrides reports whether any category resolves to a local root.
func (p *Paths) HasLocalOverrides() bool {
	for _, c := range []Category{Archive, Runtime, Extensions} {
		if _, prov := p.ResolveRoot(c); prov == Local {
			return true
		}
	}
	return false
}

// CacheDir is always global.
func (p *Paths) CacheDir() string {
	return filepath.Join(p.Home, CacheDirName)
}

func (p *Paths) ManifestCachePath() string {
	return filepath.Join(p.CacheDir(), ManifestCacheFileName)
}

func (p *Paths) LastUpdateCheckPath() string {
	return filepath.Join(p.CacheDir(), LastUpdateCheckFileName)
}

func (p *Paths) GlobalConfigPath() string {
	return filepath.Join(p.Home, GlobalConfigFileName)
}

func (p *Paths) ProjectConfigPath() string {
	return filepath.Join(p.Cwd, ProjectMarkerDirName, ProjectConfigFileName)
}

// LicenseFiles returns the files that must survive every destructive
// operation untouched.
func (p *Paths) LicenseFiles() []string {
	return []string{
		filepath.Join(p.Home, LicenseFileName),
		filepath.Join(p.Home, ThirdPartyLicenseFileName),
	}
}

// EnsureGlobalDirs lazily creates the global home layout. Local override
// directories are never created implicitly.
func (p *Paths) EnsureGlobalDirs() error {
	return utils.EnsureDirs(
		p.Home,
		filepath.Join(p.Home, Archive.DirName()),
		filepath.Join(p.Home, Runtime.DirName()),
		filepath.Join(p.Home, Extensions.DirName()),
		p.CacheDir(),
	)
}
