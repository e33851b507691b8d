// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package launcher delegates an invocation to the application archive
// running on a resolved Java runtime. Delegation never mutates artifacts.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"karatelabs.io/x/launcher/pkg/archive"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/manifest"
	"karatelabs.io/x/launcher/pkg/utils"
)

// MainClass is the entry point inside the application archive.
const MainClass = "com.intuit.karate.Main"

// Launcher runs delegated commands as a JVM subprocess with inherited
// stdio. ExitFn receives the mapped exit code.
type Launcher struct {
	Stderr, Stdout, Stdin *os.File
	ExitFn                func(exitCode int)

	Paths    *launcherconfig.Paths
	Config   *launcherconfig.Config
	Runtimes *jre.Manager
}

// Run resolves the runtime and archive, builds the JVM command line and
// executes it, passing the delegate's exit code through the reserved
// mapping via ExitFn.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	javaExecutable, err := l.resolveJava()
	if err != nil {
		return err
	}

	jarPath, err := l.resolveJar()
	if err != nil {
		return err
	}

	classpath := BuildClasspath(jarPath, l.Paths.ExtensionDirs())

	var fullArgs []string
	if l.Config.JvmOptions != "" {
		fullArgs = append(fullArgs, strings.Fields(l.Config.JvmOptions)...)
	}
	fullArgs = append(fullArgs, "-cp", classpath, MainClass)
	fullArgs = append(fullArgs, args...)

	l.touchUpdateCheck()

	slog.Debug("delegating", "java", javaExecutable, "jar", jarPath)
	exitCode, err := l.execJvm(ctx, javaExecutable, fullArgs)
	if err != nil {
		return err
	}
	l.ExitFn(launchererrors.JvmPassthrough(exitCode))
	return nil
}

func (l *Launcher) resolveJava() (string, error) {
	runtime, err := l.Runtimes.Resolve()
	if err != nil {
		return "", err
	}
	return runtime.JavaExecutable, nil
}

func (l *Launcher) resolveJar() (string, error) {
	distDir := l.Config.DistPath
	if distDir == "" {
		distDir, _ = l.Paths.ResolveRoot(launcherconfig.Archive)
	}

	if l.Config.IsPinned() && l.Config.DistPath == "" {
		pinned := archive.JarPath(distDir, l.Config.Version)
		if _, err := os.Stat(pinned); err == nil {
			return pinned, nil
		}
	}

	jarPath, found := archive.NewestJar(distDir)
	if !found {
		return "", launchererrors.NewConfigurationError(
			fmt.Errorf("no application jar under %q; run 'karate setup' first", distDir))
	}
	return jarPath, nil
}

// BuildClasspath joins the application jar with every extension jar.
// Extension dirs are scanned in precedence order (local before global) and
// a jar filename seen earlier shadows the same filename later.
func BuildClasspath(jarPath string, extDirs []string) string {
	parts := []string{jarPath}
	seen := map[string]bool{filepath.Base(jarPath): true}

	for _, dir := range extDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".jar") {
				continue
			}
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			parts = append(parts, filepath.Join(dir, e.Name()))
		}
	}

	return strings.Join(parts, string(os.PathListSeparator))
}

func (l *Launcher) execJvm(ctx context.Context, javaExecutable string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, javaExecutable, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return exitError.ExitCode(), nil
		}
		return 0, launchererrors.NewRuntimeUnavailableError(
			fmt.Errorf("failed to spawn JVM subprocess: %w", err))
	}
	return 0, nil
}

// touchUpdateCheck records that a passive check opportunity happened. The
// delegated run itself never blocks on the network or mutates artifacts;
// explicit setup/update flows do the actual work.
func (l *Launcher) touchUpdateCheck() {
	if !l.Config.CheckUpdatesEnabled() {
		return
	}
	path := l.Paths.LastUpdateCheckPath()
	if info, err := os.Stat(path); err == nil {
		if time.Since(info.ModTime()) < manifest.DefaultCacheTTL {
			return
		}
	}
	if err := utils.EnsureDirs(filepath.Dir(path)); err != nil {
		return
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	_ = os.WriteFile(path, []byte(stamp), 0644)
}
