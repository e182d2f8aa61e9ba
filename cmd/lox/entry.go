package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return diagnostic.ExitUsage
	}

	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		if len(args) == 1 && looksLikePathCandidate(args[0]) {
			fmt.Fprintf(os.Stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
			manifest = nil
		} else {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return diagnostic.ExitUsage
		}
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintln(os.Stderr, "lox run requires a manifest target or source file (lox.yml not found)")
			return diagnostic.ExitUsage
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return diagnostic.ExitUsage
		}
		return runTarget(manifest, target)
	}

	candidate := args[0]
	if manifest != nil && !looksLikePathCandidate(candidate) {
		if target, ok := manifest.FindTarget(candidate); ok {
			return runTarget(manifest, target)
		}
	}
	return executeEntry(candidate)
}

func runTarget(manifest *driver.Manifest, target *driver.Target) int {
	entryPath, err := resolveTargetMain(context.Background(), manifest, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve target %q: %v\n", target.Name, err)
		return diagnostic.ExitIO
	}
	return executeEntry(entryPath)
}

// executeEntry runs a script file and maps its outcome to an exit status.
func executeEntry(path string) int {
	if err := interpreter.New().RunFile(path); err != nil {
		fmt.Fprintln(os.Stderr, diagnostic.DescribeError(err))
		return diagnostic.ExitCode(err)
	}
	return diagnostic.ExitOK
}

// resolveTargetMain returns the script path for target, fetching git
// targets into the cache when needed. A pin from lox.lock is reused while
// it matches the target's selector; otherwise the target is fetched again
// and the new pin written back.
func resolveTargetMain(ctx context.Context, manifest *driver.Manifest, target *driver.Target) (string, error) {
	if !target.IsRemote() {
		if filepath.IsAbs(target.Main) {
			return target.Main, nil
		}
		return filepath.Join(manifest.Dir(), target.Main), nil
	}

	fetcher, err := driver.NewFetcher("")
	if err != nil {
		return "", err
	}
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		return "", err
	}
	if locked, ok := lock.Find(target.Name); ok && driver.PinMatches(target, locked) {
		dir, err := fetcher.FetchLocked(ctx, target, locked)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, target.Main), nil
	}

	locked, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return "", err
	}
	lock.Put(locked)
	if err := driver.WriteLockfile(lock, ""); err != nil {
		return "", err
	}
	return filepath.Join(fetcher.CheckoutDir(locked), target.Main), nil
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

// loadLockfileForManifest returns the lockfile next to manifest, or a fresh
// one bound to that path when none exists yet.
func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	path := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(path)
	if err == nil {
		return lock, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	lock = driver.NewLockfile(cliToolVersion)
	lock.Path = path
	return lock, nil
}

func looksLikePathCandidate(arg string) bool {
	return strings.HasSuffix(arg, ".lox") || strings.ContainsRune(arg, filepath.Separator) || strings.HasPrefix(arg, ".")
}
