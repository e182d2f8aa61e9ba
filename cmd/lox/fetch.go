package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/driver"
)

func runFetch(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "lox fetch does not take arguments\n")
		return diagnostic.ExitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintln(os.Stderr, "lox fetch requires lox.yml")
		} else {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		}
		return diagnostic.ExitUsage
	}

	lock, err := fetchTargets(context.Background(), manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		return diagnostic.ExitIO
	}
	for _, locked := range lock.Targets {
		fmt.Fprintf(os.Stdout, "%s %s\n", locked.Name, locked.Version)
	}
	return diagnostic.ExitOK
}

// fetchTargets resolves every git target, replacing previous pins, and
// writes lox.lock next to the manifest.
func fetchTargets(ctx context.Context, manifest *driver.Manifest) (*driver.Lockfile, error) {
	fetcher, err := driver.NewFetcher("")
	if err != nil {
		return nil, err
	}
	fresh := driver.NewLockfile(cliToolVersion)
	fresh.Path = filepath.Join(manifest.Dir(), driver.LockfileName)
	for _, target := range manifest.RemoteTargets() {
		locked, err := fetcher.Fetch(ctx, target)
		if err != nil {
			return nil, err
		}
		fresh.Put(locked)
	}
	if err := driver.WriteLockfile(fresh, ""); err != nil {
		return nil, err
	}
	return fresh, nil
}
