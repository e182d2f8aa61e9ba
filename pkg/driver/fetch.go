package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fetcher checks out git targets under <home>/src/<target>/<version>.
type Fetcher struct {
	Home string
}

// NewFetcher builds a fetcher rooted at home, defaulting to Home().
func NewFetcher(home string) (*Fetcher, error) {
	if home == "" {
		resolved, err := Home()
		if err != nil {
			return nil, err
		}
		home = resolved
	}
	return &Fetcher{Home: home}, nil
}

// Fetch clones target and pins it to the commit its selector resolves to.
// An existing checkout of the same version is reused.
func (f *Fetcher) Fetch(ctx context.Context, target *Target) (*LockedTarget, error) {
	if !target.IsRemote() {
		return nil, fmt.Errorf("fetch: target %q has no git source", targetName(target))
	}
	revision, descriptor, err := gitRevisionFromTarget(target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.Name, err)
	}
	version, commit, err := f.ensureGitCheckout(ctx, f.targetDir(target.Name), target.Git, revision, descriptor)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.Name, err)
	}
	return &LockedTarget{
		Name:    target.Name,
		Source:  target.Git,
		Version: version,
		Commit:  commit,
	}, nil
}

// FetchLocked restores the checkout recorded in locked, cloning again at
// the pinned commit when the cache was cleared.
func (f *Fetcher) FetchLocked(ctx context.Context, target *Target, locked *LockedTarget) (string, error) {
	if locked == nil || locked.Commit == "" {
		return "", fmt.Errorf("fetch: no pinned commit for %q", targetName(target))
	}
	dir := f.CheckoutDir(locked)
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}
	source := locked.Source
	if target != nil && target.Git != "" {
		source = target.Git
	}
	descriptor := strings.TrimSuffix(locked.Version, "@"+locked.Commit)
	if descriptor == locked.Version {
		descriptor = ""
	}
	if _, _, err := f.ensureGitCheckout(ctx, f.targetDir(locked.Name), source, plumbing.Revision(locked.Commit), descriptor); err != nil {
		return "", fmt.Errorf("fetch %s: %w", locked.Name, err)
	}
	return dir, nil
}

// CheckoutDir is where a locked target lives in the cache.
func (f *Fetcher) CheckoutDir(locked *LockedTarget) string {
	return filepath.Join(f.targetDir(locked.Name), sanitizePathSegment(locked.Version))
}

func (f *Fetcher) targetDir(name string) string {
	return filepath.Join(f.Home, "src", sanitizePathSegment(name))
}

// ensureGitCheckout clones url into a scratch directory under baseDir,
// checks out revision and moves the worktree to baseDir/<version>. The
// scratch clone is removed on every path that does not end in the rename.
func (f *Fetcher) ensureGitCheckout(ctx context.Context, baseDir, url string, revision plumbing.Revision, descriptor string) (version, commit string, err error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	scratch, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	defer func() {
		if scratch != "" {
			_ = os.RemoveAll(scratch)
		}
	}()

	repo, hash, err := cloneAt(ctx, scratch, url, revision)
	if err != nil {
		return "", "", err
	}
	commit = hash.String()
	version = gitPinnedVersion(descriptor, commit)
	dest := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(dest); err == nil {
		return version, commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(scratch, dest); err != nil {
		return "", "", err
	}
	scratch = ""
	return version, commit, nil
}

// cloneAt clones url into dir, which must be empty, and resolves revision
// against the clone.
func cloneAt(ctx context.Context, dir, url string, revision plumbing.Revision) (*git.Repository, plumbing.Hash, error) {
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	return repo, *hash, nil
}

// PinMatches reports whether locked still describes target: same git
// source and a version recorded for the target's current rev, tag or
// branch. A stale pin must be fetched again.
func PinMatches(target *Target, locked *LockedTarget) bool {
	if target == nil || locked == nil || locked.Commit == "" {
		return false
	}
	if strings.TrimSpace(locked.Source) != strings.TrimSpace(target.Git) {
		return false
	}
	_, descriptor, err := gitRevisionFromTarget(target)
	if err != nil {
		return false
	}
	return locked.Version == gitPinnedVersion(descriptor, locked.Commit)
}

func gitPinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

// Branches resolve through the remote-tracking ref since a clone only
// creates a local branch for the remote HEAD.
func gitRevisionFromTarget(target *Target) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(target.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(target.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(target.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git targets require rev, tag, or branch")
}

func targetName(target *Target) string {
	if target == nil {
		return ""
	}
	return target.Name
}
