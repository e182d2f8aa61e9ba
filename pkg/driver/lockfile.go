package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lockfile models the lox.lock contents.
type Lockfile struct {
	Path      string
	Generated string
	Tool      string
	Targets   []*LockedTarget
}

// LockedTarget pins a git target to the commit it resolved to.
type LockedTarget struct {
	Name    string
	Source  string
	Version string
	Commit  string
}

// NewLockfile constructs an empty lockfile stamped with the current time.
func NewLockfile(tool string) *Lockfile {
	return &Lockfile{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Targets:   []*LockedTarget{},
	}
}

// LoadLockfile parses lox.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := raw.toLockfile()
	lock.Path = abs
	return lock, nil
}

// WriteLockfile serialises the lockfile to path, or to lock.Path when path
// is empty.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	lock.Generated = time.Now().UTC().Format(time.RFC3339)
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

// Find returns the pinned entry for a target name.
func (l *Lockfile) Find(name string) (*LockedTarget, bool) {
	if l == nil {
		return nil, false
	}
	for _, target := range l.Targets {
		if target != nil && target.Name == name {
			return target, true
		}
	}
	return nil, false
}

// Put replaces or inserts the entry for target.Name.
func (l *Lockfile) Put(target *LockedTarget) {
	if l == nil || target == nil {
		return
	}
	for i, existing := range l.Targets {
		if existing != nil && existing.Name == target.Name {
			l.Targets[i] = target
			return
		}
	}
	l.Targets = append(l.Targets, target)
}

func (l *Lockfile) normalize() {
	filtered := l.Targets[:0]
	for _, target := range l.Targets {
		if target == nil {
			continue
		}
		target.Name = strings.TrimSpace(target.Name)
		target.Source = strings.TrimSpace(target.Source)
		target.Version = strings.TrimSpace(target.Version)
		target.Commit = strings.TrimSpace(target.Commit)
		filtered = append(filtered, target)
	}
	l.Targets = filtered
	sort.SliceStable(l.Targets, func(i, j int) bool {
		return l.Targets[i].Name < l.Targets[j].Name
	})
}

type lockfileDisk struct {
	Generated string           `yaml:"generated"`
	Tool      string           `yaml:"tool"`
	Targets   []lockfileTarget `yaml:"targets"`
}

type lockfileTarget struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Version string `yaml:"version"`
	Commit  string `yaml:"commit"`
}

func (l *Lockfile) toDisk() lockfileDisk {
	targets := make([]lockfileTarget, 0, len(l.Targets))
	for _, target := range l.Targets {
		targets = append(targets, lockfileTarget{
			Name:    target.Name,
			Source:  target.Source,
			Version: target.Version,
			Commit:  target.Commit,
		})
	}
	return lockfileDisk{
		Generated: l.Generated,
		Tool:      l.Tool,
		Targets:   targets,
	}
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Generated: strings.TrimSpace(d.Generated),
		Tool:      strings.TrimSpace(d.Tool),
		Targets:   make([]*LockedTarget, 0, len(d.Targets)),
	}
	for _, target := range d.Targets {
		lock.Targets = append(lock.Targets, &LockedTarget{
			Name:    target.Name,
			Source:  target.Source,
			Version: target.Version,
			Commit:  target.Commit,
		})
	}
	lock.normalize()
	return lock
}
