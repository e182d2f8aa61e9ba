package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project file looked up by FindManifest.
const ManifestName = "lox.yml"

// LockfileName sits next to the manifest.
const LockfileName = "lox.lock"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Targets     map[string]*Target
	TargetOrder []string
	REPL        REPLConfig
}

// Target names a runnable script. Main is relative to the manifest
// directory, or to the checkout root when Git is set.
type Target struct {
	Name   string
	Main   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// REPLConfig customises interactive mode.
type REPLConfig struct {
	Prompt  string
	History string
}

// IsRemote reports whether the target is fetched from a git repository.
func (t *Target) IsRemote() bool {
	return t != nil && t.Git != ""
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var (
	ErrManifestNotFound = errors.New("manifest: lox.yml not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// FindManifest walks up from start until it finds lox.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := raw.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*Target, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name.
func (m *Manifest) FindTarget(name string) (*Target, bool) {
	if m == nil {
		return nil, false
	}
	target, ok := m.Targets[strings.TrimSpace(name)]
	return target, ok && target != nil
}

// RemoteTargets lists git targets in manifest order.
func (m *Manifest) RemoteTargets() []*Target {
	if m == nil {
		return nil
	}
	var out []*Target
	for _, name := range m.TargetOrder {
		if target := m.Targets[name]; target.IsRemote() {
			out = append(out, target)
		}
	}
	return out
}

type manifestFile struct {
	Name    string    `yaml:"name"`
	Version string    `yaml:"version"`
	Targets targetMap `yaml:"targets"`
	REPL    replYAML  `yaml:"repl"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

type replYAML struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

// targetMap keeps targets in document order.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		entry := new(targetYAML)
		if err := value.Content[i+1].Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: strings.TrimSpace(key), spec: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Version:     strings.TrimSpace(mf.Version),
		Targets:     make(map[string]*Target, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
		REPL: REPLConfig{
			Prompt:  mf.REPL.Prompt,
			History: strings.TrimSpace(mf.REPL.History),
		},
	}
	for _, item := range mf.Targets.items {
		if item.name == "" || item.spec == nil {
			continue
		}
		if _, exists := result.Targets[item.name]; exists {
			continue
		}
		result.Targets[item.name] = &Target{
			Name:   item.name,
			Main:   strings.TrimSpace(item.spec.Main),
			Git:    strings.TrimSpace(item.spec.Git),
			Rev:    strings.TrimSpace(item.spec.Rev),
			Tag:    strings.TrimSpace(item.spec.Tag),
			Branch: strings.TrimSpace(item.spec.Branch),
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}

func (mf manifestFile) validate() error {
	var errs ValidationError
	if strings.TrimSpace(mf.Name) == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}

	seen := make(map[string]struct{}, len(mf.Targets.items))
	for _, item := range mf.Targets.items {
		if item.name == "" {
			errs.Issues = append(errs.Issues, "targets must not use empty keys")
			continue
		}
		if _, dup := seen[item.name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q is defined more than once", item.name))
			continue
		}
		seen[item.name] = struct{}{}
		if item.spec == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q is empty", item.name))
			continue
		}
		for _, issue := range item.spec.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets.%s: %s", item.name, issue))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (t *targetYAML) validate() []string {
	var errs []string
	main := strings.TrimSpace(t.Main)
	if main == "" {
		errs = append(errs, "main must be provided")
	} else if filepath.IsAbs(main) && strings.TrimSpace(t.Git) != "" {
		errs = append(errs, "main must be relative to the repository root for git targets")
	}

	selectors := 0
	for _, s := range []string{t.Rev, t.Tag, t.Branch} {
		if strings.TrimSpace(s) != "" {
			selectors++
		}
	}
	if strings.TrimSpace(t.Git) == "" {
		if selectors > 0 {
			errs = append(errs, "rev, tag and branch require git")
		}
		return errs
	}
	switch {
	case selectors == 0:
		errs = append(errs, "git targets require rev, tag, or branch")
	case selectors > 1:
		errs = append(errs, "git targets accept only one of rev, tag, or branch")
	}
	return errs
}
