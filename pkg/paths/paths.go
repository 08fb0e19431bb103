package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/types"
	"github.com/spf13/afero"
)

// DefaultEtcRoot is where etc-scope entries live on the system
const DefaultEtcRoot = "/etc"

// RepoEtcDir is the repository sub-root mirroring etc-scope entries
const RepoEtcDir = "etc"

// Mapper maps manifest entries to system and repository paths
type Mapper struct {
	home     string
	repoRoot string
	etcRoot  string
}

// New creates a Mapper. home and repoRoot must be absolute.
func New(home, repoRoot string) (*Mapper, error) {
	if !filepath.IsAbs(home) {
		return nil, errors.Newf(errors.ErrInvalidInput, "home directory must be absolute, got %q", home)
	}
	if !filepath.IsAbs(repoRoot) {
		return nil, errors.Newf(errors.ErrInvalidInput, "repository root must be absolute, got %q", repoRoot)
	}
	return &Mapper{
		home:     filepath.Clean(home),
		repoRoot: filepath.Clean(repoRoot),
		etcRoot:  DefaultEtcRoot,
	}, nil
}

// WithEtcRoot returns a copy of m with a different system etc root
func (m *Mapper) WithEtcRoot(root string) *Mapper {
	c := *m
	c.etcRoot = filepath.Clean(root)
	return &c
}

func (m *Mapper) Home() string     { return m.home }
func (m *Mapper) RepoRoot() string { return m.repoRoot }
func (m *Mapper) EtcRoot() string  { return m.etcRoot }

// SystemPath returns the live location of an entry
func (m *Mapper) SystemPath(scope types.Scope, rel string) string {
	switch scope {
	case types.ScopeEtc:
		return filepath.Join(m.etcRoot, rel)
	case types.ScopeHome:
		return filepath.Join(m.home, rel)
	}
	panic(fmt.Sprintf("paths: unknown scope %q", scope))
}

// RepoPath returns where an entry is mirrored inside the repository
func (m *Mapper) RepoPath(scope types.Scope, rel string) string {
	switch scope {
	case types.ScopeEtc:
		return filepath.Join(m.repoRoot, RepoEtcDir, rel)
	case types.ScopeHome:
		return filepath.Join(m.repoRoot, m.home, rel)
	}
	panic(fmt.Sprintf("paths: unknown scope %q", scope))
}

// Decompose is the inverse of RepoPath: it recovers the scope and relative
// path of a repository path.
func (m *Mapper) Decompose(repoPath string) (types.Scope, string, error) {
	p := filepath.Clean(repoPath)

	if rel, ok := under(p, filepath.Join(m.repoRoot, m.home)); ok {
		return types.ScopeHome, rel, nil
	}
	if rel, ok := under(p, filepath.Join(m.repoRoot, RepoEtcDir)); ok {
		return types.ScopeEtc, rel, nil
	}

	return "", "", errors.Newf(errors.ErrInvalidInput, "%s is not a tracked location inside %s", repoPath, m.repoRoot)
}

// under returns p relative to root when p lies strictly below root
func under(p, root string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// EnsureDir creates dir and any missing parents. It succeeds when dir
// already exists, including when a concurrent caller created it first.
func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot create directory %s", dir)
	}
	return nil
}

// ValidateRelPath checks the manifest invariant for relative paths: not
// empty, not absolute, and not escaping its scope.
func ValidateRelPath(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) {
		return fmt.Errorf("path %q must be relative", rel)
	}
	cleaned := filepath.Clean(rel)
	if cleaned == "." {
		return fmt.Errorf("path %q refers to the scope root", rel)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes its scope", rel)
	}
	return nil
}

// ExpandHome replaces a leading ~ with home
func ExpandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

// HomeDir resolves the invoking user's home directory
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot resolve home directory")
	}
	return home, nil
}
