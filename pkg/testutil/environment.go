package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiden/nedots/pkg/filesystem"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a self-contained home, repository and etc root
type TestEnvironment struct {
	HomeDir  string
	RepoRoot string
	EtcRoot  string

	FS     afero.Fs
	Mapper *paths.Mapper
	Type   EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.HomeDir = "/home/testuser"
		env.EtcRoot = "/etc"
	case EnvIsolated:
		root := t.TempDir()
		env.FS = filesystem.NewOS()
		env.HomeDir = filepath.Join(root, "home", "testuser")
		env.EtcRoot = filepath.Join(root, "etc")
	}
	env.RepoRoot = filepath.Join(env.HomeDir, ".nedots")

	for _, dir := range []string{env.HomeDir, env.EtcRoot} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// Keep log files and user settings out of the real XDG directories
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(state, "config"))

	m, err := paths.New(env.HomeDir, env.RepoRoot)
	if err != nil {
		t.Fatalf("Failed to create mapper: %v", err)
	}
	env.Mapper = m.WithEtcRoot(env.EtcRoot)

	return env
}

// WriteFile writes content to path, creating parent directories
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := afero.WriteFile(env.FS, path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteSystemFile writes a live file for an entry and returns its path
func (env *TestEnvironment) WriteSystemFile(scope types.Scope, rel, content string) string {
	env.t.Helper()
	return env.WriteFile(env.Mapper.SystemPath(scope, rel), content)
}

// WriteRepoFile writes the repository copy of an entry and returns its path
func (env *TestEnvironment) WriteRepoFile(scope types.Scope, rel, content string) string {
	env.t.Helper()
	return env.WriteFile(env.Mapper.RepoPath(scope, rel), content)
}

// ReadFile returns the content at path, failing the test when unreadable
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// ManifestPath is where the environment's manifest lives
func (env *TestEnvironment) ManifestPath() string {
	return filepath.Join(env.RepoRoot, manifest.FileName)
}

// WriteManifest stores doc as the repository manifest and loads it
func (env *TestEnvironment) WriteManifest(doc string) *manifest.Manifest {
	env.t.Helper()
	env.WriteFile(env.ManifestPath(), doc)
	m, err := manifest.Load(env.FS, env.ManifestPath())
	if err != nil {
		env.t.Fatalf("Failed to load manifest: %v", err)
	}
	return m
}

// Exists reports whether path exists in the environment
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
