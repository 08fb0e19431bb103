package sync

import (
	"path/filepath"
	"testing"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/testutil"
	"github.com/aiden/nedots/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioManifest = `{
  "files": {"etc": ["hosts"], "home": ["x.conf"]},
  "directories": {"home": [".config/foo"]},
  "packages": {"core": {"fedora.common": ["git", "vim"]}}
}`

func seedScenario(env *testutil.TestEnvironment) {
	env.WriteSystemFile(types.ScopeEtc, "hosts", "127.0.0.1 localhost\n")
	env.WriteSystemFile(types.ScopeHome, "x.conf", "x=1\n")
	env.WriteSystemFile(types.ScopeHome, ".config/foo/a.toml", "a = true\n")
	env.WriteSystemFile(types.ScopeHome, ".config/foo/sub/b.toml", "b = false\n")
}

func TestCaptureAll_Scenario(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)

	report, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Count(types.StatusCopied))

	repo := env.RepoRoot
	home := env.HomeDir
	testutil.AssertFileContent(t, env.FS, filepath.Join(repo, "etc", "hosts"), "127.0.0.1 localhost\n")
	testutil.AssertFileContent(t, env.FS, filepath.Join(repo, home, "x.conf"), "x=1\n")
	testutil.AssertFileContent(t, env.FS, filepath.Join(repo, home, ".config/foo/a.toml"), "a = true\n")
	testutil.AssertFileContent(t, env.FS, filepath.Join(repo, home, ".config/foo/sub/b.toml"), "b = false\n")
}

func TestCaptureAll_DeclarationOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)

	report, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.NoError(t, err)

	var got []string
	for _, res := range report.Results {
		got = append(got, res.Entry.String())
	}
	assert.Equal(t, []string{"etc:hosts", "home:x.conf", "home:.config/foo"}, got)
}

func TestCaptureAll_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)
	c := NewCapturer(env.FS, env.Mapper, Options{})

	_, err := c.CaptureAll(m)
	require.NoError(t, err)

	report, err := c.CaptureAll(m)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(types.StatusUnchanged))
	assert.Equal(t, 0, report.Count(types.StatusCopied))
}

func TestCaptureAll_OverwritesRepository(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)
	env.WriteRepoFile(types.ScopeHome, "x.conf", "stale\n")

	_, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.NoError(t, err)
	testutil.AssertFileContent(t, env.FS, env.Mapper.RepoPath(types.ScopeHome, "x.conf"), "x=1\n")
}

func TestCaptureAll_CollectsAllFailures(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	// hosts and .config/foo are missing on the system
	env.WriteSystemFile(types.ScopeHome, "x.conf", "x=1\n")

	report, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	assert.Contains(t, err.Error(), "2 of 3 entries failed")
	assert.Equal(t, []string{"etc:hosts", "home:.config/foo"}, errors.GetErrorDetails(err)["failed"])
	assert.Len(t, failures(err), 2)

	require.NotNil(t, report)
	assert.Equal(t, 2, report.Count(types.StatusFailed))
	assert.Equal(t, 1, report.Count(types.StatusCopied))
	testutil.AssertFileContent(t, env.FS, env.Mapper.RepoPath(types.ScopeHome, "x.conf"), "x=1\n")
}

func TestCaptureAll_FailFast(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	env.WriteSystemFile(types.ScopeHome, "x.conf", "x=1\n")

	report, err := NewCapturer(env.FS, env.Mapper, Options{FailFast: true}).CaptureAll(m)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	assert.Contains(t, err.Error(), "stopped at first failure after 1 of 3 entries")

	assert.Equal(t, 1, report.Count(types.StatusFailed))
	assert.Equal(t, 2, report.Count(types.StatusSkipped))
	testutil.AssertNoFile(t, env.FS, env.Mapper.RepoPath(types.ScopeHome, "x.conf"))
}

func TestCaptureAll_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)

	report, err := NewCapturer(env.FS, env.Mapper, Options{DryRun: true}).CaptureAll(m)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Count(types.StatusPlanned))
	testutil.AssertNoFile(t, env.FS, filepath.Join(env.RepoRoot, "etc"))
}

func TestCaptureAll_RequiresSections(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(`{"files": {"home": ["x.conf"]}}`)
	env.WriteSystemFile(types.ScopeHome, "x.conf", "x=1\n")

	report, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMalformed))
	testutil.AssertNoFile(t, env.FS, filepath.Join(env.RepoRoot, env.HomeDir))
}

func TestCaptureAll_RealFilesystem(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	m := env.WriteManifest(scenarioManifest)
	seedScenario(env)

	_, err := NewCapturer(env.FS, env.Mapper, Options{}).CaptureAll(m)
	require.NoError(t, err)

	for _, e := range m.Entries() {
		assert.True(t, env.Exists(env.Mapper.RepoPath(e.Scope, e.RelPath)), e.String())
	}
}
