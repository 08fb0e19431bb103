package install

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/sync"
	"github.com/aiden/nedots/pkg/testutil"
	"github.com/aiden/nedots/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioManifest = `{
  "files": {"etc": ["hosts"], "home": ["x.conf"]},
  "directories": {"home": [".config/foo"]},
  "packages": {
    "core": {"fedora.common": ["git", "vim"], "fedora.xorg": [], "fedora.bspwm": ["bspwm", "sxhkd"]},
    "extras": {"fedora.common": ["htop"]},
    "flatpak": [{"remote": "flathub", "url": "https://flathub.org/repo/flathub.flatpakrepo", "packages": ["org.mozilla.firefox"]}]
  }
}`

type fakeElevator struct{ needed bool }

func (f fakeElevator) Needed() bool { return f.needed }
func (f fakeElevator) Wrap(argv ...string) []string {
	if !f.needed {
		return argv
	}
	return append([]string{"sudo"}, argv...)
}

type recordingNotifier struct {
	batches [][]string
	remotes []string
}

func (r *recordingNotifier) PackageBatch(_ string, _ manifest.Tier, pkgs []string) {
	r.batches = append(r.batches, pkgs)
}

func (r *recordingNotifier) FlatpakRemote(remote manifest.FlatpakRemote) {
	r.remotes = append(r.remotes, remote.Remote)
}

var fedora = map[string]PackageManager{
	"fedora": {Distro: "fedora", Install: []string{"dnf", "install"}, AssumeYesFlag: "-y"},
}

type fixture struct {
	env      *testutil.TestEnvironment
	runner   *testutil.FakeRunner
	notifier *recordingNotifier
	m        *manifest.Manifest
}

func newFixture(t *testing.T, envType testutil.EnvType, elevated bool, mutate func(*Options)) (*fixture, *Installer) {
	env := testutil.NewTestEnvironment(t, envType)
	f := &fixture{
		env:      env,
		runner:   testutil.NewFakeRunner(),
		notifier: &recordingNotifier{},
		m:        env.WriteManifest(scenarioManifest),
	}
	opts := Options{
		FS:       env.FS,
		Mapper:   env.Mapper,
		Runner:   f.runner,
		Elevator: fakeElevator{needed: elevated},
		Managers: fedora,
		Notifier: f.notifier,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return f, New(opts)
}

func seedRepo(env *testutil.TestEnvironment) {
	env.WriteRepoFile(types.ScopeEtc, "hosts", "127.0.0.1 localhost\n")
	env.WriteRepoFile(types.ScopeHome, "x.conf", "x=1\n")
	env.WriteRepoFile(types.ScopeHome, ".config/foo/a.toml", "a = true\n")
}

func TestApplyPackages_Scenario(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)

	pkgs, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "fedora"})
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "vim"}, pkgs)

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"sudo", "dnf", "install", "git", "vim"}, calls[0])
	assert.Equal(t, []string{"git", "vim"}, calls[0][3:])
	assert.Equal(t, [][]string{{"git", "vim"}}, f.notifier.batches)
}

func TestFlatFlatpakListDoesNotBlockOtherOperations(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	runner := testutil.NewFakeRunner()
	m := env.WriteManifest(`{
  "files": {"home": ["x.conf"]},
  "directories": {"home": []},
  "packages": {
    "core": {"fedora.common": ["git", "vim"]},
    "flatpak": ["flathub", "org.mozilla.firefox"]
  }
}`)
	env.WriteSystemFile(types.ScopeHome, "x.conf", "x=1\n")

	report, err := sync.NewCapturer(env.FS, env.Mapper, sync.Options{}).CaptureAll(m)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.StatusCopied))
	testutil.AssertFileContent(t, env.FS, env.Mapper.RepoPath(types.ScopeHome, "x.conf"), "x=1\n")

	inst := New(Options{FS: env.FS, Mapper: env.Mapper, Runner: runner, Elevator: fakeElevator{needed: true}, Managers: fedora})
	pkgs, err := inst.ApplyPackages(context.Background(), m, PackageRequest{Distro: "fedora"})
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "vim"}, pkgs)
	assert.Equal(t, [][]string{{"sudo", "dnf", "install", "git", "vim"}}, runner.Calls())

	remotes, err := inst.ApplyFlatpaks(m)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	assert.Equal(t, "flathub", remotes[0].Remote)
	assert.Equal(t, 1, runner.CallCount())
}

func TestApplyPackages_Selection(t *testing.T) {
	tests := []struct {
		name string
		req  PackageRequest
		want []string
	}{
		{"core group", PackageRequest{Distro: "fedora", Group: "bspwm"}, []string{"sudo", "dnf", "install", "bspwm", "sxhkd"}},
		{"extras default group", PackageRequest{Distro: "fedora", Extras: true}, []string{"sudo", "dnf", "install", "htop"}},
		{"explicit common", PackageRequest{Distro: "fedora", Group: "common"}, []string{"sudo", "dnf", "install", "git", "vim"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)

			_, err := inst.ApplyPackages(context.Background(), f.m, tt.req)
			require.NoError(t, err)
			require.Equal(t, 1, f.runner.CallCount())
			assert.Equal(t, tt.want, f.runner.Calls()[0])
		})
	}
}

func TestApplyPackages_AssumeYes(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, false, func(o *Options) { o.AssumeYes = true })

	_, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "fedora"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf", "install", "-y", "git", "vim"}, f.runner.Calls()[0])
}

func TestApplyPackages_EmptyListIsNoop(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)

	pkgs, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "fedora", Group: "xorg"})
	require.NoError(t, err)
	assert.Empty(t, pkgs)
	assert.Equal(t, 0, f.runner.CallCount())
	assert.Empty(t, f.notifier.batches)
}

func TestApplyPackages_Errors(t *testing.T) {
	t.Run("missing group", func(t *testing.T) {
		f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)
		_, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "fedora", Group: "sway"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMalformed))
		assert.Equal(t, 0, f.runner.CallCount())
	})

	t.Run("unknown distro", func(t *testing.T) {
		f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)
		_, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "arch"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
		assert.Equal(t, 0, f.runner.CallCount())
	})

	t.Run("package manager fails", func(t *testing.T) {
		f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)
		f.runner.FailWhen("dnf", stderrors.New("exit status 1"))

		_, err := inst.ApplyPackages(context.Background(), f.m, PackageRequest{Distro: "fedora"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackageManagerFailed))
		assert.Equal(t, "fedora.common", errors.GetErrorDetails(err)["group"])
	})
}

func TestApplyConfigs_ElevatesEtcOnly(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)
	seedRepo(f.env)

	report, err := inst.ApplyConfigs(context.Background(), f.m)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	src := f.env.Mapper.RepoPath(types.ScopeEtc, "hosts")
	dst := f.env.Mapper.SystemPath(types.ScopeEtc, "hosts")
	assert.Equal(t, [][]string{
		{"sudo", "mkdir", "-p", "--", f.env.EtcRoot},
		{"sudo", "cp", "-rT", "--", src, dst},
	}, f.runner.Calls())
	assert.True(t, report.Results[0].Elevated)

	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeHome, "x.conf"), "x=1\n")
	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeHome, ".config/foo/a.toml"), "a = true\n")
}

func TestApplyConfigs_AsRootCopiesInProcess(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, false, nil)
	seedRepo(f.env)

	_, err := inst.ApplyConfigs(context.Background(), f.m)
	require.NoError(t, err)
	assert.Equal(t, 0, f.runner.CallCount())
	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeEtc, "hosts"), "127.0.0.1 localhost\n")
}

func TestApplyConfigs_ElevatedFailureIsCollected(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)
	seedRepo(f.env)
	f.runner.FailWhen("cp -rT", stderrors.New("permission denied"))

	report, err := inst.ApplyConfigs(context.Background(), f.m)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	assert.Equal(t, 1, report.Count(types.StatusFailed))
	assert.Equal(t, 2, report.Count(types.StatusCopied))
}

func TestApplyConfigs_MissingSourceSkipsElevation(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, func(o *Options) {
		o.Batch = sync.Options{FailFast: true}
	})

	report, err := inst.ApplyConfigs(context.Background(), f.m)
	require.Error(t, err)
	assert.Equal(t, 0, f.runner.CallCount())
	assert.Equal(t, 2, report.Count(types.StatusSkipped))
}

func TestApplyConfigs_DryRun(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, func(o *Options) {
		o.Batch = sync.Options{DryRun: true}
	})
	seedRepo(f.env)

	report, err := inst.ApplyConfigs(context.Background(), f.m)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(types.StatusPlanned))
	assert.Equal(t, 0, f.runner.CallCount())
	testutil.AssertNoFile(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeHome, "x.conf"))
}

func TestRoundTrip(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvIsolated, false, nil)
	original := map[string]string{
		"hosts":              "127.0.0.1 localhost\n::1 localhost\n",
		"x.conf":             "x=1\n",
		".config/foo/a.toml": "a = true\n",
	}
	f.env.WriteSystemFile(types.ScopeEtc, "hosts", original["hosts"])
	f.env.WriteSystemFile(types.ScopeHome, "x.conf", original["x.conf"])
	f.env.WriteSystemFile(types.ScopeHome, ".config/foo/a.toml", original[".config/foo/a.toml"])

	_, err := sync.NewCapturer(f.env.FS, f.env.Mapper, sync.Options{}).CaptureAll(f.m)
	require.NoError(t, err)

	// Wipe the live copies, then restore them from the repository
	require.NoError(t, f.env.FS.RemoveAll(f.env.Mapper.SystemPath(types.ScopeEtc, "hosts")))
	require.NoError(t, f.env.FS.RemoveAll(f.env.Mapper.SystemPath(types.ScopeHome, "x.conf")))
	require.NoError(t, f.env.FS.RemoveAll(f.env.Mapper.SystemPath(types.ScopeHome, ".config")))

	report, err := inst.ApplyConfigs(context.Background(), f.m)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(types.StatusCopied))

	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeEtc, "hosts"), original["hosts"])
	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeHome, "x.conf"), original["x.conf"])
	testutil.AssertFileContent(t, f.env.FS, f.env.Mapper.SystemPath(types.ScopeHome, ".config/foo/a.toml"), original[".config/foo/a.toml"])

	report, err = inst.ApplyConfigs(context.Background(), f.m)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(types.StatusUnchanged))
}

func TestApplyFlatpaks(t *testing.T) {
	f, inst := newFixture(t, testutil.EnvMemoryOnly, true, nil)

	remotes, err := inst.ApplyFlatpaks(f.m)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	assert.Equal(t, []string{"org.mozilla.firefox"}, remotes[0].Packages)
	assert.Equal(t, []string{"flathub"}, f.notifier.remotes)
	assert.Equal(t, 0, f.runner.CallCount())
}

func TestApplyFlatpaks_MissingSection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.WriteManifest(`{"packages": {"core": {}}}`)
	inst := New(Options{FS: env.FS, Mapper: env.Mapper, Runner: testutil.NewFakeRunner()})

	_, err := inst.ApplyFlatpaks(m)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMalformed))
}

func TestPackageManager_Command(t *testing.T) {
	mgr := fedora["fedora"]
	assert.Equal(t, []string{"dnf", "install", "a"}, mgr.Command([]string{"a"}, false))
	assert.Equal(t, []string{"dnf", "install", "-y", "a"}, mgr.Command([]string{"a"}, true))
	assert.Equal(t, "dnf", mgr.Tool())
}
