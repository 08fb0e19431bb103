package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiden/nedots/pkg/config"
	"github.com/aiden/nedots/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty directory and returns it
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"NEDOTS_REPO_ROOT", "NEDOTS_REPO_COMMIT", "NEDOTS_REPO_PUSH", "NEDOTS_REPO_MANIFEST", "NEDOTS_INSTALL_DISTRO", "NEDOTS_INSTALL_ASSUME_YES", "NEDOTS_INSTALL_ELEVATE", "NEDOTS_SYNC_FAIL_FAST"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return dir
}

func writeUserConfig(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, "nedots")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.UserConfigName), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{Home: "/home/aiden"})
	require.NoError(t, err)

	assert.Equal(t, "/home/aiden/.nedots", cfg.Repo.Root)
	assert.Equal(t, "/home/aiden/.nedots/nedots.json", cfg.ManifestPath())
	assert.Equal(t, "fedora", cfg.Install.Distro)
	assert.False(t, cfg.Install.AssumeYes)
	assert.Equal(t, []string{"sudo"}, cfg.Install.Elevate)
	assert.False(t, cfg.Sync.FailFast)
	assert.False(t, cfg.Repo.Commit)
	assert.False(t, cfg.Repo.Push)

	fedora, ok := cfg.Distro("fedora")
	require.True(t, ok)
	assert.Equal(t, []string{"dnf", "install"}, fedora.Install)
	assert.Equal(t, "-y", fedora.AssumeYesFlag)
	assert.Equal(t, []string{"fedora"}, cfg.DistroNames())
}

func TestLoad_UserFile(t *testing.T) {
	configHome := isolate(t)
	writeUserConfig(t, configHome, `
[repo]
root = "/srv/dots"

[sync]
fail_fast = true

[distros.arch]
install = ["pacman", "-S"]
assume_yes_flag = "--noconfirm"
`)

	cfg, err := config.Load(config.LoadOptions{Home: "/home/aiden"})
	require.NoError(t, err)

	assert.Equal(t, "/srv/dots", cfg.Repo.Root)
	assert.True(t, cfg.Sync.FailFast)
	assert.Equal(t, []string{"arch", "fedora"}, cfg.DistroNames())

	arch, ok := cfg.Distro("arch")
	require.True(t, ok)
	assert.Equal(t, []string{"pacman", "-S"}, arch.Install)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configHome := isolate(t)
	writeUserConfig(t, configHome, "[repo]\nroot = \"/srv/dots\"\n")
	t.Setenv("NEDOTS_REPO_ROOT", "/opt/dots")
	t.Setenv("NEDOTS_INSTALL_ASSUME_YES", "true")
	t.Setenv("NEDOTS_INSTALL_ELEVATE", "doas")
	t.Setenv("NEDOTS_REPO_PUSH", "true")

	cfg, err := config.Load(config.LoadOptions{Home: "/home/aiden"})
	require.NoError(t, err)

	assert.Equal(t, "/opt/dots", cfg.Repo.Root)
	assert.True(t, cfg.Install.AssumeYes)
	assert.Equal(t, []string{"doas"}, cfg.Install.Elevate)
	assert.True(t, cfg.Repo.Push)
}

func TestLoad_OverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("NEDOTS_REPO_ROOT", "/opt/dots")

	cfg, err := config.Load(config.LoadOptions{
		Home: "/home/aiden",
		Overrides: map[string]interface{}{
			"repo.root":      "~/elsewhere",
			"sync.fail_fast": true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/aiden/elsewhere", cfg.Repo.Root)
	assert.True(t, cfg.Sync.FailFast)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown distro", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(config.LoadOptions{
			Home:      "/home/aiden",
			Overrides: map[string]interface{}{"install.distro": "gentoo"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
		assert.Contains(t, err.Error(), "gentoo")
	})

	t.Run("explicit file missing", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(config.LoadOptions{
			Home:       "/home/aiden",
			ConfigFile: filepath.Join(t.TempDir(), "absent.toml"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
	})

	t.Run("malformed user file", func(t *testing.T) {
		configHome := isolate(t)
		writeUserConfig(t, configHome, "[repo\nroot = ")
		_, err := config.Load(config.LoadOptions{Home: "/home/aiden"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
	})
}

func TestGenerateConfigContent(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.LoadOptions{Home: "/home/aiden"})
	require.NoError(t, err)

	content, err := config.GenerateConfigContent(cfg)
	require.NoError(t, err)

	assert.Contains(t, content, "[repo]")
	assert.Contains(t, content, "# root = ")
	assert.Contains(t, content, "/home/aiden/.nedots")
	assert.Contains(t, content, "# fail_fast = false")
	assert.NotContains(t, content, "\nroot = ")
}

func TestDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("NEDOTS_REPO_ROOT", "/ignored")

	cfg, err := config.Defaults()
	require.NoError(t, err)
	assert.Equal(t, "~/.nedots", cfg.Repo.Root)
	assert.Equal(t, []string{"sudo"}, cfg.Install.Elevate)
	assert.Equal(t, []string{"fedora"}, cfg.DistroNames())

	content, err := config.GenerateConfigContent(cfg)
	require.NoError(t, err)
	assert.Contains(t, content, "~/.nedots")
}
