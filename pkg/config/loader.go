package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	nerrors "github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override
const EnvPrefix = "NEDOTS_"

// UserConfigName is the settings file looked up under the XDG config home
const UserConfigName = "nedots.toml"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions tune a Load call
type LoadOptions struct {
	// Home is used to expand ~/ in paths. Defaults to the user's home.
	Home string
	// ConfigFile replaces the XDG user settings file when set.
	ConfigFile string
	// Overrides are applied last, keyed by dotted path (e.g. "repo.root").
	Overrides map[string]interface{}
}

// Load merges defaults, the user file, environment and overrides
func Load(opts LoadOptions) (*Settings, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, nerrors.Wrap(err, nerrors.ErrSettingsInvalid, "cannot resolve home directory")
		}
		home = h
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. User file if it exists
	userPath := opts.ConfigFile
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, nerrors.Wrapf(err, nerrors.ErrSettingsInvalid, "failed to load settings from %s", userPath)
		}
	} else if opts.ConfigFile != "" {
		return nil, nerrors.Wrapf(err, nerrors.ErrSettingsInvalid, "settings file %s not readable", userPath)
	}

	// 3. Environment: NEDOTS_INSTALL_ASSUME_YES -> install.assume_yes
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}

	if err := postProcess(cfg, home); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns the embedded default settings, unexpanded
func Defaults() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (*Settings, error) {
	var cfg Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, nerrors.Wrap(err, nerrors.ErrSettingsInvalid, "failed to unmarshal settings")
	}
	return &cfg, nil
}

// UserConfigPath is where the user settings file is looked up
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "nedots", UserConfigName)
}

func postProcess(cfg *Settings, home string) error {
	cfg.Repo.Root = paths.ExpandHome(strings.TrimSpace(cfg.Repo.Root), home)
	if cfg.Repo.Root == "" {
		return nerrors.New(nerrors.ErrSettingsInvalid, "repo.root must not be empty")
	}
	if !filepath.IsAbs(cfg.Repo.Root) {
		abs, err := filepath.Abs(cfg.Repo.Root)
		if err != nil {
			return nerrors.Wrapf(err, nerrors.ErrSettingsInvalid, "cannot resolve repo.root %q", cfg.Repo.Root)
		}
		cfg.Repo.Root = abs
	}
	if cfg.Repo.Manifest == "" {
		return nerrors.New(nerrors.ErrSettingsInvalid, "repo.manifest must not be empty")
	}

	distro, ok := cfg.Distros[cfg.Install.Distro]
	if !ok {
		return nerrors.Newf(nerrors.ErrSettingsInvalid, "install.distro %q has no [distros.%s] section", cfg.Install.Distro, cfg.Install.Distro).
			WithDetail("known", cfg.DistroNames())
	}
	if len(distro.Install) == 0 {
		return nerrors.Newf(nerrors.ErrSettingsInvalid, "distros.%s.install must name a command", cfg.Install.Distro)
	}

	return nil
}

func joinPath(root, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}

func sortStrings(s []string) { sort.Strings(s) }
