package config

// Settings is the fully merged nedots configuration
type Settings struct {
	Repo    RepoSettings              `koanf:"repo" toml:"repo"`
	Install InstallSettings           `koanf:"install" toml:"install"`
	Sync    SyncSettings              `koanf:"sync" toml:"sync"`
	Distros map[string]DistroSettings `koanf:"distros" toml:"distros"`
}

// RepoSettings locate the managed repository and its manifest
type RepoSettings struct {
	// Root is the managed repository root. A leading ~/ is expanded.
	Root string `koanf:"root" toml:"root"`
	// Manifest is the manifest file name, relative to Root.
	Manifest string `koanf:"manifest" toml:"manifest"`
	// Commit records captured changes in the repository's git history.
	Commit bool `koanf:"commit" toml:"commit"`
	// Push pushes after committing. It implies Commit.
	Push bool `koanf:"push" toml:"push"`
}

// InstallSettings control the apply direction
type InstallSettings struct {
	Distro    string   `koanf:"distro" toml:"distro"`
	AssumeYes bool     `koanf:"assume_yes" toml:"assume_yes"`
	Elevate   []string `koanf:"elevate" toml:"elevate"`
}

// SyncSettings control batch behaviour of capture and config apply
type SyncSettings struct {
	// FailFast stops a batch at the first failing entry instead of
	// attempting every entry and reporting all failures at the end.
	FailFast bool `koanf:"fail_fast" toml:"fail_fast"`
}

// DistroSettings describe a distribution's package manager
type DistroSettings struct {
	// Install is the argv prefix; package names are appended to it.
	Install       []string `koanf:"install" toml:"install"`
	AssumeYesFlag string   `koanf:"assume_yes_flag" toml:"assume_yes_flag"`
}

// ManifestPath returns the absolute manifest location
func (s *Settings) ManifestPath() string {
	return joinPath(s.Repo.Root, s.Repo.Manifest)
}

// Distro returns the settings of the named distribution
func (s *Settings) Distro(name string) (DistroSettings, bool) {
	d, ok := s.Distros[name]
	return d, ok
}

// DistroNames lists the configured distributions, sorted
func (s *Settings) DistroNames() []string {
	names := make([]string, 0, len(s.Distros))
	for name := range s.Distros {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}
