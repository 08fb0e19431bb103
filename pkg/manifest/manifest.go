package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/types"
)

// Tier selects a package list level
type Tier string

const (
	TierCore   Tier = "core"
	TierExtras Tier = "extras"
)

// Section names a part of the manifest an operation depends on
type Section string

const (
	SectionFiles       Section = "files"
	SectionDirectories Section = "directories"
	SectionPackages    Section = "packages"
	SectionFlatpak     Section = "packages.flatpak"
)

// TierSection returns the section holding a tier's groups
func TierSection(t Tier) Section {
	return Section("packages." + string(t))
}

// Manifest is the parsed nedots.json
type Manifest struct {
	Files       *FileSections      `json:"files,omitempty"`
	Directories *DirectorySections `json:"directories,omitempty"`
	Packages    *Packages          `json:"packages,omitempty"`

	path string
}

// FileSections lists tracked files per scope
type FileSections struct {
	Etc  []string `json:"etc,omitempty"`
	Home []string `json:"home,omitempty"`
}

// DirectorySections lists tracked directory trees per scope
type DirectorySections struct {
	Home []string `json:"home,omitempty"`
}

// Packages maps tier -> "<distro>.<group>" -> package names
type Packages struct {
	Core    map[string][]string `json:"core,omitempty"`
	Extras  map[string][]string `json:"extras,omitempty"`
	Flatpak FlatpakRemotes      `json:"flatpak,omitempty"`
}

// FlatpakRemote is a flatpak remote with the application ids it provides
type FlatpakRemote struct {
	Remote   string   `json:"remote"`
	URL      string   `json:"url,omitempty"`
	Packages []string `json:"packages"`
}

// FlatpakRemotes is the packages.flatpak section. It is written either as
// a list of remote objects or as a flat list of strings, where the first
// string names the remote and the rest are application ids.
type FlatpakRemotes []FlatpakRemote

// UnmarshalJSON accepts both the object and the flat string form
func (r *FlatpakRemotes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("packages.flatpak must be a list: %w", err)
	}

	var names []string
	remotes := FlatpakRemotes{}
	for i, item := range items {
		switch first(item) {
		case '"':
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return fmt.Errorf("packages.flatpak[%d]: %w", i, err)
			}
			names = append(names, name)
		case '{':
			var remote FlatpakRemote
			if err := json.Unmarshal(item, &remote); err != nil {
				return fmt.Errorf("packages.flatpak[%d]: %w", i, err)
			}
			remotes = append(remotes, remote)
		default:
			return fmt.Errorf("packages.flatpak[%d] must be a string or an object", i)
		}
	}

	if len(names) > 0 && len(remotes) > 0 {
		return fmt.Errorf("packages.flatpak mixes strings and objects")
	}
	if len(names) > 0 {
		remotes = FlatpakRemotes{{Remote: names[0], Packages: append([]string{}, names[1:]...)}}
	}
	*r = remotes
	return nil
}

func first(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Path is where the manifest was loaded from, empty for parsed documents
func (m *Manifest) Path() string {
	return m.path
}

// Require fails with CONFIG_MALFORMED when a section is absent
func (m *Manifest) Require(sections ...Section) error {
	for _, s := range sections {
		if !m.has(s) {
			return errors.Newf(errors.ErrConfigMalformed, "manifest has no %q section", string(s)).
				WithDetail("section", string(s)).
				WithDetail("manifest", m.path)
		}
	}
	return nil
}

func (m *Manifest) has(s Section) bool {
	switch s {
	case SectionFiles:
		return m.Files != nil
	case SectionDirectories:
		return m.Directories != nil
	case SectionPackages:
		return m.Packages != nil
	case SectionFlatpak:
		return m.Packages != nil && m.Packages.Flatpak != nil
	case TierSection(TierCore):
		return m.Packages != nil && m.Packages.Core != nil
	case TierSection(TierExtras):
		return m.Packages != nil && m.Packages.Extras != nil
	}
	return false
}

// Entries returns every tracked entry in declaration order: files.etc,
// files.home, then directories.home.
func (m *Manifest) Entries() []types.Entry {
	var entries []types.Entry
	if m.Files != nil {
		for _, rel := range m.Files.Etc {
			entries = append(entries, types.Entry{Scope: types.ScopeEtc, RelPath: rel, Kind: types.KindFile})
		}
		for _, rel := range m.Files.Home {
			entries = append(entries, types.Entry{Scope: types.ScopeHome, RelPath: rel, Kind: types.KindFile})
		}
	}
	if m.Directories != nil {
		for _, rel := range m.Directories.Home {
			entries = append(entries, types.Entry{Scope: types.ScopeHome, RelPath: rel, Kind: types.KindDirectory})
		}
	}
	return entries
}

// Groups returns the group map of a tier, or nil when absent
func (m *Manifest) Groups(tier Tier) map[string][]string {
	if m.Packages == nil {
		return nil
	}
	switch tier {
	case TierCore:
		return m.Packages.Core
	case TierExtras:
		return m.Packages.Extras
	}
	return nil
}

// PackageList resolves the package names stored under key in tier. A key
// that is present with an empty list is valid and returns an empty slice.
func (m *Manifest) PackageList(tier Tier, key string) ([]string, error) {
	if err := m.Require(SectionPackages, TierSection(tier)); err != nil {
		return nil, err
	}
	pkgs, ok := m.Groups(tier)[key]
	if !ok {
		return nil, errors.Newf(errors.ErrConfigMalformed, "manifest has no %q group in %q", key, string(TierSection(tier))).
			WithDetail("tier", string(tier)).
			WithDetail("group", key).
			WithDetail("manifest", m.path)
	}
	out := make([]string, len(pkgs))
	copy(out, pkgs)
	return out, nil
}

// Flatpaks returns the declared flatpak remotes
func (m *Manifest) Flatpaks() ([]FlatpakRemote, error) {
	if err := m.Require(SectionPackages, SectionFlatpak); err != nil {
		return nil, err
	}
	return []FlatpakRemote(m.Packages.Flatpak), nil
}
