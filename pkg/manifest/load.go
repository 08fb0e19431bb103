package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/types"
	"github.com/spf13/afero"
)

// FileName is the manifest's name inside the repository root
const FileName = "nedots.json"

// Load reads and validates the manifest at path
func Load(fs afero.Fs, path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigNotFound, "manifest not found at %s", path).
				WithDetail("manifest", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigNotFound, "cannot read manifest %s", path).
			WithDetail("manifest", path)
	}

	m, err := Parse(data)
	if err != nil {
		if nerr, ok := err.(*errors.NedotsError); ok {
			nerr.WithDetail("manifest", path)
		}
		return nil, err
	}
	m.path = path

	logger.Debug().
		Str("path", path).
		Int("entries", len(m.Entries())).
		Msg("Manifest loaded")

	return m, nil
}

// Parse decodes and validates a manifest document
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigMalformed, "manifest is not valid JSON")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	for _, e := range m.Entries() {
		if err := paths.ValidateRelPath(e.RelPath); err != nil {
			return errors.Wrapf(err, errors.ErrConfigMalformed, "invalid %s entry in %s.%s", e.Kind, sectionFor(e.Kind), e.Scope)
		}
	}

	if m.Packages == nil {
		return nil
	}
	for _, tier := range []Tier{TierCore, TierExtras} {
		groups := m.Groups(tier)
		keys := make([]string, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := validatePackageNames(groups[key]); err != nil {
				return errors.Wrapf(err, errors.ErrConfigMalformed, "invalid package in packages.%s.%q", tier, key)
			}
		}
	}
	for i, remote := range m.Packages.Flatpak {
		if strings.TrimSpace(remote.Remote) == "" {
			return errors.Newf(errors.ErrConfigMalformed, "packages.flatpak[%d] has no remote", i)
		}
		if err := validatePackageNames(remote.Packages); err != nil {
			return errors.Wrapf(err, errors.ErrConfigMalformed, "invalid id in packages.flatpak[%d]", i)
		}
	}
	return nil
}

// validatePackageNames rejects names that a package manager would read as
// an option or that are blank
func validatePackageNames(names []string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("name is empty")
		}
		if strings.HasPrefix(name, "-") {
			return fmt.Errorf("name %q looks like a command-line option", name)
		}
	}
	return nil
}

func sectionFor(kind types.Kind) string {
	if kind == types.KindDirectory {
		return string(SectionDirectories)
	}
	return string(SectionFiles)
}
