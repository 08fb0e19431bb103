package install

import (
	"github.com/aiden/nedots/pkg/config"
	"github.com/aiden/nedots/pkg/manifest"
)

// DefaultGroup is used when a package request names no group
const DefaultGroup = "common"

// PackageRequest selects one package list from the manifest
type PackageRequest struct {
	Distro string
	Extras bool
	// Group is the group name without the distro prefix, e.g. "xorg".
	// Empty means DefaultGroup.
	Group string
}

// Tier is the manifest tier the request reads from
func (r PackageRequest) Tier() manifest.Tier {
	if r.Extras {
		return manifest.TierExtras
	}
	return manifest.TierCore
}

// Key is the manifest group key, e.g. "fedora.common"
func (r PackageRequest) Key() string {
	group := r.Group
	if group == "" {
		group = DefaultGroup
	}
	return r.Distro + "." + group
}

// PackageManager describes how to install packages on one distribution
type PackageManager struct {
	Distro        string
	Install       []string
	AssumeYesFlag string
}

// Command builds the argv installing pkgs. The caller adds elevation.
func (p PackageManager) Command(pkgs []string, assumeYes bool) []string {
	argv := make([]string, 0, len(p.Install)+len(pkgs)+1)
	argv = append(argv, p.Install...)
	if assumeYes && p.AssumeYesFlag != "" {
		argv = append(argv, p.AssumeYesFlag)
	}
	return append(argv, pkgs...)
}

// Tool is the package manager binary
func (p PackageManager) Tool() string {
	if len(p.Install) == 0 {
		return ""
	}
	return p.Install[0]
}

// ManagersFromSettings builds the package managers of every configured distro
func ManagersFromSettings(s *config.Settings) map[string]PackageManager {
	managers := make(map[string]PackageManager, len(s.Distros))
	for name, d := range s.Distros {
		managers[name] = PackageManager{
			Distro:        name,
			Install:       append([]string(nil), d.Install...),
			AssumeYesFlag: d.AssumeYesFlag,
		}
	}
	return managers
}
