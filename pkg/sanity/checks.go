package sanity

import (
	"github.com/aiden/nedots/pkg/config"
	"github.com/aiden/nedots/pkg/gitrepo"
)

// FlatpakTool is checked but optional: flatpak apply only reports remotes
const FlatpakTool = "flatpak"

// Repository checks the repository root and manifest
func (c *Checker) Repository(s *config.Settings) []Result {
	return []Result{
		c.Dir("repository", s.Repo.Root),
		c.File("manifest", s.ManifestPath()),
	}
}

// PackageTools checks what installing packages needs: the elevation tool
// (when one is used) and the distro's package manager.
func (c *Checker) PackageTools(s *config.Settings, elevate bool) []Result {
	var results []Result
	if elevate && len(s.Install.Elevate) > 0 {
		results = append(results, c.Tool("elevation", s.Install.Elevate[0]))
	}
	if d, ok := s.Distro(s.Install.Distro); ok && len(d.Install) > 0 {
		results = append(results, c.Tool("package manager", d.Install[0]))
	}
	return results
}

// Git checks for the git binary. It is optional unless the settings commit
// or push after a capture.
func (c *Checker) Git(s *config.Settings) Result {
	r := c.Tool("git", gitrepo.Tool)
	r.Optional = !s.Repo.Commit && !s.Repo.Push
	return r
}

// All runs every check for the current settings
func (c *Checker) All(s *config.Settings, elevate bool) []Result {
	results := c.Repository(s)
	results = append(results, c.PackageTools(s, elevate)...)
	results = append(results, c.Git(s))

	flatpak := c.Tool("flatpak", FlatpakTool)
	flatpak.Optional = true
	return append(results, flatpak)
}
