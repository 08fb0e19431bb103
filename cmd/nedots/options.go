package nedots

import "github.com/spf13/cobra"

// globalOptions are the flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	failFast   bool
	path       string
	configFile string

	// addchanges flags
	commit bool
	push   bool

	// install flags
	distro    string
	assumeYes bool
}

// overrides turns the flags the user set into settings keys. Flags left
// at their default do not override the settings file or environment.
func (g *globalOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	if g.path != "" {
		o["repo.root"] = g.path
	}
	if flagChanged(cmd, "fail-fast") {
		o["sync.fail_fast"] = g.failFast
	}
	if g.distro != "" {
		o["install.distro"] = g.distro
	}
	if g.assumeYes {
		o["install.assume_yes"] = true
	}
	if g.commit {
		o["repo.commit"] = true
	}
	if g.push {
		o["repo.push"] = true
	}
	return o
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
