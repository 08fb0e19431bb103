package nedots

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aiden/nedots/internal/version"
	"github.com/aiden/nedots/pkg/config"
	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/router"
	"github.com/aiden/nedots/pkg/sanity"
	"github.com/aiden/nedots/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// dispatchFunc carries out the selector a command resolved to
type dispatchFunc func(cmd *cobra.Command, sel router.Selector) error

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	return newRootCmd(g, routeSelector(g))
}

// routeSelector resolves sel and runs it. Settings and the manifest are only
// loaded when there is something to do.
func routeSelector(g *globalOptions) dispatchFunc {
	return func(cmd *cobra.Command, sel router.Selector) error {
		return router.Route(cmd.Context(), sel, func() (router.Engines, error) {
			return newApp(cmd, g, ui.FormatAuto)
		}, cmd.OutOrStdout())
	}
}

func newRootCmd(g *globalOptions, dispatch dispatchFunc) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "nedots",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		// Unknown verbs reach RunE instead of failing in cobra
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, router.Selector{})
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.failFast, "fail-fast", false, MsgFlagFailFast)
	rootCmd.PersistentFlags().StringVar(&g.path, "path", "", MsgFlagPath)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.MarkPersistentFlagDirname("path")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd(g, dispatch))
	rootCmd.AddCommand(newInstallCmd(g, dispatch))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newAddCmd(g *globalOptions, dispatch dispatchFunc) *cobra.Command {
	alias := router.VerbAlias(router.VerbAddChanges)
	cmd := &cobra.Command{
		Use:     alias.Canonical,
		Aliases: alias.Aliases,
		Short:   MsgAddShort,
		GroupID: "core",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return dispatch(cmd, router.Selector{})
			}
			return dispatch(cmd, router.Selector{Verb: router.VerbAddChanges})
		},
	}
	cmd.Flags().BoolVar(&g.commit, "commit", false, MsgFlagCommit)
	cmd.Flags().BoolVar(&g.push, "push", false, MsgFlagPush)
	return cmd
}

func newInstallCmd(g *globalOptions, dispatch dispatchFunc) *cobra.Command {
	alias := router.VerbAlias(router.VerbInstall)
	var extras bool

	selector := func(iv router.InstallVerb) router.Selector {
		return router.Selector{Verb: router.VerbInstall, InstallVerb: iv, Distro: g.distro, Extras: extras}
	}

	cmd := &cobra.Command{
		Use:     alias.Canonical,
		Aliases: alias.Aliases,
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, selector(router.InstallNone))
		},
	}
	cmd.PersistentFlags().StringVarP(&g.distro, "distro", "d", "", MsgFlagDistro)
	cmd.PersistentFlags().BoolVarP(&g.assumeYes, "assumeyes", "y", false, MsgFlagAssumeYes)
	_ = cmd.RegisterFlagCompletionFunc("distro", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return knownDistros(g), cobra.ShellCompDirectiveNoFileComp
	})

	// Sub-verbs with no further arguments. Anything extra is an unknown
	// nested verb and resolves to nothing.
	simple := func(iv router.InstallVerb, short string) *cobra.Command {
		a := router.InstallVerbAlias(iv)
		return &cobra.Command{
			Use:     a.Canonical,
			Aliases: a.Aliases,
			Short:   short,
			Args:    cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) > 0 {
					return dispatch(cmd, selector(router.InstallNone))
				}
				return dispatch(cmd, selector(iv))
			},
		}
	}

	pkgsAlias := router.InstallVerbAlias(router.InstallPkgs)
	pkgsCmd := &cobra.Command{
		Use:       pkgsAlias.Canonical + " [common|c|xorg|x|bspwm|b|wayland|w|sway|s]",
		Aliases:   pkgsAlias.Aliases,
		Short:     MsgPkgsShort,
		Args:      cobra.ArbitraryArgs,
		ValidArgs: groupNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selector(router.InstallPkgs)
			switch len(args) {
			case 0:
				sel.Group = router.GroupCommon
			case 1:
				sel.Group, _ = router.LookupGroup(args[0])
			default:
				sel.Group = router.GroupUnknown
			}
			return dispatch(cmd, sel)
		},
	}
	pkgsCmd.Flags().BoolVarP(&extras, "extras", "e", false, MsgFlagExtras)

	wmAlias := router.InstallVerbAlias(router.InstallWM)
	wmCmd := &cobra.Command{
		Use:       wmAlias.Canonical + " {bspwm|sway}",
		Aliases:   wmAlias.Aliases,
		Short:     MsgWMShort,
		Args:      cobra.ArbitraryArgs,
		ValidArgs: router.WindowManagerNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selector(router.InstallWM)
			sel.WM = router.GroupUnknown
			if len(args) == 1 {
				sel.WM, _ = router.LookupWindowManager(args[0])
			}
			return dispatch(cmd, sel)
		},
	}

	cmd.AddCommand(
		simple(router.InstallConfigs, MsgConfigsShort),
		pkgsCmd,
		simple(router.InstallFlatpaks, MsgFlatpaksShort),
		wmCmd,
	)
	return cmd
}

// knownDistros lists the distros the settings define. -d/--distro must name
// one of them; settings loading rejects anything else.
func knownDistros(g *globalOptions) []string {
	if home, err := paths.HomeDir(); err == nil {
		if s, err := config.Load(config.LoadOptions{Home: home, ConfigFile: g.configFile}); err == nil {
			return s.DistroNames()
		}
	}
	if s, err := config.Defaults(); err == nil {
		return s.DistroNames()
	}
	return nil
}

func groupNames() []string {
	var names []string
	for _, g := range []router.Group{router.GroupCommon, router.GroupXorg, router.GroupBspwm, router.GroupWayland, router.GroupSway} {
		names = append(names, router.GroupAlias(g).Names()...)
	}
	return names
}

func newListCmd(g *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(output)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --output")
			}
			a, err := newApp(cmd, g, format)
			if err != nil {
				return err
			}
			m, err := a.loadManifest()
			if err != nil {
				return err
			}
			rows := a.entryRows(m)
			if len(rows) == 0 && !a.printer.Format().Structured() {
				a.printer.Message(MsgNoEntries)
				return nil
			}
			return a.printer.Entries(rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g, ui.FormatAuto)
			if err != nil {
				return err
			}
			results := a.checker.All(a.settings, a.elevator.Needed())
			a.printer.Checks(results)
			if err := sanity.FirstError(results); err != nil {
				return errors.Wrap(err, errors.GetErrorCode(err), MsgChecksFailed)
			}
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.Defaults()
			if err != nil {
				return err
			}
			content, err := config.GenerateConfigContent(defaults)
			if err != nil {
				return err
			}

			if !write {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}

			target := config.UserConfigPath()
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrSettingsInvalid, MsgErrConfigExists, target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			if err := os.WriteFile(target, []byte(content+"\n"), 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}
