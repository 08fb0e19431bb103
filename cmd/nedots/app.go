package nedots

import (
	"context"
	"fmt"

	"github.com/aiden/nedots/pkg/config"
	"github.com/aiden/nedots/pkg/filesystem"
	"github.com/aiden/nedots/pkg/gitrepo"
	"github.com/aiden/nedots/pkg/install"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/proc"
	"github.com/aiden/nedots/pkg/sanity"
	"github.com/aiden/nedots/pkg/sync"
	"github.com/aiden/nedots/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app holds what a command needs once settings are loaded. It implements
// router.Engines.
type app struct {
	settings *config.Settings
	fs       afero.Fs
	mapper   *paths.Mapper
	printer  *ui.Printer
	runner   proc.Runner
	elevator *proc.Elevator
	checker  *sanity.Checker
	dryRun   bool
	logger   zerolog.Logger
}

// newApp loads settings, applying the global flags as the final layer
func newApp(cmd *cobra.Command, g *globalOptions, format ui.Format) (*app, error) {
	home, err := paths.HomeDir()
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(config.LoadOptions{
		Home:       home,
		ConfigFile: g.configFile,
		Overrides:  g.overrides(cmd),
	})
	if err != nil {
		return nil, err
	}

	mapper, err := paths.New(home, settings.Repo.Root)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	return &app{
		settings: settings,
		fs:       fs,
		mapper:   mapper,
		printer:  ui.NewPrinter(cmd.OutOrStdout(), format),
		runner:   proc.NewExecRunner(g.dryRun),
		elevator: proc.NewElevator(settings.Install.Elevate),
		checker:  sanity.New(fs),
		dryRun:   g.dryRun,
		logger:   logging.GetLogger("cli"),
	}, nil
}

func (a *app) loadManifest() (*manifest.Manifest, error) {
	return manifest.Load(a.fs, a.settings.ManifestPath())
}

func (a *app) batchOptions() sync.Options {
	return sync.Options{FailFast: a.settings.Sync.FailFast, DryRun: a.dryRun}
}

func (a *app) installer() *install.Installer {
	return install.New(install.Options{
		FS:        a.fs,
		Mapper:    a.mapper,
		Runner:    a.runner,
		Elevator:  a.elevator,
		Managers:  install.ManagersFromSettings(a.settings),
		AssumeYes: a.settings.Install.AssumeYes,
		Batch:     a.batchOptions(),
		Notifier:  a.printer,
	})
}

func (a *app) dryRunNotice() {
	if a.dryRun {
		a.printer.Message(MsgDryRunNotice)
	}
}

// Capture implements router.Engines
func (a *app) Capture(ctx context.Context) error {
	m, err := a.loadManifest()
	if err != nil {
		return err
	}

	publish := gitrepo.Options{Commit: a.settings.Repo.Commit || a.settings.Repo.Push, Push: a.settings.Repo.Push}
	if publish.Enabled() && !a.dryRun {
		if err := sanity.FirstError([]sanity.Result{a.checker.Git(a.settings)}); err != nil {
			return err
		}
	}

	capturer := sync.NewCapturer(a.fs, a.mapper, a.batchOptions())
	report, err := capturer.CaptureAll(m)
	a.printer.Report(fmt.Sprintf(MsgCaptureTitle, a.mapper.RepoRoot()), report)
	if err != nil {
		a.dryRunNotice()
		return err
	}

	if err := a.publish(ctx, publish); err != nil {
		return err
	}
	a.dryRunNotice()
	return nil
}

// publish records a successful capture in the repository's git history
func (a *app) publish(ctx context.Context, opts gitrepo.Options) error {
	if !opts.Enabled() {
		return nil
	}
	root := a.mapper.RepoRoot()
	res, err := gitrepo.New(a.runner, root, a.dryRun).Publish(ctx, opts)
	if err != nil {
		return err
	}
	if res.Committed {
		a.printer.Message(fmt.Sprintf(MsgCommitted, root))
	} else {
		a.printer.Message(fmt.Sprintf(MsgNothingToCommit, root))
	}
	if res.Pushed {
		a.printer.Message(fmt.Sprintf(MsgPushed, root))
	}
	return nil
}

// ApplyConfigs implements router.Engines
func (a *app) ApplyConfigs(ctx context.Context) error {
	m, err := a.loadManifest()
	if err != nil {
		return err
	}

	if a.elevator.Needed() && !a.dryRun {
		if err := sanity.FirstError([]sanity.Result{a.checker.Tool("elevation", a.elevator.Tool())}); err != nil {
			return err
		}
	}

	report, err := a.installer().ApplyConfigs(ctx, m)
	a.printer.Report(fmt.Sprintf(MsgConfigsTitle, a.mapper.RepoRoot()), report)
	a.dryRunNotice()
	return err
}

// ApplyPackages implements router.Engines
func (a *app) ApplyPackages(ctx context.Context, req install.PackageRequest) error {
	if req.Distro == "" {
		req.Distro = a.settings.Install.Distro
	}

	m, err := a.loadManifest()
	if err != nil {
		return err
	}

	if !a.dryRun {
		if err := sanity.FirstError(a.checker.PackageTools(a.settings, a.elevator.Needed())); err != nil {
			return err
		}
	}

	pkgs, err := a.installer().ApplyPackages(ctx, m, req)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		a.logger.Info().Str("group", req.Key()).Msg("No packages to install")
		a.printer.Message(fmt.Sprintf(MsgPackagesSkipped, req.Key()))
	}
	a.dryRunNotice()
	return nil
}

// ApplyFlatpaks implements router.Engines
func (a *app) ApplyFlatpaks(_ context.Context) error {
	m, err := a.loadManifest()
	if err != nil {
		return err
	}

	remotes, err := a.installer().ApplyFlatpaks(m)
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		a.printer.Message(MsgNoFlatpaks)
		return nil
	}
	a.printer.Message(MsgFlatpaksInert)
	return nil
}

// entryRows lists every tracked entry with its system and repository path
func (a *app) entryRows(m *manifest.Manifest) []ui.EntryRow {
	entries := m.Entries()
	rows := make([]ui.EntryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ui.EntryRow{
			Scope:  e.Scope,
			Kind:   e.Kind,
			Path:   e.RelPath,
			System: a.mapper.SystemPath(e.Scope, e.RelPath),
			Repo:   a.mapper.RepoPath(e.Scope, e.RelPath),
		})
	}
	return rows
}
