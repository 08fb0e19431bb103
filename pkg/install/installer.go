package install

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/filesystem"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/proc"
	"github.com/aiden/nedots/pkg/sync"
	"github.com/aiden/nedots/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Elevator decides whether and how a command gains root privileges
type Elevator interface {
	Needed() bool
	Wrap(argv ...string) []string
}

// Notifier is told about package work before it happens
type Notifier interface {
	PackageBatch(distro string, tier manifest.Tier, packages []string)
	FlatpakRemote(remote manifest.FlatpakRemote)
}

// Options configure an Installer
type Options struct {
	FS        afero.Fs
	Mapper    *paths.Mapper
	Runner    proc.Runner
	Elevator  Elevator
	Managers  map[string]PackageManager
	AssumeYes bool
	Batch     sync.Options
	Notifier  Notifier
}

// Installer applies the repository to the system
type Installer struct {
	copier    *filesystem.Copier
	mapper    *paths.Mapper
	runner    proc.Runner
	elevator  Elevator
	managers  map[string]PackageManager
	assumeYes bool
	batch     sync.Options
	notifier  Notifier
	logger    zerolog.Logger
}

// New creates an Installer
func New(opts Options) *Installer {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	elevator := opts.Elevator
	if elevator == nil {
		elevator = proc.NewElevator(nil)
	}
	return &Installer{
		copier:    filesystem.NewCopier(opts.FS),
		mapper:    opts.Mapper,
		runner:    opts.Runner,
		elevator:  elevator,
		managers:  opts.Managers,
		assumeYes: opts.AssumeYes,
		batch:     opts.Batch,
		notifier:  notifier,
		logger:    logging.GetLogger("install"),
	}
}

// ApplyConfigs copies every tracked entry from the repository to the system
func (i *Installer) ApplyConfigs(ctx context.Context, m *manifest.Manifest) (*types.Report, error) {
	if err := m.Require(manifest.SectionFiles, manifest.SectionDirectories); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(i.logger, "apply-configs")
	defer done()

	return sync.Batch(m.Entries(), i.batch, func(entry types.Entry) types.EntryResult {
		return i.applyEntry(ctx, entry)
	})
}

func (i *Installer) applyEntry(ctx context.Context, entry types.Entry) types.EntryResult {
	src := i.mapper.RepoPath(entry.Scope, entry.RelPath)
	dst := i.mapper.SystemPath(entry.Scope, entry.RelPath)

	if entry.Scope != types.ScopeEtc || !i.elevator.Needed() {
		return sync.CopyEntry(i.copier, entry, src, dst, i.batch.DryRun, i.logger)
	}

	res := types.EntryResult{Entry: entry, Source: src, Destination: dst, Elevated: true}

	// The repository is owned by the user, so the source can be checked
	// without privileges before anything runs as root.
	if ok, err := i.copier.Exists(src); err != nil || !ok {
		res.Status = types.StatusFailed
		res.Err = errors.Newf(errors.ErrCopyFailed, "%s: source %s does not exist", entry, src).
			WithDetail("entry", entry.String())
		return res
	}

	if i.batch.DryRun {
		res.Status = types.StatusPlanned
		i.logger.Info().Str("entry", entry.String()).Str("from", src).Str("to", dst).Msg("Would copy with elevation")
		return res
	}

	steps := [][]string{
		i.elevator.Wrap("mkdir", "-p", "--", filepath.Dir(dst)),
		i.elevator.Wrap("cp", "-rT", "--", src, dst),
	}
	for _, argv := range steps {
		if err := i.runner.Run(ctx, argv); err != nil {
			res.Status = types.StatusFailed
			res.Err = errors.Wrapf(err, errors.ErrCopyFailed, "%s: elevated copy to %s failed", entry, dst).
				WithDetail("entry", entry.String()).
				WithDetail("exitCode", proc.ExitCode(err))
			return res
		}
	}

	res.Status = types.StatusCopied
	return res
}

// ApplyPackages installs the package list selected by req in a single
// package manager invocation and returns the requested names. An empty
// list is a successful no-op.
func (i *Installer) ApplyPackages(ctx context.Context, m *manifest.Manifest, req PackageRequest) ([]string, error) {
	mgr, ok := i.managers[req.Distro]
	if !ok {
		return nil, errors.Newf(errors.ErrSettingsInvalid, "no package manager configured for distro %q", req.Distro).
			WithDetail("known", i.distroNames())
	}

	pkgs, err := m.PackageList(req.Tier(), req.Key())
	if err != nil {
		return nil, err
	}

	logger := i.logger.With().Str("tier", string(req.Tier())).Str("group", req.Key()).Logger()
	if len(pkgs) == 0 {
		logger.Info().Msg("Package list is empty, nothing to install")
		return pkgs, nil
	}

	i.notifier.PackageBatch(req.Distro, req.Tier(), pkgs)

	argv := i.elevator.Wrap(mgr.Command(pkgs, i.assumeYes)...)
	logger.Info().Strs("packages", pkgs).Msg("Installing packages")
	if err := i.runner.Run(ctx, argv); err != nil {
		return pkgs, errors.Wrapf(err, errors.ErrPackageManagerFailed, "%s failed to install %d packages", mgr.Tool(), len(pkgs)).
			WithDetail("group", req.Key()).
			WithDetail("exitCode", proc.ExitCode(err))
	}
	return pkgs, nil
}

// ApplyFlatpaks resolves the declared flatpak remotes and reports them.
// Nothing is installed.
func (i *Installer) ApplyFlatpaks(m *manifest.Manifest) ([]manifest.FlatpakRemote, error) {
	remotes, err := m.Flatpaks()
	if err != nil {
		return nil, err
	}
	for _, r := range remotes {
		i.notifier.FlatpakRemote(r)
	}
	i.logger.Info().Int("remotes", len(remotes)).Msg("Resolved flatpak remotes")
	return remotes, nil
}

func (i *Installer) distroNames() []string {
	names := make([]string, 0, len(i.managers))
	for name := range i.managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nopNotifier struct{}

func (nopNotifier) PackageBatch(string, manifest.Tier, []string) {}
func (nopNotifier) FlatpakRemote(manifest.FlatpakRemote)         {}
