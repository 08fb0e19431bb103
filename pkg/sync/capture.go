package sync

import (
	"path/filepath"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/filesystem"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/paths"
	"github.com/aiden/nedots/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Capturer copies tracked system files into the repository
type Capturer struct {
	copier *filesystem.Copier
	mapper *paths.Mapper
	opts   Options
	logger zerolog.Logger
}

// NewCapturer creates a Capturer working on fs
func NewCapturer(fs afero.Fs, mapper *paths.Mapper, opts Options) *Capturer {
	return &Capturer{
		copier: filesystem.NewCopier(fs),
		mapper: mapper,
		opts:   opts,
		logger: logging.GetLogger("sync.capture"),
	}
}

// CaptureAll copies every tracked entry from the system into the
// repository. The manifest must have both files and directories sections;
// that check happens before anything is copied.
func (c *Capturer) CaptureAll(m *manifest.Manifest) (*types.Report, error) {
	if err := m.Require(manifest.SectionFiles, manifest.SectionDirectories); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(c.logger, "capture")
	defer done()

	entries := m.Entries()
	c.logger.Info().
		Int("entries", len(entries)).
		Str("repo", c.mapper.RepoRoot()).
		Bool("dryRun", c.opts.DryRun).
		Msg("Capturing tracked entries")

	return Batch(entries, c.opts, c.capture)
}

func (c *Capturer) capture(entry types.Entry) types.EntryResult {
	src := c.mapper.SystemPath(entry.Scope, entry.RelPath)
	dst := c.mapper.RepoPath(entry.Scope, entry.RelPath)
	return CopyEntry(c.copier, entry, src, dst, c.opts.DryRun, c.logger)
}

// CopyEntry copies one entry from src to dst in-process and reports the
// outcome. The destination's parent is created first.
func CopyEntry(copier *filesystem.Copier, entry types.Entry, src, dst string, dryRun bool, logger zerolog.Logger) types.EntryResult {
	res := types.EntryResult{Entry: entry, Source: src, Destination: dst}

	if dryRun {
		exists, err := copier.Exists(src)
		if err != nil || !exists {
			res.Status = types.StatusFailed
			res.Err = errors.Newf(errors.ErrCopyFailed, "%s: source %s does not exist", entry, src).
				WithDetail("entry", entry.String())
			return res
		}
		res.Status = types.StatusPlanned
		logger.Info().Str("entry", entry.String()).Str("from", src).Str("to", dst).Msg("Would copy")
		return res
	}

	if err := paths.EnsureDir(copier.Fs(), filepath.Dir(dst)); err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}

	changed, err := copier.Copy(src, dst)
	if err != nil {
		res.Status = types.StatusFailed
		res.Err = errors.Wrapf(err, errors.ErrCopyFailed, "%s: cannot copy %s to %s", entry, src, dst).
			WithDetail("entry", entry.String())
		logger.Error().Err(err).Str("entry", entry.String()).Msg("Copy failed")
		return res
	}

	if changed {
		res.Status = types.StatusCopied
	} else {
		res.Status = types.StatusUnchanged
	}
	logger.Debug().
		Str("entry", entry.String()).
		Str("status", string(res.Status)).
		Str("from", src).
		Str("to", dst).
		Msg("Entry processed")
	return res
}
