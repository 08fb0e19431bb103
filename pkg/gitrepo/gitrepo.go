package gitrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/aiden/nedots/pkg/proc"
	"github.com/rs/zerolog"
)

// Tool is the binary every operation runs
const Tool = "git"

// Options select how far Publish goes. Push implies Commit.
type Options struct {
	Commit bool
	Push   bool
}

// Enabled reports whether Publish will run anything
func (o Options) Enabled() bool {
	return o.Commit || o.Push
}

// Result describes what Publish did
type Result struct {
	Staged    bool
	Committed bool
	Pushed    bool
}

// Publisher stages, commits and pushes the repository
type Publisher struct {
	runner proc.Runner
	root   string
	dryRun bool
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a Publisher for the working tree at root. In dry-run mode the
// staged-changes probe is skipped and every step is handed to the runner.
func New(runner proc.Runner, root string, dryRun bool) *Publisher {
	return &Publisher{
		runner: runner,
		root:   root,
		dryRun: dryRun,
		now:    time.Now,
		logger: logging.GetLogger("gitrepo"),
	}
}

// CommitMessage is the message used for capture commits
func CommitMessage(t time.Time) string {
	return fmt.Sprintf("Latest (%s)", t.Format("2006-01-02 15:04:05"))
}

func (p *Publisher) argv(args ...string) []string {
	return append([]string{Tool, "-C", p.root}, args...)
}

// Publish runs `git add -A`, commits when anything is staged and pushes
// when asked. A clean tree is not an error: nothing is committed but a push
// still runs so earlier local commits reach the remote.
func (p *Publisher) Publish(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if !opts.Enabled() {
		return res, nil
	}

	if err := p.runner.Run(ctx, p.argv("add", "-A")); err != nil {
		return res, p.failed(err, "add", "failed to stage changes")
	}

	staged, err := p.hasStagedChanges(ctx)
	if err != nil {
		return res, err
	}
	res.Staged = staged

	if staged {
		msg := CommitMessage(p.now())
		if err := p.runner.Run(ctx, p.argv("commit", "-m", msg)); err != nil {
			return res, p.failed(err, "commit", "failed to commit changes; resolve conflicts manually")
		}
		res.Committed = true
		p.logger.Info().Str("repo", p.root).Str("message", msg).Msg("Committed captured changes")
	} else {
		p.logger.Info().Str("repo", p.root).Msg("Nothing to commit")
	}

	if opts.Push {
		if err := p.runner.Run(ctx, p.argv("push")); err != nil {
			return res, p.failed(err, "push", "failed to push to the remote")
		}
		res.Pushed = true
	}

	return res, nil
}

// hasStagedChanges asks git whether the index differs from HEAD. `git diff
// --quiet` exits 1 when it does.
func (p *Publisher) hasStagedChanges(ctx context.Context) (bool, error) {
	if p.dryRun {
		return true, nil
	}
	err := p.runner.Run(ctx, p.argv("diff", "--cached", "--quiet"))
	if err == nil {
		return false, nil
	}
	if proc.ExitCode(err) == 1 {
		return true, nil
	}
	return false, p.failed(err, "diff", "failed to inspect staged changes")
}

func (p *Publisher) failed(err error, step, msg string) error {
	return errors.Wrap(err, errors.ErrGitFailed, msg).
		WithDetail("step", step).
		WithDetail("repo", p.root).
		WithDetail("exitCode", proc.ExitCode(err))
}
