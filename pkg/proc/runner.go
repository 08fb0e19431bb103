package proc

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner executes a command given as argv
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs commands on the host. The child inherits the terminal so
// package managers and sudo can prompt the user.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	DryRun bool

	logger zerolog.Logger
}

// NewExecRunner creates a runner wired to the process's standard streams
func NewExecRunner(dryRun bool) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DryRun: dryRun,
		logger: logging.GetLogger("proc.runner"),
	}
}

// Run executes argv and waits for it to finish. A non-zero exit is
// returned as an *exec.ExitError wrapped in an INTERNAL error; callers
// re-code it for their domain.
func (r *ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return errors.New(errors.ErrInvalidInput, "empty command")
	}

	logging.LogCommand(argv[0], argv[1:])

	if r.DryRun {
		r.logger.Info().
			Str("command", strings.Join(argv, " ")).
			Msg("Dry run mode - command would be executed")
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "command %q failed", strings.Join(argv, " "))
	}

	r.logger.Debug().Str("command", argv[0]).Msg("Command completed")
	return nil
}

// ExitCoder is implemented by errors that carry a process exit status,
// such as *exec.ExitError
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitCode extracts the exit status from a Run error, or -1 when the
// command did not run to completion.
func ExitCode(err error) int {
	var exitErr ExitCoder
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// LookPath reports whether name resolves to an executable on PATH
func LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrToolMissing, "%s not found on PATH", name).
			WithDetail("tool", name)
	}
	return p, nil
}
