// Package sanity verifies, before anything runs, that the tools and files
// an operation depends on are present. Failures here are reported in plain
// terms instead of surfacing later as an exec or copy error.
package sanity

import (
	"fmt"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/proc"
	"github.com/spf13/afero"
)

const missingHint = "is not installed, or is not on $PATH"

// Result is the outcome of one check
type Result struct {
	Name   string
	Target string
	// Optional checks are reported but never fail an operation
	Optional bool
	Err      error
}

// OK reports whether the check passed
func (r Result) OK() bool {
	return r.Err == nil
}

// Checker runs sanity checks
type Checker struct {
	fs       afero.Fs
	lookPath func(string) (string, error)
}

// New creates a Checker resolving tools on PATH
func New(fs afero.Fs) *Checker {
	return &Checker{fs: fs, lookPath: proc.LookPath}
}

// WithLookPath replaces tool resolution, for tests
func (c *Checker) WithLookPath(fn func(string) (string, error)) *Checker {
	cp := *c
	cp.lookPath = fn
	return &cp
}

// Tool checks that name resolves to an executable
func (c *Checker) Tool(label, name string) Result {
	res := Result{Name: label, Target: name}
	if name == "" {
		return res
	}
	if _, err := c.lookPath(name); err != nil {
		res.Err = errors.Wrapf(err, errors.ErrToolMissing, "`%s` %s", name, missingHint).
			WithDetail("tool", name)
	}
	return res
}

// Dir checks that path is an existing directory
func (c *Checker) Dir(label, path string) Result {
	res := Result{Name: label, Target: path}
	ok, err := afero.DirExists(c.fs, path)
	if err != nil || !ok {
		res.Err = errors.Newf(errors.ErrConfigNotFound, "%s is not a directory", path).
			WithDetail("path", path)
	}
	return res
}

// File checks that path is an existing file
func (c *Checker) File(label, path string) Result {
	res := Result{Name: label, Target: path}
	ok, err := afero.Exists(c.fs, path)
	if err == nil && ok {
		if isDir, _ := afero.IsDir(c.fs, path); isDir {
			ok = false
		}
	}
	if err != nil || !ok {
		res.Err = errors.Newf(errors.ErrConfigNotFound, "%s does not exist", path).
			WithDetail("path", path)
	}
	return res
}

// FirstError returns the first failed required check, or nil
func FirstError(results []Result) error {
	for _, r := range results {
		if !r.OK() && !r.Optional {
			return r.Err
		}
	}
	return nil
}

// Summary describes the results as "n passed, m failed"
func Summary(results []Result) string {
	passed := 0
	for _, r := range results {
		if r.OK() {
			passed++
		}
	}
	return fmt.Sprintf("%d passed, %d failed", passed, len(results)-passed)
}
