package sync

import (
	stderrors "errors"
	"fmt"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/types"
	"go.uber.org/multierr"
)

// Options control how a batch of entries is processed
type Options struct {
	// FailFast stops at the first failing entry
	FailFast bool
	// DryRun reports what would be copied without touching anything
	DryRun bool
}

// StepFunc processes one entry and returns its result. A result with
// StatusFailed must carry Err.
type StepFunc func(entry types.Entry) types.EntryResult

// Batch runs step over entries in order and collects a report. Failures
// are aggregated into a single COPY_FAILED error; the report is returned
// in every case so callers can show per-entry outcomes.
func Batch(entries []types.Entry, opts Options, step StepFunc) (*types.Report, error) {
	report := &types.Report{DryRun: opts.DryRun}

	var errs error
	for i, entry := range entries {
		res := step(entry)
		report.Add(res)

		if res.Status != types.StatusFailed {
			continue
		}
		errs = multierr.Append(errs, res.Err)

		if opts.FailFast {
			for _, rest := range entries[i+1:] {
				report.Add(types.EntryResult{Entry: rest, Status: types.StatusSkipped})
			}
			break
		}
	}

	if errs == nil {
		return report, nil
	}

	failed := report.Failed()
	names := make([]string, 0, len(failed))
	for _, res := range failed {
		names = append(names, res.Entry.String())
	}

	attempted := len(report.Results) - report.Count(types.StatusSkipped)
	msg := fmt.Sprintf("%d of %d entries failed", len(failed), len(entries))
	if opts.FailFast && attempted < len(entries) {
		msg = fmt.Sprintf("stopped at first failure after %d of %d entries", attempted, len(entries))
	}

	return report, errors.Wrap(errs, errors.ErrCopyFailed, msg).WithDetail("failed", names)
}

// failures splits an aggregated batch error into the per-entry errors
func failures(err error) []error {
	var nerr *errors.NedotsError
	if stderrors.As(err, &nerr) && nerr.Code == errors.ErrCopyFailed && nerr.Wrapped != nil {
		return multierr.Errors(nerr.Wrapped)
	}
	return multierr.Errors(err)
}
