package testutil

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner records commands instead of running them
type FakeRunner struct {
	mu    sync.Mutex
	calls [][]string

	// Fail returns the error for a command, or nil to succeed
	Fail func(argv []string) error
}

// NewFakeRunner creates a runner where every command succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// FailWhen makes commands whose joined argv contains substr return err
func (f *FakeRunner) FailWhen(substr string, err error) *FakeRunner {
	f.Fail = func(argv []string) error {
		if strings.Contains(strings.Join(argv, " "), substr) {
			return err
		}
		return nil
	}
	return f
}

// Run implements proc.Runner
func (f *FakeRunner) Run(_ context.Context, argv []string) error {
	f.mu.Lock()
	c := make([]string, len(argv))
	copy(c, argv)
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.Fail != nil {
		return f.Fail(argv)
	}
	return nil
}

// Calls returns every recorded argv in order
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many commands ran
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
