// Package testutil provides utilities for testing nedots components.
//
// Key components:
//   - TestEnvironment: a home directory, managed repository and etc root,
//     either in memory (afero.MemMapFs) or under t.TempDir()
//   - FakeRunner: records argv instead of executing commands
//   - File assertions over afero.Fs
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when a test needs real files
//     (symlinks, exec of real binaries)
//   - Define manifests inline in the test
package testutil
