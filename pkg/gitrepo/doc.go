// Package gitrepo records captured changes in the managed repository's git
// history.
//
// The repository root is expected to be a git working tree. Every git
// invocation is an argv of the form `git -C <root> ...` run through a
// proc.Runner, so tests record the commands instead of running them.
package gitrepo
