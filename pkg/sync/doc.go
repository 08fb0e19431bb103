// Package sync captures live configuration into the managed repository.
//
// Capture walks the manifest's tracked entries in declaration order
// (files.etc, files.home, directories.home) and copies each from its system
// path to its repository path, overwriting what is there. Directory entries
// are copied as whole trees and merged into an existing repository copy.
//
// A batch attempts every entry and returns one COPY_FAILED error listing all
// failures, unless Options.FailFast is set, in which case it stops at the
// first failing entry and marks the rest as skipped. The Batch helper is
// shared with the install package so both directions behave the same way.
package sync
