// Package paths translates between the three coordinate spaces nedots works
// with: live system paths, paths inside the managed repository, and the
// (scope, relative path) pairs declared in the manifest.
//
// The mapping is pure. For a scope and a relative path:
//
//	etc:  system <EtcRoot>/<rel>     repo <RepoRoot>/etc/<rel>
//	home: system <Home>/<rel>        repo <RepoRoot><Home>/<rel>
//
// The home mirror keeps the absolute home prefix so a restore is unambiguous
// even when home directories differ between machines. Existence is never
// checked here; it is checked at the point of copy.
package paths
