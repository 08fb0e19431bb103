package types

import "fmt"

// Scope is the namespace a tracked path is rooted under
type Scope string

const (
	// ScopeEtc entries live under /etc and need elevation to restore
	ScopeEtc Scope = "etc"
	// ScopeHome entries live under the invoking user's home directory
	ScopeHome Scope = "home"
)

// Valid reports whether s is a known scope
func (s Scope) Valid() bool {
	return s == ScopeEtc || s == ScopeHome
}

// Kind distinguishes single files from directory trees
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Entry is a tracked manifest entry. Entries are derived from the manifest
// on demand and never persisted on their own.
type Entry struct {
	Scope   Scope  `json:"scope" yaml:"scope"`
	RelPath string `json:"path" yaml:"path"`
	Kind    Kind   `json:"kind" yaml:"kind"`
}

// String renders the entry as scope:path, e.g. "home:.config/foo"
func (e Entry) String() string {
	return fmt.Sprintf("%s:%s", e.Scope, e.RelPath)
}
