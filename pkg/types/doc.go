// Package types defines the small set of value types shared by the nedots
// packages: scopes, entry kinds and tracked entries.
package types
