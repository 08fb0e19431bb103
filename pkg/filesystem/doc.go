// Package filesystem provides the filesystem used by nedots and the copy
// primitive shared by capture and apply.
//
// Everything goes through afero.Fs so tests can run against an in-memory
// filesystem (afero.NewMemMapFs) or a temp directory (afero.NewOsFs).
package filesystem
