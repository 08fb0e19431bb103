// Package proc runs external programs for nedots.
//
// Commands are always argv slices handed to exec.CommandContext; nothing is
// ever passed through a shell, so manifest paths and package names cannot be
// interpreted as shell syntax. Elevation is a prefix on the argv (by default
// "sudo") applied only where root privileges are needed.
package proc
