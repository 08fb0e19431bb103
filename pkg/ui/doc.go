// Package ui renders nedots output.
//
// A Printer writes to one io.Writer in one Format. Terminal output uses pterm
// prefixes and the lipgloss styles from the styles package; text output is
// the same content without styling; JSON and YAML are used by commands that
// print data (list).
package ui
