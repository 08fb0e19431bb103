package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/aiden/nedots/pkg/manifest"
	"github.com/aiden/nedots/pkg/sanity"
	"github.com/aiden/nedots/pkg/types"
	"github.com/aiden/nedots/pkg/ui/styles"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Printer writes user-facing output
type Printer struct {
	out    io.Writer
	format Format
	styles *styles.Registry
}

// NewPrinter creates a Printer. FormatAuto is resolved against out.
func NewPrinter(out io.Writer, format Format) *Printer {
	format = format.Resolve(out)
	reg := styles.Plain()
	if format == FormatTerminal {
		reg = styles.Default()
	}
	return &Printer{out: out, format: format, styles: reg}
}

// Format is the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

// Writer is the destination of the printer
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) styled() bool {
	return p.format == FormatTerminal
}

func (p *Printer) println(a ...interface{}) {
	_, _ = fmt.Fprintln(p.out, a...)
}

// prefix renders a pterm prefix label such as " SUCCESS " on a terminal, or
// the lowercase word in plain output
func (p *Printer) prefix(pp pterm.PrefixPrinter, word string) string {
	if !p.styled() {
		return fmt.Sprintf("%-9s", word)
	}
	return pp.Prefix.Style.Sprint(" " + pp.Prefix.Text + " ")
}

// Message prints a line of text
func (p *Printer) Message(msg string) {
	p.println(msg)
}

// PackageBatch announces a package install before the package manager runs
func (p *Printer) PackageBatch(distro string, tier manifest.Tier, pkgs []string) {
	header := fmt.Sprintf("Installing %s packages:", distro)
	p.println(p.styles.Render("Header", header))
	for _, pkg := range pkgs {
		p.println(p.styles.Render("Package", "  "+pkg))
	}
	if tier == manifest.TierExtras {
		p.println(p.styles.Render("Muted", "  (extras)"))
	}
}

// FlatpakRemote reports a declared flatpak remote and its applications
func (p *Printer) FlatpakRemote(r manifest.FlatpakRemote) {
	line := fmt.Sprintf("Flatpaks from %s:", r.Remote)
	if r.URL != "" {
		line = fmt.Sprintf("Flatpaks from %s (%s):", r.Remote, r.URL)
	}
	p.println(p.styles.Render("Header", line))
	for _, id := range r.Packages {
		p.println(p.styles.Render("Package", "  "+id))
	}
}

// Report prints the per-entry outcome of a capture or config apply and a
// one-line summary
func (p *Printer) Report(title string, r *types.Report) {
	if r == nil {
		return
	}
	if title != "" {
		if r.DryRun {
			title += " (dry run)"
		}
		p.println(p.styles.Render("Header", title))
	}

	for _, res := range r.Results {
		p.println(p.entryLine(res))
	}

	p.println(p.styles.Render("Muted", Summary(r)))
}

func (p *Printer) entryLine(res types.EntryResult) string {
	var label string
	switch res.Status {
	case types.StatusCopied:
		label = p.prefix(pterm.Success, string(res.Status))
	case types.StatusFailed:
		label = p.prefix(pterm.Error, string(res.Status))
	case types.StatusSkipped:
		label = p.prefix(pterm.Warning, string(res.Status))
	default:
		label = p.prefix(pterm.Info, string(res.Status))
	}

	line := fmt.Sprintf("%s %s", label, p.styles.Render("Entry", res.Entry.String()))
	if res.Destination != "" {
		line += " -> " + p.styles.Render("FilePath", res.Destination)
	}
	if res.Elevated {
		line += p.styles.Render("Muted", " (elevated)")
	}
	if res.Err != nil {
		line += "\n    " + p.styles.Render("Error", res.Err.Error())
	}
	return line
}

// Summary counts the outcomes of a report, e.g. "2 copied, 1 unchanged"
func Summary(r *types.Report) string {
	var parts []string
	for _, s := range []types.EntryStatus{
		types.StatusCopied, types.StatusUnchanged, types.StatusPlanned, types.StatusFailed, types.StatusSkipped,
	} {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "no entries"
	}
	return strings.Join(parts, ", ")
}

// Checks prints sanity check results
func (p *Printer) Checks(results []sanity.Result) {
	for _, r := range results {
		var label string
		switch {
		case r.OK():
			label = p.prefix(pterm.Success, "ok")
		case r.Optional:
			label = p.prefix(pterm.Warning, "missing")
		default:
			label = p.prefix(pterm.Error, "failed")
		}
		line := fmt.Sprintf("%s %s %s", label, r.Name, p.styles.Render("FilePath", r.Target))
		if !r.OK() {
			line += "\n    " + p.styles.Render("Muted", errorMessage(r.Err))
		}
		p.println(line)
	}
	p.println(p.styles.Render("Muted", sanity.Summary(results)))
}

// EntryRow is one line of the list command
type EntryRow struct {
	Scope  types.Scope `json:"scope" yaml:"scope"`
	Kind   types.Kind  `json:"kind" yaml:"kind"`
	Path   string      `json:"path" yaml:"path"`
	System string      `json:"system" yaml:"system"`
	Repo   string      `json:"repo" yaml:"repo"`
}

// Entries prints tracked entries in the printer's format
func (p *Printer) Entries(rows []EntryRow) error {
	switch p.format {
	case FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode entries")
		}
		p.println(string(data))
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode entries")
		}
		return enc.Close()
	}

	for _, row := range rows {
		p.println(fmt.Sprintf("%-4s %-9s %s",
			row.Scope, row.Kind, p.styles.Render("Entry", row.Path)))
		p.println(fmt.Sprintf("     %s %s", p.styles.Render("Muted", "system"), p.styles.Render("FilePath", row.System)))
		p.println(fmt.Sprintf("     %s %s", p.styles.Render("Muted", "repo  "), p.styles.Render("FilePath", row.Repo)))
	}
	return nil
}

// Error prints err with its code
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	code := errors.GetErrorCode(err)
	msg := errorMessage(err)
	if code == errors.ErrUnknown {
		p.println(fmt.Sprintf("%s %s", p.prefix(pterm.Error, "error"), p.styles.Render("Error", msg)))
		return
	}
	p.println(fmt.Sprintf("%s %s %s", p.prefix(pterm.Error, "error"), p.styles.Render("Error", string(code)), msg))
}

// errorMessage strips the "[CODE] " prefix of coded errors
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = strings.TrimPrefix(msg, "["+string(code)+"] ")
	}
	return msg
}
