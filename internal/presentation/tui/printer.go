package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	markOK   = "✓"
	markFail = "✗"
	markPlan = "•"
)

var actionTitles = map[string]string{
	"environment":      "Environment",
	"spacemacs":        "Spacemacs",
	"tmuxinator":       "Tmuxinator",
	"chromium-datadir": "Chromium",
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes the user-facing progress lines.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
}

// NewPrinter writes to w, coloring the markers only when color is true.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Printer{w: w, profile: profile}
}

func (p *Printer) mark(symbol, hex string) string {
	if p.profile == termenv.Ascii {
		return symbol
	}
	return p.profile.String(symbol).Foreground(p.profile.Color(hex)).String()
}

func (p *Printer) ok() string   { return p.mark(markOK, "#22c55e") }
func (p *Printer) fail() string { return p.mark(markFail, "#ef4444") }
func (p *Printer) plan() string { return p.mark(markPlan, "#818cf8") }

// Switching announces an activation.
func (p *Printer) Switching(name string) {
	fmt.Fprintf(p.w, "Switching to: %s\n", name)
}

// RenameReport prints one line per rename result.
func (p *Printer) RenameReport(report domain.RenameReport) {
	for _, res := range report.Results {
		op := res.Operation
		switch {
		case res.Err != nil:
			fmt.Fprintf(p.w, "  %s Workspace %d failed: %v\n", p.fail(), op.Slot, res.Err)
		case res.Planned:
			fmt.Fprintf(p.w, "  %s Workspace %d: %q -> %q (dry run)\n", p.plan(), op.Slot, op.Source, op.Target)
		default:
			fmt.Fprintf(p.w, "  %s Workspace %d: %s\n", p.ok(), op.Slot, op.Label())
		}
	}
}

// ActionResults prints one line per generator action.
func (p *Printer) ActionResults(results []domain.ActionResult) {
	for _, res := range results {
		title := actionTitles[res.Action]
		if title == "" {
			title = res.Action
		}
		switch {
		case res.Err != nil && res.Environment == "":
			fmt.Fprintf(p.w, "  %s Error: %v\n", p.fail(), res.Err)
		case res.Err != nil:
			fmt.Fprintf(p.w, "  %s %s failed: %s (%v)\n", p.fail(), title, res.Environment, res.Err)
		case res.Skipped != "":
			fmt.Fprintf(p.w, "Warning: %s, skipping %s action for %s\n", capitalize(res.Skipped), res.Action, res.Environment)
		default:
			fmt.Fprintf(p.w, "  %s %s: %s\n", p.ok(), title, res.Environment)
		}
	}
}

// EnvironmentList prints the catalog as an aligned table.
func (p *Printer) EnvironmentList(envs []domain.Environment) {
	if len(envs) == 0 {
		fmt.Fprintln(p.w, "No environments found")
		return
	}

	fmt.Fprintln(p.w, "Available environments:")
	fmt.Fprintln(p.w, strings.Repeat("-", 40))
	for _, env := range envs {
		fmt.Fprintf(p.w, "%-20s | %-12s | %-10s | %s\n",
			orUnknown(env.Name), orUnknown(env.Role), orUnknown(env.Language), orUnknown(env.Label()))
	}
}

// NotFound reports an unknown environment and the available names.
func (p *Printer) NotFound(name string, available []string) {
	fmt.Fprintf(p.w, "Error: Environment '%s' not found\n", name)
	fmt.Fprintln(p.w, "Available environments:")
	for _, n := range available {
		fmt.Fprintf(p.w, "  - %s\n", n)
	}
}

// Record prints an activation record.
func (p *Printer) Record(rec *domain.ActivationRecord) {
	fmt.Fprintf(p.w, "%s (activated %s, %d renamed, %d failed)\n",
		rec.Environment, rec.ActivatedAt.Local().Format("2006-01-02 15:04:05"), rec.Renamed, rec.Failed)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
