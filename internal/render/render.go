// Package render prints analysis results for humans and machines.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/lintdiag"
)

// Format of the output.
type Format int

const (
	FormatInvalid Format = iota
	FormatText
	FormatJSON
)

var formatValueMap = map[Format]string{
	FormatText: "text",
	FormatJSON: "json",
}

func (f Format) String() string {
	v, ok := formatValueMap[f]
	if !ok {
		return fmt.Sprintf("invalid(%d)", f)
	}

	return v
}

// UnmarshalText for setting values with flags, configs, etc.
func (f *Format) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for key, v := range formatValueMap {
		if v == text {
			*f = key
			return nil
		}
	}

	return fmt.Errorf("unknown output format %q", text)
}

// Result writes the result in the given format.
func Result(w io.Writer, res *dispatch.Result, format Format, colored bool) error {
	switch format {
	case FormatText:
		return Text(w, res, colored)
	case FormatJSON:
		return JSON(w, res)
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
}

type palette struct {
	location *color.Color
	id       *color.Color
	fault    *color.Color
	severity map[lintdiag.Severity]*color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		location: color.New(color.Bold),
		id:       color.New(color.FgCyan),
		fault:    color.New(color.FgRed, color.Bold),
		severity: map[lintdiag.Severity]*color.Color{
			lintdiag.SeverityHint:    color.New(color.FgHiBlack),
			lintdiag.SeverityInfo:    color.New(color.FgBlue),
			lintdiag.SeverityWarning: color.New(color.FgYellow, color.Bold),
			lintdiag.SeverityError:   color.New(color.FgRed, color.Bold),
		},
	}

	all := []*color.Color{p.location, p.id, p.fault}
	for _, c := range p.severity {
		all = append(all, c)
	}
	for _, c := range all {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Text writes one line per diagnostic:
//
//	<file>:<line>:<col>: <severity> <rule id>: <message>
//
// followed by faults and a cancellation note if any.
func Text(w io.Writer, res *dispatch.Result, colored bool) error {
	p := newPalette(colored)

	for _, d := range res.Diagnostics {
		sev := p.severity[d.Severity()]
		if sev == nil {
			sev = p.id
		}

		_, err := fmt.Fprintf(
			w,
			"%s: %s %s: %s\n",
			p.location.Sprint(d.Location()),
			sev.Sprint(d.Severity()),
			p.id.Sprint(d.RuleID()),
			d.Message(),
		)
		if err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}

	for _, f := range res.Faults {
		if _, err := fmt.Fprintf(w, "%s %s\n", p.fault.Sprint("fault:"), f.Error()); err != nil {
			return fmt.Errorf("write fault: %w", err)
		}
	}

	if res.Cancelled {
		if _, err := fmt.Fprintln(w, "analysis cancelled, results are partial"); err != nil {
			return fmt.Errorf("write cancellation note: %w", err)
		}
	}

	return nil
}

// LocationJSON is a location in JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line,omitempty"`
	StartCol  int    `json:"start_col,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndCol    int    `json:"end_col,omitempty"`
}

// DiagnosticJSON is a diagnostic in JSON output.
type DiagnosticJSON struct {
	Rule     string       `json:"rule"`
	Severity string       `json:"severity"`
	Category string       `json:"category,omitempty"`
	Message  string       `json:"message"`
	Args     []string     `json:"args,omitempty"`
	Location LocationJSON `json:"location"`
}

// FaultJSON is a fault in JSON output.
type FaultJSON struct {
	Rule    string `json:"rule"`
	Trigger string `json:"trigger"`
	Element string `json:"element,omitempty"`
	Error   string `json:"error"`
}

// OutputJSON is the root of JSON output.
type OutputJSON struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Faults      []FaultJSON      `json:"faults,omitempty"`
	Cancelled   bool             `json:"cancelled,omitempty"`
}

// JSON writes the result as an indented JSON document.
func JSON(w io.Writer, res *dispatch.Result) error {
	out := OutputJSON{
		Diagnostics: make([]DiagnosticJSON, 0, len(res.Diagnostics)),
		Cancelled:   res.Cancelled,
	}
	for _, d := range res.Diagnostics {
		loc := d.Location()
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Rule:     d.RuleID(),
			Severity: d.Severity().String(),
			Category: d.Category(),
			Message:  d.Message(),
			Args:     d.Args(),
			Location: LocationJSON{
				File:      loc.File,
				StartLine: loc.Start.Line,
				StartCol:  loc.Start.Column,
				EndLine:   loc.End.Line,
				EndCol:    loc.End.Column,
			},
		})
	}
	for _, f := range res.Faults {
		fj := FaultJSON{
			Rule:    f.Rule,
			Trigger: f.Trigger.String(),
			Element: f.Element,
		}
		if f.Err != nil {
			fj.Error = f.Err.Error()
		}
		out.Faults = append(out.Faults, fj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}

// Descriptors writes a rule listing, one rule per line.
func Descriptors(w io.Writer, descs []*lintdiag.Descriptor, enabled func(*lintdiag.Descriptor) bool) error {
	for _, d := range descs {
		state := "enabled"
		if !enabled(d) {
			state = "disabled"
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Severity, d.Category, state, d.Title); err != nil {
			return fmt.Errorf("write rule %s: %w", d.ID, err)
		}
	}

	return nil
}
