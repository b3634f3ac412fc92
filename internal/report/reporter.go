// Package report renders the human pass/fail transcript of a harness run.
//
// A Reporter owns the check sequence counter. It starts at 1 and advances by
// one after every passing check; a failing check is the last line of a run,
// so its number is never reused.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// labelWidth pads labels so OK/FAILED markers line up.
const labelWidth = 16

// Line is one reported check.
type Line struct {
	Seq    int
	Label  string
	Passed bool
}

// Reporter writes transcript lines to w.
type Reporter struct {
	w   io.Writer
	seq int

	bold   *color.Color
	label  *color.Color
	ok     *color.Color
	failed *color.Color
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor forces ANSI colors on or off. Without it, fatih/color decides
// from the process's stdout.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		for _, c := range []*color.Color{r.bold, r.label, r.ok, r.failed} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// New returns a Reporter whose first check is number 1.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		w:      w,
		seq:    1,
		bold:   color.New(color.Bold),
		label:  color.New(color.Attribute(38), color.Attribute(5), color.Attribute(208)),
		ok:     color.New(color.FgGreen),
		failed: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes one check line and returns it. The counter advances only
// when the check passed.
func (r *Reporter) Report(label string, passed bool) Line {
	line := Line{Seq: r.seq, Label: label, Passed: passed}

	marker := r.ok.Sprint("OK")
	if !passed {
		marker = r.failed.Sprint("FAILED")
	}
	fmt.Fprintf(r.w, "Test %s %s %s\n",
		r.bold.Sprint(line.Seq),
		r.label.Sprint(fmt.Sprintf("%-*s", labelWidth, label)),
		marker,
	)

	if passed {
		r.seq++
	}
	return line
}

// Passed writes the overall success line.
func (r *Reporter) Passed() {
	fmt.Fprintf(r.w, "TEST %s\n", r.ok.Sprint("PASSED"))
}
