// Package diagfmt renders diagnostic bags for humans (pretty) and
// machines (json). It never mutates the bag and holds no state.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rplc/internal/diag"
	"rplc/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	markerColor  = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := 0; i < maxItems; i++ {
		d := items[i]
		printHeader(w, fs, &d, opts)
		printContext(w, fs, d.Primary, opts)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				label := "note"
				if opts.Color {
					label = noteColor.Sprint(label)
				}
				fmt.Fprintf(w, "  %s: %s\n", label, note.Msg)
			}
		}
	}

	if maxItems < len(items) {
		fmt.Fprintf(w, "... and %d more\n", len(items)-maxItems)
	}
}

func printHeader(w io.Writer, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	path := f.FormatPath(opts.PathMode.format(), fs.BaseDir())
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		switch d.Severity {
		case diag.SevError:
			sev = errorColor.Sprint(sev)
		case diag.SevWarning:
			sev = warningColor.Sprint(sev)
		}
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, d.Code.ID(), d.Message)
}

// printContext prints the source line of the span start with a caret
// marker underneath. Spans reaching past the line end are clipped.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	line := fs.Line(span.File, start.Line)
	if line == nil {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}

	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	if col+width > len(line) {
		width = len(line) - col
		if width < 1 {
			width = 1
		}
	}

	// Табы копируем как есть, чтобы маркер не уехал.
	pad := make([]byte, 0, col)
	for _, b := range line[:col] {
		if b == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = markerColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", pad, marker)
}
