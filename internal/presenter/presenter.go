/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package presenter renders samples as a fixed-width table on stdout.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"droidwatt/pkg/metrics"
)

const (
	naString        = "N/A"
	timestampWidth  = 23
	timestampFormat = "2006-01-02 15:04:05.000"
	separator       = " | "
)

// Presenter writes one fixed-width console row per record for the fields the
// user selected. The timestamp is left-aligned, numerics right-aligned with
// field-specific precision; unavailable values render as N/A at full column
// width.
type Presenter struct {
	out     io.Writer
	fields  []metrics.FieldSpec
	visible []int // indices into fields, ascending
	loc     *time.Location
}

// New creates a presenter over the given field table. visible lists the
// indices of fields to show; the CSV logger is unaffected by it.
func New(out io.Writer, fields []metrics.FieldSpec, visible []int, loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.Local
	}
	return &Presenter{out: out, fields: fields, visible: visible, loc: loc}
}

// WriteHeader prints the column header row and a separator rule.
func (p *Presenter) WriteHeader() {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s", timestampWidth, "Timestamp"))
	for _, i := range p.visible {
		f := p.fields[i]
		sb.WriteString(separator)
		sb.WriteString(padLeft(f.Name, f.Width))
	}
	line := sb.String()

	fmt.Fprintln(p.out, strings.Repeat("-", displayWidth(line)))
	fmt.Fprintln(p.out, line)
	fmt.Fprintln(p.out, strings.Repeat("-", displayWidth(line)))
}

// WriteRecord renders one row. Implements the sampler's Sink.
func (p *Presenter) WriteRecord(rec *metrics.Record) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s", timestampWidth, rec.Sample.Timestamp.In(p.loc).Format(timestampFormat)))
	for _, i := range p.visible {
		sb.WriteString(separator)
		sb.WriteString(FormatCell(p.fields[i], rec))
	}

	_, err := fmt.Fprintln(p.out, sb.String())
	return err
}

// FormatCell renders one field of a record at its configured width.
func FormatCell(f metrics.FieldSpec, rec *metrics.Record) string {
	v := f.Value(rec)
	if v == nil {
		return padLeft(naString, f.Width)
	}
	if f.Signed {
		return fmt.Sprintf("%+*.*f", f.Width, f.Precision, *v)
	}
	return fmt.Sprintf("%*.*f", f.Width, f.Precision, *v)
}

// padLeft right-aligns a string, counting runes rather than bytes so that
// labels like "Batt Temp (°C)" line up with their numeric cells.
func padLeft(s string, width int) string {
	n := displayWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func displayWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
