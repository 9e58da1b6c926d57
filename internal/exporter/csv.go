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

package exporter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"droidwatt/pkg/metrics"
)

const (
	naString        = "N/A"
	timestampFormat = "2006-01-02 15:04:05.000"
)

// CSVLogger appends one row per tick containing every field of the enabled
// feature set, independent of the console column selection, so the file is a
// complete record of the run. Rows are flushed to the OS immediately so a
// partial run survives abnormal termination.
type CSVLogger struct {
	file   *os.File
	bufw   *bufio.Writer
	csvw   *csv.Writer
	fields []metrics.FieldSpec
	loc    *time.Location
	logger *slog.Logger
}

// NewCSVLogger opens the output file and writes the header row. The header
// is written exactly once, at open time; it lists every field in the fixed
// superset order shared with the presenter.
func NewCSVLogger(path string, fields []metrics.FieldSpec, loc *time.Location, logger *slog.Logger) (*CSVLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	if loc == nil {
		loc = time.Local
	}

	bufw := bufio.NewWriter(file)
	l := &CSVLogger{
		file:   file,
		bufw:   bufw,
		csvw:   csv.NewWriter(bufw),
		fields: fields,
		loc:    loc,
		logger: logger,
	}

	header := append([]string{"Timestamp"}, metrics.FieldNames(fields)...)
	if err := l.csvw.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := l.flush(); err != nil {
		file.Close()
		return nil, err
	}

	return l, nil
}

// WriteRecord appends one row and flushes it. Implements the sampler's Sink.
func (l *CSVLogger) WriteRecord(rec *metrics.Record) error {
	row := make([]string, 0, len(l.fields)+1)
	row = append(row, rec.Sample.Timestamp.In(l.loc).Format(timestampFormat))
	for _, f := range l.fields {
		row = append(row, formatCell(f, rec))
	}

	if err := l.csvw.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return l.flush()
}

// formatCell serializes one field with the shared precision table; an
// unavailable value becomes the literal N/A, matching the console.
func formatCell(f metrics.FieldSpec, rec *metrics.Record) string {
	v := f.Value(rec)
	if v == nil {
		return naString
	}
	return strconv.FormatFloat(*v, 'f', f.Precision, 64)
}

func (l *CSVLogger) flush() error {
	l.csvw.Flush()
	if err := l.csvw.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	if err := l.bufw.Flush(); err != nil {
		return fmt.Errorf("buffer writer error: %w", err)
	}
	return nil
}

// Close flushes any remaining data and closes the file.
func (l *CSVLogger) Close() error {
	if err := l.flush(); err != nil {
		l.logger.Error("Final flush failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	l.logger.Info("CSV log closed", "path", l.file.Name())
	return nil
}

// Path returns the output file path.
func (l *CSVLogger) Path() string {
	return l.file.Name()
}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename derives the per-run CSV file name from the device model and
// serial plus a timestamp, with unsafe characters replaced. An unknown
// serial is substituted with a fresh UUID so concurrent runs cannot collide
// on the same name.
func Filename(model, serial string, now time.Time) string {
	if model == "" {
		model = "UNKNOWN_MODEL"
	}
	if serial == "" || serial == "unknown" {
		serial = uuid.New().String()
	}
	return fmt.Sprintf("droidwatt_%s_%s_%s.csv",
		sanitizeComponent(model),
		sanitizeComponent(serial),
		now.Format("20060102_150405"),
	)
}

func sanitizeComponent(s string) string {
	return unsafeFilenameRe.ReplaceAllString(s, "_")
}
