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

package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseColumnSelection parses a comma/range expression such as "1-4,7" into
// a sorted set of zero-based field indices. Field numbers in the expression
// are one-based, matching the numbered list shown at the prompt. The literal
// "all" selects every field.
func ParseColumnSelection(expr string, n int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if strings.EqualFold(expr, "all") {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	selected := make(map[int]bool)
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		lo, hi := token, token
		if from, to, isRange := strings.Cut(token, "-"); isRange {
			lo, hi = strings.TrimSpace(from), strings.TrimSpace(to)
		}

		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid column token %q", token)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid column token %q", token)
		}

		if start < 1 || end > n || start > end {
			return nil, fmt.Errorf("column range %q out of bounds 1-%d", token, n)
		}
		for i := start; i <= end; i++ {
			selected[i-1] = true
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("empty column selection %q", expr)
	}

	indices := make([]int, 0, len(selected))
	for i := 0; i < n; i++ {
		if selected[i] {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

// PromptColumns prints the numbered field list and reads a selection
// expression. An empty answer accepts the default expression. Invalid input
// is re-prompted; EOF falls back to the default. The selection affects the
// console only, never the CSV.
func PromptColumns(in io.Reader, out io.Writer, names []string, def string) ([]int, error) {
	fmt.Fprintln(out, "\nAvailable display columns:")
	for i, name := range names {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, name)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Columns to display (e.g. \"1-4,7\" or \"all\") [%s]: ", def)

		expr := def
		if scanner.Scan() {
			if answer := strings.TrimSpace(scanner.Text()); answer != "" {
				expr = answer
			}
		} else {
			// stdin closed (non-interactive run): take the default.
			fmt.Fprintln(out)
			return ParseColumnSelection(def, len(names))
		}

		indices, err := ParseColumnSelection(expr, len(names))
		if err != nil {
			fmt.Fprintf(out, "Invalid selection: %v\n", err)
			continue
		}
		return indices, nil
	}
}
