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

package collector

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const (
	cachedSectionHeader  = "Cached temperatures:"
	currentSectionHeader = "Current temperatures from HAL:"
)

// Matches the embedded record shape inside a thermalservice dump line:
// Temperature{mValue=30.0, mType=3, mName=battery, mStatus=0}
var temperatureRecordRe = regexp.MustCompile(`mValue=([0-9.]+),.*?mName=([^,}]+)`)

// ThermalCollector reads per-sensor temperatures from the thermalservice dump.
type ThermalCollector struct {
	bridge Bridge
	logger *slog.Logger
}

// NewThermalCollector creates a new thermal collector instance.
func NewThermalCollector(bridge Bridge, logger *slog.Logger) *ThermalCollector {
	return &ThermalCollector{bridge: bridge, logger: logger}
}

// Collect dumps thermalservice and parses it. Failures yield an empty
// result: thermal readings are optional and never abort the sample.
func (t *ThermalCollector) Collect(ctx context.Context) ([]string, map[string]float64) {
	out, err := t.bridge.Shell(ctx, "dumpsys thermalservice")
	if err != nil {
		t.logger.Debug("Thermal dump failed", "error", err)
		return nil, nil
	}
	return ParseThermalDump(out)
}

// ParseThermalDump scans service-dump text for the cached and current/HAL
// temperature sections. When a sensor appears in both, the HAL value wins.
// A section ends at the next non-matching non-empty line, or at the other
// section's header. Returns the sensor names in first-seen order plus the
// name→value map.
func ParseThermalDump(out string) ([]string, map[string]float64) {
	var (
		order   []string
		temps   = map[string]float64{}
		fromHAL = map[string]bool{}

		inCached, inCurrent bool
	)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		switch line {
		case cachedSectionHeader:
			inCached = true
			inCurrent = false
			continue
		case currentSectionHeader:
			inCurrent = true
			inCached = false
			continue
		}

		if !inCached && !inCurrent {
			continue
		}

		if strings.HasPrefix(line, "Temperature{") {
			m := temperatureRecordRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			name := strings.TrimSpace(m[2])

			if _, seen := temps[name]; !seen {
				order = append(order, name)
			}
			if inCurrent {
				temps[name] = value
				fromHAL[name] = true
			} else if !fromHAL[name] {
				temps[name] = value
			}
		} else if line != "" {
			// A line of another shape after records began: end of section.
			inCached = false
			inCurrent = false
		}
	}

	if len(temps) == 0 {
		return nil, nil
	}
	return order, temps
}
