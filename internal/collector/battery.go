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
	"strconv"
	"strings"

	"droidwatt/pkg/metrics"
)

const batterySysfsDir = "/sys/class/power_supply/battery"

// BatteryCollector reads the battery's electrical state from sysfs
// pseudo-files and its temperature from the battery service dump.
type BatteryCollector struct {
	bridge Bridge
	logger *slog.Logger
}

// NewBatteryCollector creates a new battery collector instance.
func NewBatteryCollector(bridge Bridge, logger *slog.Logger) *BatteryCollector {
	return &BatteryCollector{bridge: bridge, logger: logger}
}

// Collect gathers current battery metrics. Each field fails independently:
// a property that cannot be read or parsed is nil, the rest are kept.
func (b *BatteryCollector) Collect(ctx context.Context) metrics.BatteryStats {
	stats := metrics.BatteryStats{
		CurrentMA:    b.readMilli(ctx, "current_now"),
		AvgCurrentMA: b.readMilli(ctx, "current_avg"),
		VoltageMV:    b.readMilli(ctx, "voltage_now"),
		CapacityPct:  b.readRaw(ctx, "capacity"),
	}

	// Power in watts from mV and mA. Current is kept signed: on most
	// kernels negative current means charging, so power sign carries the
	// direction of flow.
	if stats.VoltageMV != nil && stats.CurrentMA != nil {
		p := (*stats.VoltageMV / 1000.0) * (*stats.CurrentMA / 1000.0)
		stats.PowerW = &p
	}

	stats.TempC = b.readTemperature(ctx)

	return stats
}

// readMilli reads one sysfs battery property holding an integer in
// micro-units and converts it to milli-units.
func (b *BatteryCollector) readMilli(ctx context.Context, property string) *float64 {
	v := b.readRaw(ctx, property)
	if v == nil {
		return nil
	}
	milli := *v / 1000.0
	return &milli
}

func (b *BatteryCollector) readRaw(ctx context.Context, property string) *float64 {
	out, err := b.bridge.Shell(ctx, "cat "+batterySysfsDir+"/"+property)
	if err != nil {
		b.logger.Debug("Battery property read failed", "property", property, "error", err)
		return nil
	}
	return parseNumber(out)
}

// readTemperature reads the battery temperature from `dumpsys battery`.
// The dump reports tenths of a degree Celsius.
func (b *BatteryCollector) readTemperature(ctx context.Context) *float64 {
	out, err := b.bridge.Shell(ctx, "dumpsys battery | grep temp")
	if err != nil && out == "" {
		// grep exits 1 on no match; with empty output that simply means
		// the field is absent from the dump.
		b.logger.Debug("Battery temperature read failed", "error", err)
		return nil
	}
	return ParseBatteryTemp(out)
}

// ParseBatteryTemp extracts the temperature from a `dumpsys battery` line
// such as "  temperature: 275". The value is tenths of a degree.
func ParseBatteryTemp(out string) *float64 {
	for _, line := range strings.Split(out, "\n") {
		_, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		raw, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		t := raw / 10.0
		return &t
	}
	return nil
}

// parseNumber parses a trimmed numeric string, nil on failure or empty input.
func parseNumber(out string) *float64 {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	v, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return nil
	}
	return &v
}
