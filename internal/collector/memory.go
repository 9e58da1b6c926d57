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

// MemoryCollector reads memory usage from the device's meminfo snapshot.
type MemoryCollector struct {
	bridge Bridge
	logger *slog.Logger
}

// NewMemoryCollector creates a new memory collector instance.
func NewMemoryCollector(bridge Bridge, logger *slog.Logger) *MemoryCollector {
	return &MemoryCollector{bridge: bridge, logger: logger}
}

// Collect reads /proc/meminfo, nil when the snapshot cannot be read.
func (m *MemoryCollector) Collect(ctx context.Context) *metrics.MemoryStats {
	out, err := m.bridge.Shell(ctx, "cat /proc/meminfo")
	if err != nil {
		m.logger.Debug("Meminfo read failed", "error", err)
		return nil
	}
	return ParseMeminfo(out)
}

// ParseMeminfo parses colon-separated "Key:   <value> kB" lines and derives
// usage in megabytes. Used memory is total − available when the kernel
// reports MemAvailable directly, otherwise the classic
// total − free − buffers − cached estimate. Swap used is swap total − swap
// free, zero when the device has no swap configured, nil when the fields
// are missing. kB→MB conversion divides by 1024.
func ParseMeminfo(out string) *metrics.MemoryStats {
	kb := map[string]float64{}
	for _, line := range strings.Split(out, "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "kB"))
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		kb[strings.TrimSpace(key)] = v
	}

	if len(kb) == 0 {
		return nil
	}

	stats := &metrics.MemoryStats{
		TotalMB:     toMB(kb, "MemTotal"),
		AvailableMB: toMB(kb, "MemAvailable"),
		SwapTotalMB: toMB(kb, "SwapTotal"),
	}

	switch {
	case stats.TotalMB != nil && stats.AvailableMB != nil:
		used := *stats.TotalMB - *stats.AvailableMB
		stats.UsedMB = &used
	case stats.TotalMB != nil:
		free, freeOK := kb["MemFree"]
		buffers, bufOK := kb["Buffers"]
		cached, cacheOK := kb["Cached"]
		if freeOK && bufOK && cacheOK {
			used := *stats.TotalMB - (free+buffers+cached)/1024.0
			stats.UsedMB = &used
		}
	}

	swapTotal, totalOK := kb["SwapTotal"]
	swapFree, freeOK := kb["SwapFree"]
	switch {
	case totalOK && swapTotal == 0:
		zero := 0.0
		stats.SwapUsedMB = &zero
	case totalOK && freeOK:
		used := (swapTotal - swapFree) / 1024.0
		stats.SwapUsedMB = &used
	}

	return stats
}

func toMB(kb map[string]float64, key string) *float64 {
	v, ok := kb[key]
	if !ok {
		return nil
	}
	mb := v / 1024.0
	return &mb
}
