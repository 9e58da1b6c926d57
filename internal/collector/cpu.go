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
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"droidwatt/pkg/metrics"
)

// CPUCollector derives usage percentages from consecutive /proc/stat
// snapshots taken on the device. It retains only the previous snapshot.
type CPUCollector struct {
	bridge Bridge
	logger *slog.Logger

	prev     metrics.CPUTicks
	havePrev bool
}

// NewCPUCollector creates a new CPU collector instance.
func NewCPUCollector(bridge Bridge, logger *slog.Logger) *CPUCollector {
	return &CPUCollector{bridge: bridge, logger: logger}
}

// Collect reads /proc/stat and returns percentages against the previous
// snapshot. The first successful read only establishes the baseline and
// returns nil; so does a failed read or a non-positive tick delta. A
// successful read always replaces the stored snapshot.
func (c *CPUCollector) Collect(ctx context.Context) *metrics.CPUStats {
	out, err := c.bridge.Shell(ctx, "cat /proc/stat")
	if err != nil {
		c.logger.Debug("CPU stat read failed", "error", err)
		return nil
	}

	current, err := ParseProcStat(out)
	if err != nil {
		c.logger.Debug("CPU stat parse failed", "error", err)
		return nil
	}

	var stats *metrics.CPUStats
	if c.havePrev {
		stats = metrics.CalculateCPUPercents(c.prev, current)
	}

	c.prev = current
	c.havePrev = true

	return stats
}

// ParseProcStat extracts the aggregate "cpu " line from a /proc/stat
// snapshot: up to ten whitespace-separated cumulative tick counters in the
// kernel's fixed order (user nice system idle iowait irq softirq steal
// guest guest_nice). Older kernels report fewer; missing trailing counters
// are zero.
func ParseProcStat(out string) (metrics.CPUTicks, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return metrics.CPUTicks{}, fmt.Errorf("malformed cpu line: %q", line)
		}

		values := make([]uint64, 10)
		for i := 0; i < 10 && i+1 < len(fields); i++ {
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return metrics.CPUTicks{}, fmt.Errorf("tick counter %d: %w", i, err)
			}
			values[i] = v
		}

		return metrics.CPUTicks{
			User:      values[0],
			Nice:      values[1],
			System:    values[2],
			Idle:      values[3],
			IOWait:    values[4],
			IRQ:       values[5],
			SoftIRQ:   values[6],
			Steal:     values[7],
			Guest:     values[8],
			GuestNice: values[9],
		}, nil
	}

	return metrics.CPUTicks{}, fmt.Errorf("no aggregate cpu line in stat output")
}
