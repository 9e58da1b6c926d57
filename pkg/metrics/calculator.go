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

package metrics

import "math"

// ComputeDeltas calculates the difference between the current and the
// previous sample for the electrical base fields. A delta is nil when either
// side of the subtraction is unavailable, or when prev is nil (first sample).
func ComputeDeltas(prev, current *Sample) Deltas {
	if prev == nil || current == nil {
		return Deltas{}
	}

	return Deltas{
		CurrentMA:    diff(prev.Battery.CurrentMA, current.Battery.CurrentMA),
		AvgCurrentMA: diff(prev.Battery.AvgCurrentMA, current.Battery.AvgCurrentMA),
		VoltageMV:    diff(prev.Battery.VoltageMV, current.Battery.VoltageMV),
		PowerW:       diff(prev.Battery.PowerW, current.Battery.PowerW),
	}
}

func diff(prev, current *float64) *float64 {
	if prev == nil || current == nil {
		return nil
	}
	d := *current - *prev
	return &d
}

// CalculateCPUPercents derives per-state usage percentages from two
// cumulative tick snapshots.
// Formula per state: 100 × Δstate / Δtotal, rounded to one decimal.
// Returns nil when the total tick delta is not positive (no time elapsed,
// or counters went backwards after a device reboot).
func CalculateCPUPercents(prev, current CPUTicks) *CPUStats {
	prevTotal := prev.Total()
	currentTotal := current.Total()
	if currentTotal <= prevTotal {
		return nil
	}

	deltaTotal := float64(currentTotal - prevTotal)
	pct := func(prevField, currentField uint64) *float64 {
		d := int64(currentField) - int64(prevField)
		if d < 0 {
			d = 0
		}
		v := Round1(float64(d) / deltaTotal * 100.0)
		return &v
	}

	stats := &CPUStats{
		User:      pct(prev.User, current.User),
		Nice:      pct(prev.Nice, current.Nice),
		System:    pct(prev.System, current.System),
		Idle:      pct(prev.Idle, current.Idle),
		IOWait:    pct(prev.IOWait, current.IOWait),
		IRQ:       pct(prev.IRQ, current.IRQ),
		SoftIRQ:   pct(prev.SoftIRQ, current.SoftIRQ),
		Steal:     pct(prev.Steal, current.Steal),
		Guest:     pct(prev.Guest, current.Guest),
		GuestNice: pct(prev.GuestNice, current.GuestNice),
	}
	stats.Total = totalUsage(stats)

	return stats
}

// totalUsage computes overall usage as 100 − idle. When idle is unavailable
// it falls back to the sum of the busy, non-guest states.
func totalUsage(s *CPUStats) *float64 {
	if s.Idle != nil {
		v := Round1(100.0 - *s.Idle)
		return &v
	}

	sum := 0.0
	any := false
	for _, f := range []*float64{s.User, s.Nice, s.System, s.IOWait, s.IRQ, s.SoftIRQ, s.Steal} {
		if f != nil {
			sum += *f
			any = true
		}
	}
	if !any {
		return nil
	}
	v := Round1(sum)
	return &v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
