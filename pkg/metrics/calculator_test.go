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

import (
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestComputeDeltas(t *testing.T) {
	tests := []struct {
		name    string
		prev    *Sample
		current *Sample
		want    Deltas
	}{
		{
			name: "Normal differences",
			prev: &Sample{Battery: BatteryStats{
				CurrentMA: f(500.0), AvgCurrentMA: f(450.0), VoltageMV: f(4000.0), PowerW: f(2.0),
			}},
			current: &Sample{Battery: BatteryStats{
				CurrentMA: f(520.5), AvgCurrentMA: f(440.0), VoltageMV: f(3990.0), PowerW: f(2.077),
			}},
			want: Deltas{
				CurrentMA: f(20.5), AvgCurrentMA: f(-10.0), VoltageMV: f(-10.0), PowerW: f(0.077),
			},
		},
		{
			name:    "First sample (nil prev)",
			prev:    nil,
			current: &Sample{Battery: BatteryStats{CurrentMA: f(500.0)}},
			want:    Deltas{},
		},
		{
			name: "One side unavailable",
			prev: &Sample{Battery: BatteryStats{
				CurrentMA: f(500.0), VoltageMV: nil,
			}},
			current: &Sample{Battery: BatteryStats{
				CurrentMA: nil, VoltageMV: f(4000.0),
			}},
			want: Deltas{},
		},
		{
			name:    "No change",
			prev:    &Sample{Battery: BatteryStats{PowerW: f(2.0)}},
			current: &Sample{Battery: BatteryStats{PowerW: f(2.0)}},
			want:    Deltas{PowerW: f(0.0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeltas(tt.prev, tt.current)
			checkFloat(t, "CurrentMA", got.CurrentMA, tt.want.CurrentMA)
			checkFloat(t, "AvgCurrentMA", got.AvgCurrentMA, tt.want.AvgCurrentMA)
			checkFloat(t, "VoltageMV", got.VoltageMV, tt.want.VoltageMV)
			checkFloat(t, "PowerW", got.PowerW, tt.want.PowerW)
		})
	}
}

func TestCalculateCPUPercents(t *testing.T) {
	// Two cumulative snapshots one second apart: Δuser=10, Δsystem=10,
	// Δidle=50, total Δ=70. Idle = 100*50/70 = 71.4 after rounding, so
	// total usage = 100 − 71.4 = 28.6.
	prev := CPUTicks{User: 100, Nice: 0, System: 50, Idle: 850}
	current := CPUTicks{User: 110, Nice: 0, System: 60, Idle: 900}

	got := CalculateCPUPercents(prev, current)
	if got == nil {
		t.Fatal("CalculateCPUPercents() = nil, want stats")
	}

	checkFloat(t, "Idle", got.Idle, f(71.4))
	checkFloat(t, "User", got.User, f(14.3))
	checkFloat(t, "System", got.System, f(14.3))
	checkFloat(t, "Total", got.Total, f(28.6))
	checkFloat(t, "Nice", got.Nice, f(0.0))
	checkFloat(t, "Steal", got.Steal, f(0.0))
}

func TestCalculateCPUPercentsNoElapsedTime(t *testing.T) {
	tests := []struct {
		name    string
		prev    CPUTicks
		current CPUTicks
	}{
		{
			name:    "Identical snapshots",
			prev:    CPUTicks{User: 100, Idle: 900},
			current: CPUTicks{User: 100, Idle: 900},
		},
		{
			name:    "Counters went backwards",
			prev:    CPUTicks{User: 1000, Idle: 9000},
			current: CPUTicks{User: 100, Idle: 900},
		},
		{
			name:    "Both zero",
			prev:    CPUTicks{},
			current: CPUTicks{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateCPUPercents(tt.prev, tt.current); got != nil {
				t.Errorf("CalculateCPUPercents() = %+v, want nil", got)
			}
		})
	}
}

func TestCalculateCPUPercentsPartialRegression(t *testing.T) {
	// One counter regresses while the total still advances: the regressed
	// field clamps to zero instead of going negative.
	prev := CPUTicks{User: 100, System: 50, Idle: 800}
	current := CPUTicks{User: 90, System: 80, Idle: 900}

	got := CalculateCPUPercents(prev, current)
	if got == nil {
		t.Fatal("CalculateCPUPercents() = nil, want stats")
	}
	if got.User == nil || *got.User != 0.0 {
		t.Errorf("User = %v, want 0.0", got.User)
	}
}

func TestCPUTicksTotalExcludesGuest(t *testing.T) {
	ticks := CPUTicks{
		User: 10, Nice: 20, System: 30, Idle: 40, IOWait: 5,
		IRQ: 1, SoftIRQ: 2, Steal: 3, Guest: 100, GuestNice: 200,
	}
	if got, want := ticks.Total(), uint64(111); got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{71.42857, 71.4},
		{28.57142, 28.6},
		{0.05, 0.1},
		{-0.05, -0.1},
		{100.0, 100.0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func checkFloat(t *testing.T, field string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s = %v, want %v", field, fmtPtr(got), fmtPtr(want))
		return
	}
	if got != nil && math.Abs(*got-*want) > 1e-6 {
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}

func fmtPtr(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
