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
	"testing"
)

func TestBatteryCollect(t *testing.T) {
	bridge := &fakeBridge{outputs: map[string]string{
		"cat /sys/class/power_supply/battery/current_now": "500000\n",
		"cat /sys/class/power_supply/battery/current_avg": "480000\n",
		"cat /sys/class/power_supply/battery/voltage_now": "4000000\n",
		"cat /sys/class/power_supply/battery/capacity":    "85\n",
		"dumpsys battery | grep temp":                     "  temperature: 275\n",
	}}

	stats := NewBatteryCollector(bridge, testLogger()).Collect(context.Background())

	// 500000 µA is 500.0 mA, 4000000 µV is 4000.0 mV, so power is
	// 4.0 V × 0.5 A = 2.0 W.
	checkValue(t, "CurrentMA", stats.CurrentMA, 500.0)
	checkValue(t, "AvgCurrentMA", stats.AvgCurrentMA, 480.0)
	checkValue(t, "VoltageMV", stats.VoltageMV, 4000.0)
	checkValue(t, "PowerW", stats.PowerW, 2.0)
	checkValue(t, "CapacityPct", stats.CapacityPct, 85.0)
	checkValue(t, "TempC", stats.TempC, 27.5)
}

func TestBatteryCollectSignedCurrent(t *testing.T) {
	// Negative current (charging on most kernels) keeps its sign, and the
	// power sign follows it.
	bridge := &fakeBridge{outputs: map[string]string{
		"cat /sys/class/power_supply/battery/current_now": "-1200000",
		"cat /sys/class/power_supply/battery/voltage_now": "4200000",
	}}

	stats := NewBatteryCollector(bridge, testLogger()).Collect(context.Background())

	checkValue(t, "CurrentMA", stats.CurrentMA, -1200.0)
	checkValue(t, "PowerW", stats.PowerW, 4.2*-1.2)
}

func TestBatteryCollectPartialFailure(t *testing.T) {
	// Voltage path is unreadable: voltage and power are unavailable, the
	// remaining fields still come through.
	bridge := &fakeBridge{outputs: map[string]string{
		"cat /sys/class/power_supply/battery/current_now": "500000",
		"cat /sys/class/power_supply/battery/capacity":    "42",
	}}

	stats := NewBatteryCollector(bridge, testLogger()).Collect(context.Background())

	checkValue(t, "CurrentMA", stats.CurrentMA, 500.0)
	checkValue(t, "CapacityPct", stats.CapacityPct, 42.0)
	checkNil(t, "VoltageMV", stats.VoltageMV)
	checkNil(t, "PowerW", stats.PowerW)
	checkNil(t, "TempC", stats.TempC)
}

func TestBatteryCollectGarbageOutput(t *testing.T) {
	bridge := &fakeBridge{outputs: map[string]string{
		"cat /sys/class/power_supply/battery/current_now": "cat: /sys/class/power_supply/battery/current_now: No such file or directory",
		"cat /sys/class/power_supply/battery/voltage_now": "",
	}}

	stats := NewBatteryCollector(bridge, testLogger()).Collect(context.Background())

	checkNil(t, "CurrentMA", stats.CurrentMA)
	checkNil(t, "VoltageMV", stats.VoltageMV)
	checkNil(t, "PowerW", stats.PowerW)
}

func TestParseBatteryTemp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{
			name: "Standard dump line",
			in:   "  temperature: 275",
			want: ptr(27.5),
		},
		{
			name: "Multiple lines, first numeric wins",
			in:   "  temperature: 310\n  maxChargingTemp: 450",
			want: ptr(31.0),
		},
		{
			name: "No colon",
			in:   "temperature 275",
			want: nil,
		},
		{
			name: "Non-numeric value",
			in:   "  temperature: unknown",
			want: nil,
		},
		{
			name: "Empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBatteryTemp(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseBatteryTemp() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseBatteryTemp() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }
