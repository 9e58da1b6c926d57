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

import "time"

// Sample holds every field collected during one polling tick.
// A nil pointer field means the value could not be read or parsed this tick.
// Samples are never modified after construction; the sampler keeps only the
// most recent one to compute deltas against.
type Sample struct {
	Timestamp time.Time
	Battery   BatteryStats
	CPU       *CPUStats    // nil when CPU monitoring is disabled or unavailable
	Memory    *MemoryStats // nil when memory monitoring is disabled or unavailable

	// Thermal sensor readings keyed by sensor name, with first-seen order
	// preserved so console and CSV columns stay stable across ticks.
	SensorOrder []string
	Sensors     map[string]float64
}

// BatteryStats represents the electrical state of the device battery.
type BatteryStats struct {
	CurrentMA    *float64 // instantaneous current, mA (sign from the kernel: direction of flow)
	AvgCurrentMA *float64 // average current, mA
	VoltageMV    *float64 // instantaneous voltage, mV
	PowerW       *float64 // voltage × current, W, sign follows current
	CapacityPct  *float64 // charge level, percent
	TempC        *float64 // battery temperature, °C
}

// CPUTicks represents raw cumulative tick counters from one /proc/stat
// snapshot, in the kernel's fixed field order. Usage percentages only exist
// as the delta between two snapshots.
type CPUTicks struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// Total returns the tick total used as the percentage denominator.
// Guest ticks are excluded: the kernel already accounts them in User/Nice.
func (t CPUTicks) Total() uint64 {
	return t.User + t.Nice + t.System + t.Idle + t.IOWait + t.IRQ + t.SoftIRQ + t.Steal
}

// CPUStats represents CPU usage percentages derived from two tick snapshots.
type CPUStats struct {
	Total     *float64 // 100 − idle, or the sum of busy fields when idle is unavailable
	User      *float64
	Nice      *float64
	System    *float64
	Idle      *float64
	IOWait    *float64
	IRQ       *float64
	SoftIRQ   *float64
	Steal     *float64
	Guest     *float64
	GuestNice *float64
}

// MemoryStats represents memory usage derived from one meminfo snapshot.
// All quantities are megabytes.
type MemoryStats struct {
	TotalMB     *float64
	UsedMB      *float64 // total − available, or the free/buffers/cached fallback estimate
	AvailableMB *float64
	SwapTotalMB *float64
	SwapUsedMB  *float64
}

// Deltas holds the tick-over-tick differences for the electrical base fields.
// All fields are nil for the first sample of a run.
type Deltas struct {
	CurrentMA    *float64
	AvgCurrentMA *float64
	VoltageMV    *float64
	PowerW       *float64
}

// Record is one sample with its deltas merged in, the unit consumed by the
// console presenter and the CSV logger.
type Record struct {
	Sample *Sample
	Deltas Deltas
}
