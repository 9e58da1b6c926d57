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

import "unicode/utf8"

// FieldSpec describes one numeric column of the output: its header label,
// console column width, decimal precision, whether positive values carry an
// explicit sign (delta columns), and how to extract it from a record.
// The same field table drives both the console presenter and the CSV logger,
// so an unavailable value renders as "N/A" identically in both.
type FieldSpec struct {
	Name      string
	Width     int
	Precision int
	Signed    bool
	Value     func(*Record) *float64
}

// Fallback width for columns without a fixed entry (thermal sensor names).
const sensorBaseWidth = 12

// FieldOptions selects which column groups exist for a run. The CSV always
// carries every field built here; the console additionally filters through
// the user's column selection.
type FieldOptions struct {
	Deltas  bool
	CPU     bool
	Memory  bool
	Sensors []string // thermal sensor names in first-seen order; empty when disabled
}

// Fields builds the ordered column table for one run. The order is fixed:
// battery electrical fields (with their delta columns interleaved when
// enabled), capacity and battery temperature, CPU percentages, memory
// quantities, then one column per thermal sensor.
func Fields(opts FieldOptions) []FieldSpec {
	fields := []FieldSpec{
		{Name: "Current (mA)", Width: 12, Precision: 1,
			Value: func(r *Record) *float64 { return r.Sample.Battery.CurrentMA }},
	}
	if opts.Deltas {
		fields = append(fields, FieldSpec{Name: "ΔCurrent (mA)", Width: 13, Precision: 1, Signed: true,
			Value: func(r *Record) *float64 { return r.Deltas.CurrentMA }})
	}
	fields = append(fields, FieldSpec{Name: "Avg Current (mA)", Width: 16, Precision: 1,
		Value: func(r *Record) *float64 { return r.Sample.Battery.AvgCurrentMA }})
	if opts.Deltas {
		fields = append(fields, FieldSpec{Name: "ΔAvg Current (mA)", Width: 17, Precision: 1, Signed: true,
			Value: func(r *Record) *float64 { return r.Deltas.AvgCurrentMA }})
	}
	fields = append(fields, FieldSpec{Name: "Voltage (mV)", Width: 12, Precision: 1,
		Value: func(r *Record) *float64 { return r.Sample.Battery.VoltageMV }})
	if opts.Deltas {
		fields = append(fields, FieldSpec{Name: "ΔVoltage (mV)", Width: 13, Precision: 1, Signed: true,
			Value: func(r *Record) *float64 { return r.Deltas.VoltageMV }})
	}
	fields = append(fields, FieldSpec{Name: "Power (W)", Width: 10, Precision: 3,
		Value: func(r *Record) *float64 { return r.Sample.Battery.PowerW }})
	if opts.Deltas {
		fields = append(fields, FieldSpec{Name: "ΔPower (W)", Width: 10, Precision: 3, Signed: true,
			Value: func(r *Record) *float64 { return r.Deltas.PowerW }})
	}
	fields = append(fields,
		FieldSpec{Name: "Capacity (%)", Width: 12, Precision: 0,
			Value: func(r *Record) *float64 { return r.Sample.Battery.CapacityPct }},
		FieldSpec{Name: "Batt Temp (°C)", Width: 14, Precision: 1,
			Value: func(r *Record) *float64 { return r.Sample.Battery.TempC }},
	)

	if opts.CPU {
		cpuField := func(get func(*CPUStats) *float64) func(*Record) *float64 {
			return func(r *Record) *float64 {
				if r.Sample.CPU == nil {
					return nil
				}
				return get(r.Sample.CPU)
			}
		}
		fields = append(fields,
			FieldSpec{Name: "CPU Total (%)", Width: 13, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.Total })},
			FieldSpec{Name: "CPU User (%)", Width: 12, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.User })},
			FieldSpec{Name: "CPU Nice (%)", Width: 12, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.Nice })},
			FieldSpec{Name: "CPU System (%)", Width: 14, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.System })},
			FieldSpec{Name: "CPU Idle (%)", Width: 12, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.Idle })},
			FieldSpec{Name: "CPU IOWait (%)", Width: 14, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.IOWait })},
			FieldSpec{Name: "CPU IRQ (%)", Width: 11, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.IRQ })},
			FieldSpec{Name: "CPU SoftIRQ (%)", Width: 15, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.SoftIRQ })},
			FieldSpec{Name: "CPU Steal (%)", Width: 13, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.Steal })},
			FieldSpec{Name: "CPU Guest (%)", Width: 13, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.Guest })},
			FieldSpec{Name: "CPU GuestNice (%)", Width: 17, Precision: 1, Value: cpuField(func(c *CPUStats) *float64 { return c.GuestNice })},
		)
	}

	if opts.Memory {
		memField := func(get func(*MemoryStats) *float64) func(*Record) *float64 {
			return func(r *Record) *float64 {
				if r.Sample.Memory == nil {
					return nil
				}
				return get(r.Sample.Memory)
			}
		}
		fields = append(fields,
			FieldSpec{Name: "Mem Total (MB)", Width: 14, Precision: 0, Value: memField(func(m *MemoryStats) *float64 { return m.TotalMB })},
			FieldSpec{Name: "Mem Used (MB)", Width: 13, Precision: 0, Value: memField(func(m *MemoryStats) *float64 { return m.UsedMB })},
			FieldSpec{Name: "Mem Avail (MB)", Width: 14, Precision: 0, Value: memField(func(m *MemoryStats) *float64 { return m.AvailableMB })},
			FieldSpec{Name: "Swap Total (MB)", Width: 15, Precision: 0, Value: memField(func(m *MemoryStats) *float64 { return m.SwapTotalMB })},
			FieldSpec{Name: "Swap Used (MB)", Width: 14, Precision: 0, Value: memField(func(m *MemoryStats) *float64 { return m.SwapUsedMB })},
		)
	}

	for _, name := range opts.Sensors {
		width := sensorBaseWidth
		if l := utf8.RuneCountInString(name); l > width {
			width = l
		}
		sensor := name
		fields = append(fields, FieldSpec{Name: sensor, Width: width, Precision: 1,
			Value: func(r *Record) *float64 {
				v, ok := r.Sample.Sensors[sensor]
				if !ok {
					return nil
				}
				return &v
			}})
	}

	return fields
}

// FieldNames returns the header labels in column order.
func FieldNames(fields []FieldSpec) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
