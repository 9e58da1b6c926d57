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
	"time"

	"droidwatt/internal/config"
	"droidwatt/pkg/metrics"
)

// Bridge is the subset of the device bridge used by collectors.
type Bridge interface {
	Shell(ctx context.Context, command string) (string, error)
}

// Sink consumes one merged record per tick (console presenter, CSV logger).
type Sink interface {
	WriteRecord(rec *metrics.Record) error
}

// Manager runs the sampling loop: one tick invokes every enabled collector
// sequentially, assembles a sample, computes deltas against the previous
// sample and emits the merged record to all sinks. Everything happens on one
// goroutine; the previous sample is touched only by the loop itself.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	battery *BatteryCollector
	thermal *ThermalCollector
	cpu     *CPUCollector
	memory  *MemoryCollector

	sinks []Sink
	prev  *metrics.Sample
}

// NewManager creates a sampling loop over the given bridge. Collectors for
// disabled categories are not constructed at all; the enabled set is data,
// not control flow.
func NewManager(cfg *config.Config, bridge Bridge, sinks []Sink, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:     cfg,
		logger:  logger,
		battery: NewBatteryCollector(bridge, logger),
		sinks:   sinks,
	}
	if cfg.EnableThermal {
		m.thermal = NewThermalCollector(bridge, logger)
	}
	if cfg.EnableCPU {
		m.cpu = NewCPUCollector(bridge, logger)
	}
	if cfg.EnableMemory {
		m.memory = NewMemoryCollector(bridge, logger)
	}
	return m
}

// Run executes ticks at the configured period until the context is
// cancelled. Each tick measures its own processing time and sleeps only the
// remainder of the period; an overrunning tick skips the sleep with a
// warning.
func (m *Manager) Run(ctx context.Context) error {
	m.logger.Info("Sampler started", "interval", m.cfg.Interval)

	for {
		start := time.Now()
		m.tick(ctx)

		elapsed := time.Since(start)
		remaining := m.cfg.Interval - elapsed
		if remaining <= 0 {
			m.logger.Warn("Tick overran polling interval",
				"elapsed", elapsed,
				"interval", m.cfg.Interval,
			)
			select {
			case <-ctx.Done():
				m.logger.Info("Sampler stopping")
				return nil
			default:
			}
			continue
		}

		select {
		case <-ctx.Done():
			m.logger.Info("Sampler stopping")
			return nil
		case <-time.After(remaining):
		}
	}
}

// tick performs one collection cycle. Per-field read failures surface as nil
// values inside the sample; sink write failures are logged and the loop
// continues. The previous sample is replaced unconditionally, even when the
// current one is partial, so the next delta uses the freshest data.
func (m *Manager) tick(ctx context.Context) {
	sample := &metrics.Sample{
		Timestamp: time.Now(),
		Battery:   m.battery.Collect(ctx),
	}

	if m.thermal != nil {
		sample.SensorOrder, sample.Sensors = m.thermal.Collect(ctx)
	}
	if m.cpu != nil {
		sample.CPU = m.cpu.Collect(ctx)
	}
	if m.memory != nil {
		sample.Memory = m.memory.Collect(ctx)
	}

	rec := &metrics.Record{Sample: sample}
	if m.cfg.EnableDeltas {
		rec.Deltas = metrics.ComputeDeltas(m.prev, sample)
	}

	for _, sink := range m.sinks {
		if err := sink.WriteRecord(rec); err != nil {
			m.logger.Error("Failed to write record", "error", err)
		}
	}

	m.prev = sample
}
