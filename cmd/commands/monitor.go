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

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"

	"droidwatt/internal/adb"
	"droidwatt/internal/collector"
	"droidwatt/internal/config"
	"droidwatt/internal/exporter"
	"droidwatt/internal/presenter"
	"droidwatt/pkg/metrics"
	"droidwatt/pkg/version"
)

var (
	// Monitor command specific flags
	interval      time.Duration
	enableCSV     bool
	enableDeltas  bool
	enableThermal bool
	enableCPU     bool
	enableMemory  bool
	columns       string
	outputDir     string
	noPrompt      bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Start polling the attached device",
	Long: `Poll the attached device's battery electrical state and, when enabled, its
thermal sensors, CPU load and memory usage. Readings are rendered as a
fixed-width table on stdout and appended to a per-run CSV file.

Examples:
  # Battery only, one sample per second
  droidwatt monitor

  # Everything, two samples per second, no interactive prompt
  droidwatt monitor --thermal --cpu --memory --interval 500ms --no-prompt`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval,
		"Polling interval (e.g. 500ms, 1s, 2.5s)")
	monitorCmd.Flags().BoolVar(&enableCSV, "csv", true,
		"Append every collected field to a CSV file")
	monitorCmd.Flags().BoolVar(&enableDeltas, "deltas", false,
		"Add tick-over-tick delta columns for current, average current, voltage and power")
	monitorCmd.Flags().BoolVar(&enableThermal, "thermal", false,
		"Read thermal sensors from the thermalservice dump")
	monitorCmd.Flags().BoolVar(&enableCPU, "cpu", false,
		"Read CPU usage from /proc/stat on the device")
	monitorCmd.Flags().BoolVar(&enableMemory, "memory", false,
		"Read memory usage from /proc/meminfo on the device")
	monitorCmd.Flags().StringVar(&columns, "columns", config.DefaultColumns,
		"Default column-selection expression for the display prompt (e.g. \"1-4,7\" or \"all\")")
	monitorCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".",
		"Directory for the CSV output file")
	monitorCmd.Flags().BoolVar(&noPrompt, "no-prompt", false,
		"Accept the --columns expression without asking")
}

// buildConfig creates a Config object from parsed flags.
func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		Interval:      interval,
		EnableCSV:     enableCSV,
		EnableDeltas:  enableDeltas,
		EnableThermal: enableThermal,
		EnableCPU:     enableCPU,
		EnableMemory:  enableMemory,
		ADBPath:       adbPath,  // Access global var from root.go
		Columns:       columns,
		OutputDir:     outputDir,
		NoPrompt:      noPrompt,
		LogLevel:      logLevel, // Access global var from root.go
		LogFile:       logFile,  // Access global var from root.go
		Timezone:      timezone, // Access global var from root.go
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runMonitor is the main monitoring entry point.
func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile).With("run_id", uuid.New().String())

	logger.Info("Starting DroidWatt", "version", version.Info())
	logger.Info("Configuration loaded", "config", cfg.String())
	logHostEnvironment(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Resolve the device bridge; nothing works without it.
	client, err := adb.New(cfg.ADBPath, logger)
	if err != nil {
		return err
	}

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, initiating shutdown", "signal", sig)
		cancel()
	}()

	// Device readiness gate: unauthorized/offline/absent devices are fatal
	// before the loop starts.
	device, err := client.CheckReady(ctx)
	if err != nil {
		return err
	}
	logger.Info("Device ready", "serial", device.Serial)

	model := deviceProperty(logger, "model", func() (string, error) {
		return client.GetProp(ctx, "ro.product.model")
	})
	serial := deviceProperty(logger, "serial", func() (string, error) {
		return client.SerialNo(ctx)
	})

	// Discover the thermal sensor set once so the full column table is
	// known before the header is written; sensors missing on later ticks
	// render as N/A.
	var sensorNames []string
	if cfg.EnableThermal {
		names, _ := collector.NewThermalCollector(client, logger).Collect(ctx)
		if len(names) == 0 {
			logger.Warn("No thermal sensors reported by the device")
		}
		sensorNames = names
	}

	fields := metrics.Fields(metrics.FieldOptions{
		Deltas:  cfg.EnableDeltas,
		CPU:     cfg.EnableCPU,
		Memory:  cfg.EnableMemory,
		Sensors: sensorNames,
	})

	visible, err := selectColumns(cfg, fields)
	if err != nil {
		return err
	}

	p := presenter.New(os.Stdout, fields, visible, loc)
	sinks := []collector.Sink{p}

	if cfg.EnableCSV {
		path := filepath.Join(cfg.OutputDir, exporter.Filename(model, serial, time.Now()))
		csvLog, err := exporter.NewCSVLogger(path, fields, loc, logger)
		if err != nil {
			// Monitoring continues without the CSV record.
			logger.Warn("CSV logging disabled for this run", "error", err)
		} else {
			defer func() {
				if err := csvLog.Close(); err != nil {
					logger.Error("Failed to close CSV log", "error", err)
				}
			}()
			logger.Info("Logging to CSV", "path", path)
			sinks = append(sinks, csvLog)
		}
	}

	printBanner(cfg, model, device.Serial)
	p.WriteHeader()

	mgr := collector.NewManager(cfg, client, sinks, logger)
	if err := mgr.Run(ctx); err != nil {
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}

// selectColumns resolves the display column set, interactively unless
// --no-prompt is set.
func selectColumns(cfg *config.Config, fields []metrics.FieldSpec) ([]int, error) {
	names := metrics.FieldNames(fields)
	if cfg.NoPrompt {
		return presenter.ParseColumnSelection(cfg.Columns, len(names))
	}
	return presenter.PromptColumns(os.Stdin, os.Stdout, names, cfg.Columns)
}

// printBanner writes the run summary above the table.
func printBanner(cfg *config.Config, model, serial string) {
	fmt.Printf("\nDroidWatt - device power and telemetry monitor\n")
	fmt.Printf("Device:           %s (%s)\n", model, serial)
	fmt.Printf("Polling Interval: %v\n", cfg.Interval)
	fmt.Printf("Logging to CSV:   %s\n", enabledString(cfg.EnableCSV))
	fmt.Printf("Delta Columns:    %s\n", enabledString(cfg.EnableDeltas))
	fmt.Printf("Thermal Sensors:  %s\n", enabledString(cfg.EnableThermal))
	fmt.Printf("CPU Monitoring:   %s\n", enabledString(cfg.EnableCPU))
	fmt.Printf("Memory Usage:     %s\n", enabledString(cfg.EnableMemory))
	fmt.Printf("Press Ctrl+C to stop\n")
}

func enabledString(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

// deviceProperty fetches a device property, falling back to "unknown" with a
// warning so a flaky getprop never blocks the run.
func deviceProperty(logger *slog.Logger, name string, fetch func() (string, error)) string {
	value, err := fetch()
	if err != nil || value == "" {
		logger.Warn("Failed to read device property", "property", name, "error", err)
		return "unknown"
	}
	return value
}

// logHostEnvironment records the workstation the run happened on alongside
// the log, useful when comparing captures taken on different hosts.
func logHostEnvironment(logger *slog.Logger) {
	info, err := host.Info()
	if err != nil {
		logger.Debug("Host info unavailable", "error", err)
		return
	}
	logger.Info("Host environment",
		"os", info.OS,
		"platform", info.Platform,
		"platform_version", info.PlatformVersion,
		"kernel", info.KernelVersion,
	)
}
