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

package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config represents application configuration. It is constructed once at
// startup from flags and passed read-only to every component.
type Config struct {
	Interval time.Duration // polling period, fractional seconds allowed

	// Feature toggles
	EnableCSV     bool // append every field to a CSV file
	EnableDeltas  bool // tick-over-tick delta columns for the electrical fields
	EnableThermal bool // thermalservice sensor readings
	EnableCPU     bool // /proc/stat usage percentages
	EnableMemory  bool // /proc/meminfo usage

	ADBPath   string // device bridge executable, falls back to PATH lookup
	Columns   string // default column-selection expression for the display prompt
	OutputDir string // directory for the CSV file
	NoPrompt  bool   // accept the Columns expression without asking

	// Logging
	LogLevel string // debug, info, warn, error
	LogFile  string // log file path (empty = stderr)

	// Timezone for timestamps
	Timezone string
}

// Default configuration values.
const (
	DefaultInterval = 1 * time.Second
	DefaultADBPath  = "adb"
	DefaultColumns  = "all"
	DefaultLogLevel = "info"

	MinInterval = 100 * time.Millisecond
	MaxInterval = 1 * time.Hour
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Interval < MinInterval {
		return fmt.Errorf("polling interval must be at least %v", MinInterval)
	}
	if c.Interval > MaxInterval {
		return fmt.Errorf("polling interval must not exceed %v", MaxInterval)
	}

	if c.Columns == "" {
		return errors.New("column selection expression cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %s (%w)", c.Timezone, err)
		}
	}

	if c.EnableCSV {
		if err := c.checkOutputDir(); err != nil {
			return fmt.Errorf("output directory check failed: %w", err)
		}
	}

	return nil
}

// Location resolves the configured timezone, defaulting to Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) checkOutputDir() error {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", dir)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Interval=%v, CSV=%t, Deltas=%t, Thermal=%t, CPU=%t, Memory=%t, Columns=%q}",
		c.Interval, c.EnableCSV, c.EnableDeltas, c.EnableThermal, c.EnableCPU, c.EnableMemory, c.Columns)
}
