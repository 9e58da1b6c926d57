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

package adb

import (
	"context"
	"fmt"
	"strings"
)

// Device state strings as reported by `adb devices`.
const (
	StateDevice       = "device"
	StateUnauthorized = "unauthorized"
	StateOffline      = "offline"
)

// Device is one entry from the `adb devices` listing.
type Device struct {
	Serial string
	State  string
}

// Devices enumerates attached devices.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.Run(ctx, "devices")
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return ParseDevices(out), nil
}

// ParseDevices parses `adb devices` output. The header line, daemon startup
// notices and blank lines are skipped; each remaining line is
// "<serial>\t<state>".
func ParseDevices(out string) []Device {
	var devices []Device

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		devices = append(devices, Device{Serial: parts[0], State: parts[1]})
	}

	return devices
}

// CheckReady verifies that exactly one usable device is attached and returns
// it. Unauthorized and offline devices are fatal conditions: monitoring
// cannot start against them.
func (c *Client) CheckReady(ctx context.Context) (Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return Device{}, err
	}

	if len(devices) == 0 {
		return Device{}, ErrNoDevice
	}

	dev := devices[0]
	if len(devices) > 1 {
		c.logger.Warn("Multiple devices attached, using first", "serial", dev.Serial, "count", len(devices))
	}

	switch dev.State {
	case StateDevice:
		return dev, nil
	case StateUnauthorized:
		return dev, ErrDeviceUnauthorized
	case StateOffline:
		return dev, ErrDeviceOffline
	default:
		return dev, fmt.Errorf("device %s in unexpected state %q", dev.Serial, dev.State)
	}
}
