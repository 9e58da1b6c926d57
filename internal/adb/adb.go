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

// Package adb wraps the Android Debug Bridge command-line tool. It is the
// only way this program talks to the attached device: sysfs pseudo-files and
// diagnostic dumps are read through `adb shell` passthrough.
package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Fatal conditions detected before the monitoring loop starts.
var (
	ErrADBNotFound        = errors.New("adb executable not found")
	ErrNoDevice           = errors.New("no device attached")
	ErrDeviceUnauthorized = errors.New("device is unauthorized (accept the debugging prompt on the device)")
	ErrDeviceOffline      = errors.New("device is offline")
)

// ExitError reports a command that ran but exited non-zero. Callers decide
// whether that is a failure: a shell pipeline ending in a no-match grep exits
// 1 with empty output, which some readers treat as an expected empty result.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("adb %s: exit status %d: %s", strings.Join(e.Args, " "), e.Code, e.Stderr)
	}
	return fmt.Sprintf("adb %s: exit status %d", strings.Join(e.Args, " "), e.Code)
}

// Client invokes a resolved adb executable.
type Client struct {
	path   string
	logger *slog.Logger
}

// New resolves the adb executable and returns a client for it. The
// configured path is tried first; when it does not resolve, a single
// fallback lookup on the system PATH is attempted before giving up with
// ErrADBNotFound.
func New(path string, logger *slog.Logger) (*Client, error) {
	if path != "" {
		if resolved, err := exec.LookPath(path); err == nil {
			return &Client{path: resolved, logger: logger}, nil
		}
		logger.Warn("Configured adb path not found, searching PATH", "path", path)
	}

	resolved, err := exec.LookPath("adb")
	if err != nil {
		return nil, ErrADBNotFound
	}
	logger.Info("Using adb from PATH", "path", resolved)

	return &Client{path: resolved, logger: logger}, nil
}

// Path returns the resolved executable path.
func (c *Client) Path() string {
	return c.path
}

// Run executes adb with the given arguments and returns trimmed stdout.
// Success with empty output returns ("", nil). A non-zero exit returns the
// captured output alongside an *ExitError carrying the code and stderr.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{
				Args:   args,
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return out, fmt.Errorf("run adb %s: %w", strings.Join(args, " "), err)
	}

	return out, nil
}

// Shell runs a shell command on the device and returns trimmed stdout.
func (c *Client) Shell(ctx context.Context, command string) (string, error) {
	return c.Run(ctx, "shell", command)
}

// SerialNo returns the serial number of the attached device.
func (c *Client) SerialNo(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "get-serialno")
	if err != nil {
		return "", fmt.Errorf("get serial number: %w", err)
	}
	return out, nil
}

// GetProp reads an Android system property, e.g. "ro.product.model".
func (c *Client) GetProp(ctx context.Context, key string) (string, error) {
	out, err := c.Shell(ctx, "getprop "+key)
	if err != nil {
		return "", fmt.Errorf("getprop %s: %w", key, err)
	}
	return out, nil
}
