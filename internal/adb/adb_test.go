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
	"reflect"
	"strings"
	"testing"
)

func TestParseDevices(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Device
	}{
		{
			name: "Single ready device",
			in:   "List of devices attached\n9A2b41\tdevice\n",
			want: []Device{{Serial: "9A2b41", State: "device"}},
		},
		{
			name: "Daemon startup noise",
			in: "* daemon not running; starting now at tcp:5037\n" +
				"* daemon started successfully\n" +
				"List of devices attached\n" +
				"emulator-5554\tdevice\n",
			want: []Device{{Serial: "emulator-5554", State: "device"}},
		},
		{
			name: "Mixed states",
			in: "List of devices attached\n" +
				"AAAA\tdevice\n" +
				"BBBB\tunauthorized\n" +
				"CCCC\toffline\n",
			want: []Device{
				{Serial: "AAAA", State: "device"},
				{Serial: "BBBB", State: "unauthorized"},
				{Serial: "CCCC", State: "offline"},
			},
		},
		{
			name: "No devices",
			in:   "List of devices attached\n\n",
			want: nil,
		},
		{
			name: "Empty output",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDevices(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDevices() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	withStderr := &ExitError{
		Args:   []string{"shell", "cat /proc/stat"},
		Code:   1,
		Stderr: "error: device offline",
	}
	if msg := withStderr.Error(); !strings.Contains(msg, "exit status 1") || !strings.Contains(msg, "device offline") {
		t.Errorf("Error() = %q, want exit code and stderr", msg)
	}

	bare := &ExitError{Args: []string{"get-serialno"}, Code: 1}
	if msg := bare.Error(); msg != "adb get-serialno: exit status 1" {
		t.Errorf("Error() = %q", msg)
	}
}
