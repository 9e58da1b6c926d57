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
	"strings"

	"github.com/spf13/cobra"

	"droidwatt/internal/adb"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List attached devices and their states",
	Long: `List devices attached via adb together with their connection state.
Monitoring requires exactly one device in the "device" state; unauthorized
devices need the USB debugging prompt accepted on the device itself.

Examples:
  # Show attached devices
  droidwatt list-devices`,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	logger := InitLogger(logLevel, logFile)

	client, err := adb.New(adbPath, logger)
	if err != nil {
		return err
	}

	devices, err := client.Devices(context.Background())
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No devices attached.")
		return nil
	}

	fmt.Println("\nAttached Devices:")
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("%-28s %s\n", "SERIAL", "STATE")
	fmt.Println(strings.Repeat("-", 48))
	for _, d := range devices {
		fmt.Printf("%-28s %s\n", d.Serial, d.State)
	}
	fmt.Println(strings.Repeat("=", 48))

	fmt.Println("\nNotes:")
	fmt.Println("  - \"unauthorized\": accept the USB debugging prompt on the device")
	fmt.Println("  - \"offline\": replug the cable or restart the adb server")
	fmt.Println()

	return nil
}
