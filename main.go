// Package main provides the entry point for DRPSim.
// DRPSim is a cycle-accurate model of an MMCM dynamic-reconfiguration
// (DRP) controller and the clock generator it drives.
//
// For the full CLI, use: go run ./cmd/drpsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("DRPSim - MMCM Dynamic Reconfiguration Simulator")
	fmt.Println("")
	fmt.Println("Usage: drpsim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to profile configuration JSON file")
	fmt.Println("  -profile   Profile selector to apply")
	fmt.Println("  -freq      DRP clock frequency in MHz")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/drpsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/drpsim' instead.")
	}
}
