// Package main provides the entry point for tlsim.
// tlsim is a cycle-accurate model of a TileLink-UL to SRAM bus adapter.
//
// For the full CLI, use: go run ./cmd/tlsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tlsim - TL-UL to SRAM bus adapter model")
	fmt.Println("")
	fmt.Println("Usage: tlsim <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run       Drive seeded random traffic through the adapter")
	fmt.Println("  config    Emit the default adapter configuration")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tlsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tlsim' instead.")
	}
}
