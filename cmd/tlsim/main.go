// Package main provides the tlsim command line interface.
// tlsim is a cycle-accurate model of a TL-UL to SRAM bus adapter.
package main

func main() {
	Execute()
}
