//go:build arm64

package main

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// printGoRuntimeFeatures cross-checks our detection against the
// feature booleans the Go runtime derived from the same kernel
// sources.
func printGoRuntimeFeatures() {
	fmt.Println()
	fmt.Println("golang.org/x/sys/cpu.ARM64 cross-check:")
	fmt.Printf("  HasAES:      %v\n", cpu.ARM64.HasAES)
	fmt.Printf("  HasSHA2:     %v\n", cpu.ARM64.HasSHA2)
	fmt.Printf("  HasSHA3:     %v\n", cpu.ARM64.HasSHA3)
	fmt.Printf("  HasCRC32:    %v\n", cpu.ARM64.HasCRC32)
	fmt.Printf("  HasATOMICS:  %v\n", cpu.ARM64.HasATOMICS)
	fmt.Printf("  HasFPHP:     %v\n", cpu.ARM64.HasFPHP)
	fmt.Printf("  HasASIMDRDM: %v\n", cpu.ARM64.HasASIMDRDM)
	fmt.Printf("  HasASIMDDP:  %v\n", cpu.ARM64.HasASIMDDP)
	fmt.Printf("  HasASIMDFHM: %v\n", cpu.ARM64.HasASIMDFHM)
	fmt.Printf("  HasJSCVT:    %v\n", cpu.ARM64.HasJSCVT)
	fmt.Printf("  HasFCMA:     %v\n", cpu.ARM64.HasFCMA)
	fmt.Printf("  HasLRCPC:    %v\n", cpu.ARM64.HasLRCPC)
	fmt.Printf("  HasDCPOP:    %v\n", cpu.ARM64.HasDCPOP)
	fmt.Printf("  HasSVE:      %v\n", cpu.ARM64.HasSVE)
}
