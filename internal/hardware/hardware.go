// Package hardware reports host capacity for sizing the worker pools.
package hardware

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// maxDefaultWorkers caps the default concurrency budget.
const maxDefaultWorkers = 16

// LogicalCores returns the number of logical CPUs, falling back to the Go
// runtime's view when the host probe fails.
func LogicalCores() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// TotalMemory returns total physical memory in bytes, or 0 if unknown.
func TotalMemory() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.Total
}

// DefaultWorkers is the concurrency budget used when the session
// configuration does not set one.
func DefaultWorkers() int {
	n := LogicalCores()
	if n > maxDefaultWorkers {
		return maxDefaultWorkers
	}
	if n < 1 {
		return 1
	}
	return n
}
