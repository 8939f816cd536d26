package platform

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// LoadSample is one observation of host utilization
type LoadSample struct {
	CPUPercent float64
	MemPercent float64
}

// Monitor samples host CPU and memory utilization. The zero value is ready
// to use.
type Monitor struct{}

// Sample returns instantaneous CPU and memory utilization percentages.
// CPU utilization is computed against the previous call, so the first
// sample of a process may read as zero; callers on a fixed cadence get
// meaningful values from the second tick on.
func (Monitor) Sample() (LoadSample, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return LoadSample{}, fmt.Errorf("sample cpu: %w", err)
	}
	if len(percents) == 0 {
		return LoadSample{}, fmt.Errorf("sample cpu: no data")
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return LoadSample{}, fmt.Errorf("sample memory: %w", err)
	}

	return LoadSample{
		CPUPercent: percents[0],
		MemPercent: vm.UsedPercent,
	}, nil
}

// Resources returns the logical CPU count and available memory in bytes,
// the inputs of the initial worker-count computation.
func (Monitor) Resources() (int, uint64, error) {
	count, err := cpu.Counts(true)
	if err != nil {
		return 0, 0, fmt.Errorf("count cpus: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("read memory: %w", err)
	}

	return count, vm.Available, nil
}
