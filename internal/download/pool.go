package download

// Worker-pool policy constants
const (
	// MinWorkers and MaxWorkers bound the pool at all times
	MinWorkers = 4
	MaxWorkers = 32

	// WorkersPerCPU scales the initial pool with logical CPU count
	WorkersPerCPU = 4

	// LowMemoryThreshold halves the initial pool when available memory
	// falls below it
	LowMemoryThreshold = 4 * 1024 * 1024 * 1024

	// LowMemoryFloor is the minimum pool size after the low-memory halving
	LowMemoryFloor = 8

	// FallbackWorkers is used when system resources cannot be determined
	FallbackWorkers = 16

	// Retarget thresholds: shed workers above the high-water marks, grow
	// only when both cpu and memory sit below the low-water marks
	HighCPUPercent = 80
	HighMemPercent = 80
	LowCPUPercent  = 50
	LowMemPercent  = 60

	// Step sizes: shrink faster than grow to avoid oscillation
	ShrinkStep = 4
	GrowStep   = 2
)

// InitialWorkers computes the starting pool size from system resources:
// four workers per logical CPU, halved (but no lower than 8) when less than
// 4 GiB of memory is available, always capped at MaxWorkers.
func InitialWorkers(cpuCount int, availableBytes uint64) int {
	if cpuCount < 1 {
		return FallbackWorkers
	}

	workers := cpuCount * WorkersPerCPU
	if availableBytes < LowMemoryThreshold {
		workers = max(LowMemoryFloor, workers/2)
	}

	return min(MaxWorkers, workers)
}

// Retarget computes a new worker count from a load sample. The result is
// always within [MinWorkers, MaxWorkers]; between the thresholds the count
// is left unchanged. Callers evaluate this on a fixed cadence, never on raw
// instantaneous samples.
func Retarget(current int, cpuPercent, memPercent float64) int {
	switch {
	case cpuPercent > HighCPUPercent || memPercent > HighMemPercent:
		current -= ShrinkStep
	case cpuPercent < LowCPUPercent && memPercent < LowMemPercent:
		current += GrowStep
	}

	return min(MaxWorkers, max(MinWorkers, current))
}
