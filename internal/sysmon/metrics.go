package sysmon

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Metrics is a point-in-time host sample for the status page widgets.
type Metrics struct {
	CPUPercent float64 `json:"cpu_percent"`
	RAMPercent float64 `json:"ram_percent"`
	RAMUsedGB  float64 `json:"ram_used_gb"`
	RAMTotalGB float64 `json:"ram_total_gb"`
}

const sampleInterval = 100 * time.Millisecond

// Sample reads current CPU and memory usage. It blocks for the short CPU
// sampling window.
func Sample(ctx context.Context) (*Metrics, error) {
	percents, err := cpu.PercentWithContext(ctx, sampleInterval, false)
	if err != nil {
		return nil, fmt.Errorf("sample cpu: %w", err)
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("sample memory: %w", err)
	}

	const gb = float64(1 << 30)
	return &Metrics{
		CPUPercent: round(cpuPercent, 1),
		RAMPercent: round(vm.UsedPercent, 1),
		RAMUsedGB:  round(float64(vm.Used)/gb, 2),
		RAMTotalGB: round(float64(vm.Total)/gb, 2),
	}, nil
}

func round(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
