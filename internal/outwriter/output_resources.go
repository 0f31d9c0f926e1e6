package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/fatih/color"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Utilization bands for the resources line.
const (
	usageWarnPercent     = 70.0
	usageCriticalPercent = 90.0
)

// PrintSystemResources prints one host CPU/RAM line alongside the monitor
// report. Only the text format carries it; json and csv cycles stay
// machine-readable.
func PrintSystemResources(cfg *contract.Config) error {
	if cfg.Output != schema.TextOut {
		return nil
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		return fmt.Errorf("cannot read cpu usage: %w", err)
	}
	var cpuPct float64
	if len(percents) > 0 {
		cpuPct = percents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("cannot read memory usage: %w", err)
	}

	writeSystemResources(os.Stdout, cpuPct, vm.UsedPercent, vm.Used, vm.Total, cfg)
	return nil
}

// writeSystemResources renders the resources line with severity coloring.
func writeSystemResources(w io.Writer, cpuPct, memPct float64, memUsed, memTotal uint64, cfg *contract.Config) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "💻 "
	}
	fmt.Fprintf(w, "%sCPU: %s | RAM: %s (%s / %s)\n",
		prefix,
		usageColor(cpuPct).Sprintf("%.1f%%", cpuPct),
		usageColor(memPct).Sprintf("%.1f%%", memPct),
		formatByteSize(int64(memUsed)),
		formatByteSize(int64(memTotal)))
}

// usageColor maps a utilization percentage to its severity color.
func usageColor(pct float64) *color.Color {
	switch {
	case pct >= usageCriticalPercent:
		return contract.CriticalColor
	case pct >= usageWarnPercent:
		return contract.WarningColor
	default:
		return contract.ProcessedColor
	}
}
