// Package sysinfo provides the best-effort host resource snapshot attached to
// incidents. Every probe is diagnostic only: a host that cannot be measured
// yields Available=false, never a failed decision.
package sysinfo

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/scanops/triage/internal/core/domain"
)

// Prober reads host resource usage. The zero value is ready to use.
type Prober struct {
	// DiskPath is the mount point sampled for disk usage. Empty means "/".
	DiskPath string
}

// Snapshot samples CPU, memory, disk, load average, and process count.
// Partial data is fine: Available is true when at least one core measurement
// (CPU or memory) succeeded; individual missing fields stay zero.
func (p *Prober) Snapshot() domain.ResourceSnapshot {
	var snap domain.ResourceSnapshot

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
		snap.Available = true
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryPercent = vm.UsedPercent
		snap.Available = true
	}

	path := p.DiskPath
	if path == "" {
		path = "/"
	}
	if du, err := disk.Usage(path); err == nil {
		snap.DiskPercent = du.UsedPercent
	}
	if avg, err := load.Avg(); err == nil {
		snap.LoadAverage = avg.Load1
	}
	if pids, err := process.Pids(); err == nil {
		snap.ActiveProcesses = len(pids)
	}

	return snap
}
