package tools

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// topProcessCount is how many processes the monitor reports.
const topProcessCount = 5

// ProcessInfo is one process in the top-CPU list.
type ProcessInfo struct {
	Name   string  `json:"name"`
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
}

// SystemInfo is a point-in-time snapshot of host health.
type SystemInfo struct {
	CPUPercent   float64       `json:"cpu_percent"`
	CPUCount     int           `json:"cpu_count"`
	MemPercent   float64       `json:"mem_percent"`
	MemUsedGB    float64       `json:"mem_used_gb"`
	MemTotalGB   float64       `json:"mem_total_gb"`
	DiskPercent  float64       `json:"disk_percent"`
	DiskFreeGB   float64       `json:"disk_free_gb"`
	DiskTotalGB  float64       `json:"disk_total_gb"`
	Platform     string        `json:"platform"`
	TopProcesses []ProcessInfo `json:"top_processes"`
}

// SystemMonitor samples CPU, memory, disk, and process stats.
type SystemMonitor struct {
	// sampleInterval controls how long the CPU percent sample takes.
	sampleInterval time.Duration
}

// NewSystemMonitor creates a monitor with a one second CPU sample window.
func NewSystemMonitor() *SystemMonitor {
	return &SystemMonitor{sampleInterval: time.Second}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func toGB(bytes uint64) float64 {
	return round1(float64(bytes) / (1 << 30))
}

// Snapshot collects the current system state.
func (m *SystemMonitor) Snapshot() (*SystemInfo, error) {
	percents, err := cpu.Percent(m.sampleInterval, false)
	if err != nil || len(percents) == 0 {
		return nil, fmt.Errorf("sysmon: cpu sample: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("sysmon: memory: %w", err)
	}

	du, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("sysmon: disk: %w", err)
	}

	count, _ := cpu.Counts(true)

	info := &SystemInfo{
		CPUPercent:  round1(percents[0]),
		CPUCount:    count,
		MemPercent:  round1(vm.UsedPercent),
		MemUsedGB:   toGB(vm.Used),
		MemTotalGB:  toGB(vm.Total),
		DiskPercent: round1(du.UsedPercent),
		DiskFreeGB:  toGB(du.Free),
		DiskTotalGB: toGB(du.Total),
		Platform:    runtime.GOOS,
	}
	info.TopProcesses = topProcesses()
	return info, nil
}

// topProcesses returns the heaviest CPU consumers. Per-process failures are
// skipped; a process can exit between listing and sampling.
func topProcesses() []ProcessInfo {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	var infos []ProcessInfo
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		cpuPct, _ := p.CPUPercent()
		memPct, _ := p.MemoryPercent()
		infos = append(infos, ProcessInfo{
			Name:   name,
			CPU:    round1(cpuPct),
			Memory: round1(float64(memPct)),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].CPU > infos[j].CPU })
	if len(infos) > topProcessCount {
		infos = infos[:topProcessCount]
	}
	return infos
}

// Summary renders a one-line health report.
func (info *SystemInfo) Summary() string {
	return fmt.Sprintf("💻 CPU: %.1f%% | RAM: %.1f/%.1fGB | Disk: %.1fGB free",
		info.CPUPercent, info.MemUsedGB, info.MemTotalGB, info.DiskFreeGB)
}

// Analyze explains current load in plain language, flagging hot CPU, high
// memory use, and low disk space.
func (info *SystemInfo) Analyze() string {
	var status []string

	switch {
	case info.CPUPercent > 80:
		status = append(status, fmt.Sprintf("CPU is high (%.1f%%)", info.CPUPercent))
		if len(info.TopProcesses) > 0 {
			top := info.TopProcesses[0]
			status = append(status, fmt.Sprintf("%s using %.1f%% CPU", top.Name, top.CPU))
		}
	case info.CPUPercent < 20:
		status = append(status, fmt.Sprintf("CPU is idle (%.1f%%)", info.CPUPercent))
	default:
		status = append(status, fmt.Sprintf("CPU at %.1f%%", info.CPUPercent))
	}

	if info.MemPercent > 80 {
		status = append(status, fmt.Sprintf("Memory high (%.1f%%)", info.MemPercent))
	} else {
		status = append(status, fmt.Sprintf("Memory at %.1f%%", info.MemPercent))
	}

	if info.DiskFreeGB < 10 {
		status = append(status, fmt.Sprintf("⚠️ Only %.1fGB free disk space", info.DiskFreeGB))
	}

	return strings.Join(status, " | ")
}
