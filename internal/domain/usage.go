package domain

import (
	"fmt"
	"strings"
	"time"
)

const TopProcessCount = 5

// CPUTimes holds the first seven cumulative counters of the aggregate "cpu"
// line of /proc/stat, in kernel order.
type CPUTimes [7]uint64

const (
	cpuUser = iota
	cpuNice
	cpuSystem
	cpuIdle
	cpuIOWait
	cpuIRQ
	cpuSoftIRQ
)

func (c CPUTimes) Idle() uint64 {
	return c[cpuIdle] + c[cpuIOWait]
}

func (c CPUTimes) NonIdle() uint64 {
	return c.sum() - c.Idle()
}

func (c CPUTimes) Total() uint64 {
	return c.Idle() + c.NonIdle()
}

func (c CPUTimes) sum() uint64 {
	var total uint64
	for _, v := range c {
		total += v
	}
	return total
}

// CPUUtilization returns the busy share of the ticks elapsed between two
// snapshots as a percentage.
func CPUUtilization(initial, final CPUTimes) (float64, error) {
	totalDelta := float64(final.Total()) - float64(initial.Total())
	idleDelta := float64(final.Idle()) - float64(initial.Idle())
	if totalDelta <= 0 {
		return 0, ErrMetricsUnavailable
	}

	return (totalDelta - idleDelta) / totalDelta * 100, nil
}

type MemoryUsage struct {
	Total     string
	Used      string
	Free      string
	Shared    string
	BuffCache string
	Available string
}

func (m MemoryUsage) Describe() string {
	return fmt.Sprintf("Total: %s\nUsed: %s\nFree: %s\nShared: %s\nBuff/Cache: %s\nAvailable: %s",
		m.Total, m.Used, m.Free, m.Shared, m.BuffCache, m.Available)
}

type DiskUsage struct {
	Size       string
	Used       string
	Avail      string
	UsePercent string
}

func (d DiskUsage) Describe() string {
	return fmt.Sprintf("Size: %s\nUsed: %s\nAvail: %s\nUse%%: %s", d.Size, d.Used, d.Avail, d.UsePercent)
}

type CPUUsage struct {
	Model              string
	Cores              int
	UtilizationPercent float64
}

func (c CPUUsage) Describe() string {
	return fmt.Sprintf("Type: %s\nCores: %d\nUsage: %.2f%%", c.Model, c.Cores, c.UtilizationPercent)
}

// ProcessSample is one row of a top-N process listing.
type ProcessSample struct {
	PID        int
	CPUPercent float64
	MemPercent float64
	Command    string
}

type ProcessUsage struct {
	PID        int
	CPUPercent float64
	MemPercent float64
	Command    string
}

func (p ProcessUsage) Describe(rank int) string {
	return fmt.Sprintf("%d. PID: %d | CPU: %.2f%% | MEM: %.2f%% | CMD: %s", rank, p.PID, p.CPUPercent, p.MemPercent, p.Command)
}

// Snapshot is the raw output of the inspection battery, split by what was
// captured before and after the sampling interval.
type Snapshot struct {
	CPUDescriptor string
	CPUCores      string
	InitialCPU    string
	InitialTop    string
	FinalMemory   string
	FinalDisk     string
	FinalTop      string
	FinalCPU      string
}

type UsageReport struct {
	Memory       MemoryUsage
	Disk         DiskUsage
	CPU          CPUUsage
	TopProcesses []ProcessUsage
	SampledAt    time.Time
}

func (r UsageReport) TopProcessesDescription() string {
	var b strings.Builder
	for i, p := range r.TopProcesses {
		b.WriteString(p.Describe(i + 1))
		b.WriteByte('\n')
	}
	return b.String()
}
