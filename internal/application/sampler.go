package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

const (
	DefaultSampleInterval = time.Second

	cmdCPUModel = "lscpu"
	cmdCPUCores = "nproc"
	cmdCPUStat  = "grep '^cpu ' /proc/stat"
	cmdTop      = "ps -eo pid,%cpu,%mem,cmd --sort=-%cpu | head -n 6"
	cmdMemory   = "free -h"
	cmdDisk     = "df -h /"
)

type sampleStep struct {
	id      string
	command string
	dest    func(*domain.Snapshot) *string
}

var (
	stepsBeforeWait = []sampleStep{
		{id: "cpu_model", command: cmdCPUModel, dest: func(s *domain.Snapshot) *string { return &s.CPUDescriptor }},
		{id: "cpu_cores", command: cmdCPUCores, dest: func(s *domain.Snapshot) *string { return &s.CPUCores }},
		{id: "initial_cpu", command: cmdCPUStat, dest: func(s *domain.Snapshot) *string { return &s.InitialCPU }},
		{id: "initial_top", command: cmdTop, dest: func(s *domain.Snapshot) *string { return &s.InitialTop }},
	}
	stepsAfterWait = []sampleStep{
		{id: "final_memory", command: cmdMemory, dest: func(s *domain.Snapshot) *string { return &s.FinalMemory }},
		{id: "final_disk", command: cmdDisk, dest: func(s *domain.Snapshot) *string { return &s.FinalDisk }},
		{id: "final_top", command: cmdTop, dest: func(s *domain.Snapshot) *string { return &s.FinalTop }},
		{id: "final_cpu", command: cmdCPUStat, dest: func(s *domain.Snapshot) *string { return &s.FinalCPU }},
	}
)

type SamplerOption func(*Sampler)

func WithSampleInterval(interval time.Duration) SamplerOption {
	return func(s *Sampler) {
		if interval >= 0 {
			s.interval = interval
		}
	}
}

func WithMatchStrategy(strategy domain.ProcessMatchStrategy) SamplerOption {
	return func(s *Sampler) {
		if strategy != "" {
			s.match = strategy
		}
	}
}

// Sampler takes two snapshots of a host one interval apart and reduces them
// into a UsageReport.
type Sampler struct {
	clock    ports.Clock
	interval time.Duration
	match    domain.ProcessMatchStrategy
	wait     func(ctx context.Context, d time.Duration) error
}

func NewSampler(clock ports.Clock, opts ...SamplerOption) *Sampler {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Sampler{
		clock:    clock,
		interval: DefaultSampleInterval,
		match:    domain.MatchByRank,
		wait:     sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Sampler) Sample(ctx context.Context, executor ports.CommandExecutor) (domain.UsageReport, error) {
	snapshot, err := s.Collect(ctx, executor)
	if err != nil {
		return domain.UsageReport{}, err
	}

	report, err := Reduce(snapshot, s.match)
	if err != nil {
		return domain.UsageReport{}, err
	}
	report.SampledAt = s.clock.Now()

	return report, nil
}

// Collect runs the command battery. No partial snapshot is returned.
func (s *Sampler) Collect(ctx context.Context, executor ports.CommandExecutor) (domain.Snapshot, error) {
	var snapshot domain.Snapshot

	if err := runSteps(ctx, executor, &snapshot, stepsBeforeWait); err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.wait(ctx, s.interval); err != nil {
		return domain.Snapshot{}, err
	}
	if err := runSteps(ctx, executor, &snapshot, stepsAfterWait); err != nil {
		return domain.Snapshot{}, err
	}

	return snapshot, nil
}

func runSteps(ctx context.Context, executor ports.CommandExecutor, snapshot *domain.Snapshot, steps []sampleStep) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := executor.Run(ctx, step.command)
		if err != nil {
			return &domain.CommandExecutionError{Step: step.id, Command: step.command, ExitStatus: -1, Err: err}
		}
		if result.ExitStatus != 0 {
			return &domain.CommandExecutionError{Step: step.id, Command: step.command, ExitStatus: result.ExitStatus}
		}
		*step.dest(snapshot) = result.Stdout
	}

	return nil
}

// Reduce turns a snapshot into a report. SampledAt is left zero.
func Reduce(snapshot domain.Snapshot, match domain.ProcessMatchStrategy) (domain.UsageReport, error) {
	memory, err := ParseMemory(snapshot.FinalMemory)
	if err != nil {
		return domain.UsageReport{}, err
	}
	disk, err := ParseDisk(snapshot.FinalDisk)
	if err != nil {
		return domain.UsageReport{}, err
	}
	model, err := ParseCPUModel(snapshot.CPUDescriptor)
	if err != nil {
		return domain.UsageReport{}, err
	}
	cores, err := ParseCPUCores(snapshot.CPUCores)
	if err != nil {
		return domain.UsageReport{}, err
	}

	initialCPU, err := ParseCPUTimes(snapshot.InitialCPU)
	if err != nil {
		return domain.UsageReport{}, err
	}
	finalCPU, err := ParseCPUTimes(snapshot.FinalCPU)
	if err != nil {
		return domain.UsageReport{}, err
	}
	utilization, err := domain.CPUUtilization(initialCPU, finalCPU)
	if err != nil {
		return domain.UsageReport{}, err
	}

	initialTop, err := ParseProcesses(snapshot.InitialTop)
	if err != nil {
		return domain.UsageReport{}, fmt.Errorf("initial process listing: %w", err)
	}
	finalTop, err := ParseProcesses(snapshot.FinalTop)
	if err != nil {
		return domain.UsageReport{}, fmt.Errorf("final process listing: %w", err)
	}

	return domain.UsageReport{
		Memory:       memory,
		Disk:         disk,
		CPU:          domain.CPUUsage{Model: model, Cores: cores, UtilizationPercent: utilization},
		TopProcesses: domain.MergeProcessSamples(initialTop, finalTop, match, domain.TopProcessCount),
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
