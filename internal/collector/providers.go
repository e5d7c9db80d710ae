package collector

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/prabalesh/hostprobe/internal/models"
)

type gopsutilTicks struct{}

func (gopsutilTicks) Snapshot(ctx context.Context) (models.TickSnapshot, error) {
	times, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return models.TickSnapshot{}, err
	}
	return sumTimes(times), nil
}

// sumTimes adds up user, nice, system, idle and irq time over every core.
// gopsutil reports seconds; counters are kept in milliseconds.
func sumTimes(times []cpu.TimesStat) models.TickSnapshot {
	var idle, total float64
	for _, t := range times {
		idle += t.Idle
		total += t.User + t.Nice + t.System + t.Idle + t.Irq
	}
	return models.TickSnapshot{
		Idle:  uint64(idle * 1000),
		Total: uint64(total * 1000),
	}
}

type gopsutilProcesses struct{}

func (gopsutilProcesses) Processes(ctx context.Context) ([]RawProcess, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	raw := make([]RawProcess, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			if gone(ctx, p) {
				continue
			}
			return nil, err
		}
		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			if gone(ctx, p) {
				continue
			}
			return nil, err
		}
		memPercent, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			if gone(ctx, p) {
				continue
			}
			return nil, err
		}

		raw = append(raw, RawProcess{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: cpuPercent,
			MemPercent: memPercent,
		})
	}
	return raw, nil
}

// gone reports whether p exited after enumeration started.
func gone(ctx context.Context, p *process.Process) bool {
	running, err := p.IsRunningWithContext(ctx)
	if err != nil {
		return errors.Is(err, process.ErrorProcessNotRunning)
	}
	return !running
}

type gopsutilHost struct{}

func (gopsutilHost) Uptime(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}
