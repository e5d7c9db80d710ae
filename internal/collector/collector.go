// Package collector answers point-in-time questions about the host: CPU load,
// memory usage, uptime, the process table and service state.
package collector

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/prabalesh/hostprobe/internal/command"
	"github.com/prabalesh/hostprobe/internal/models"
)

// TickSource reports cumulative CPU time counters.
type TickSource interface {
	Snapshot(ctx context.Context) (models.TickSnapshot, error)
}

// ProcessEnumerator lists the processes alive at call time.
type ProcessEnumerator interface {
	Processes(ctx context.Context) ([]RawProcess, error)
}

// HostInfo reports host level facts that need no interpretation.
type HostInfo interface {
	Uptime(ctx context.Context) (uint64, error)
}

// RawProcess is one record as returned by a ProcessEnumerator.
type RawProcess struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float32
}

// StatsCollector holds no state between calls; every method queries the
// host afresh and is safe for concurrent use.
type StatsCollector struct {
	log            *zap.Logger
	platform       string
	sampleInterval time.Duration
	ticks          TickSource
	procs          ProcessEnumerator
	host           HostInfo
	runner         command.Runner
}

type Option func(*StatsCollector)

// WithPlatform overrides the platform identifier used to pick memory and
// service strategies. It defaults to runtime.GOOS.
func WithPlatform(platform string) Option {
	return func(s *StatsCollector) { s.platform = platform }
}

func WithSampleInterval(d time.Duration) Option {
	return func(s *StatsCollector) {
		if d > 0 {
			s.sampleInterval = d
		}
	}
}

func WithTickSource(t TickSource) Option {
	return func(s *StatsCollector) { s.ticks = t }
}

func WithProcessEnumerator(p ProcessEnumerator) Option {
	return func(s *StatsCollector) { s.procs = p }
}

func WithHostInfo(h HostInfo) Option {
	return func(s *StatsCollector) { s.host = h }
}

// NewStatsCollector wires the gopsutil backed providers by default; options
// replace any of them.
func NewStatsCollector(log *zap.Logger, runner command.Runner, opts ...Option) *StatsCollector {
	s := &StatsCollector{
		log:            log,
		platform:       runtime.GOOS,
		sampleInterval: time.Second,
		ticks:          gopsutilTicks{},
		procs:          gopsutilProcesses{},
		host:           gopsutilHost{},
		runner:         runner,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
