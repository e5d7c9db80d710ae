package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/prabalesh/hostprobe/internal/models"
)

type fakeTicks struct {
	mu        sync.Mutex
	snapshots []models.TickSnapshot
	err       error
	calls     int
}

func (f *fakeTicks) Snapshot(ctx context.Context) (models.TickSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.TickSnapshot{}, f.err
	}
	snap := f.snapshots[min(f.calls, len(f.snapshots)-1)]
	f.calls++
	return snap, nil
}

type fakeProcesses struct {
	procs []RawProcess
	err   error
}

func (f fakeProcesses) Processes(ctx context.Context) ([]RawProcess, error) {
	return f.procs, f.err
}

type fakeHost struct {
	uptime uint64
	err    error
}

func (f fakeHost) Uptime(ctx context.Context) (uint64, error) {
	return f.uptime, f.err
}

// fakeRunner answers commands from a table keyed by the joined command line.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)

	if err, ok := f.errs[line]; ok {
		return "", err
	}
	if out, ok := f.outputs[line]; ok {
		return out, nil
	}
	return "", fmt.Errorf("unexpected command %q", line)
}

func newTestCollector(platform string, runner *fakeRunner, opts ...Option) *StatsCollector {
	if runner == nil {
		runner = &fakeRunner{}
	}
	opts = append([]Option{
		WithPlatform(platform),
		WithSampleInterval(time.Millisecond),
		WithTickSource(&fakeTicks{snapshots: []models.TickSnapshot{{}}}),
		WithProcessEnumerator(fakeProcesses{}),
		WithHostInfo(fakeHost{}),
	}, opts...)
	return NewStatsCollector(zap.NewNop(), runner, opts...)
}
