package collector

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prabalesh/hostprobe/internal/models"
)

// Query names used as keys in models.Report.Errors.
const (
	QueryUptime    = "uptime"
	QueryCPU       = "cpu"
	QueryMemory    = "memory"
	QueryProcesses = "processes"
	QueryServices  = "services"
)

// Report runs every query concurrently. A failing query is recorded in the
// report and does not abort the others; only cancellation of ctx is returned
// as an error. Services are skipped, not reported as failed, off linux.
func (s *StatsCollector) Report(ctx context.Context, spec *models.SortSpec) (models.Report, error) {
	report := models.Report{Platform: s.Platform()}

	var mu sync.Mutex
	record := func(query string, err error) {
		if err == nil {
			return
		}
		s.log.Warn("query failed", zap.String("query", query), zap.Error(err))
		mu.Lock()
		defer mu.Unlock()
		if report.Errors == nil {
			report.Errors = make(map[string]string)
		}
		report.Errors[query] = err.Error()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		uptime, err := s.Uptime(gctx)
		report.Uptime = uptime
		record(QueryUptime, err)
		return nil
	})
	g.Go(func() error {
		load, err := s.CPULoad(gctx)
		report.CPULoad = load
		record(QueryCPU, err)
		return nil
	})
	g.Go(func() error {
		usage, err := s.MemoryUsage(gctx)
		report.MemoryUsage = usage
		record(QueryMemory, err)
		return nil
	})
	g.Go(func() error {
		procs, err := s.CurrentProcesses(gctx, spec)
		report.Processes = procs
		record(QueryProcesses, err)
		return nil
	})
	g.Go(func() error {
		services, err := s.Services(gctx)
		if errors.Is(err, ErrUnsupportedPlatform) {
			return nil
		}
		report.Services = services
		record(QueryServices, err)
		return nil
	})

	g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}
