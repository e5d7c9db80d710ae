package collector

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/prabalesh/hostprobe/internal/models"
)

// CPULoad samples the tick counters twice, one sample interval apart, and
// returns the share of that interval the CPUs spent busy, 0 to 100.
func (s *StatsCollector) CPULoad(ctx context.Context) (int, error) {
	before, err := s.ticks.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	timer := time.NewTimer(s.sampleInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
	}

	after, err := s.ticks.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	if after.Total <= before.Total {
		s.log.Debug("no cpu tick progress between samples, reporting idle",
			zap.Uint64("before", before.Total), zap.Uint64("after", after.Total))
	}

	return LoadBetween(before, after), nil
}

// LoadBetween computes floor((1 - idleDelta/totalDelta) * 100). Without tick
// progress the load is 0.
func LoadBetween(before, after models.TickSnapshot) int {
	if after.Total <= before.Total {
		return 0
	}

	idle := float64(after.Idle) - float64(before.Idle)
	total := float64(after.Total - before.Total)

	load := int(math.Floor((1 - idle/total) * 100))
	return max(0, min(100, load))
}
