package collector

import "context"

// Platform returns the identifier the collector dispatches on, runtime.GOOS
// unless overridden.
func (s *StatsCollector) Platform() string {
	return s.platform
}

// Uptime returns the seconds elapsed since boot.
func (s *StatsCollector) Uptime(ctx context.Context) (uint64, error) {
	return s.host.Uptime(ctx)
}
