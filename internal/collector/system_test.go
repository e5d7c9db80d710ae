package collector

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"go.uber.org/zap"

	"github.com/prabalesh/hostprobe/internal/command"
)

func TestPlatformDefaultsToGOOS(t *testing.T) {
	c := NewStatsCollector(zap.NewNop(), command.NewExecRunner(zap.NewNop(), 1))
	if got := c.Platform(); got != runtime.GOOS {
		t.Errorf("Platform() = %q, want %q", got, runtime.GOOS)
	}

	if got := newTestCollector("darwin", nil).Platform(); got != "darwin" {
		t.Errorf("Platform() = %q, want darwin", got)
	}
}

func TestUptime(t *testing.T) {
	c := newTestCollector("linux", nil, WithHostInfo(fakeHost{uptime: 86400}))
	got, err := c.Uptime(context.Background())
	if err != nil || got != 86400 {
		t.Errorf("Uptime() = %d, %v; want 86400", got, err)
	}

	boom := errors.New("no boot time")
	c = newTestCollector("linux", nil, WithHostInfo(fakeHost{err: boom}))
	if _, err := c.Uptime(context.Background()); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
