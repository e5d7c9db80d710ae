package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/prabalesh/hostprobe/internal/models"
)

func TestReportCollectsEverything(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"free -m":              "total used free\n   2000  1000  1000\n",
		"service --status-all": statusAll,
	}}
	ticks := &fakeTicks{snapshots: []models.TickSnapshot{{Idle: 100, Total: 1000}, {Idle: 150, Total: 1500}}}
	c := newTestCollector("linux", runner,
		WithTickSource(ticks),
		WithHostInfo(fakeHost{uptime: 42}),
		WithProcessEnumerator(fakeProcesses{procs: rawProcesses}),
	)

	spec := models.SortSpec{Field: models.SortByPID, Order: models.Ascending}
	report, err := c.Report(context.Background(), &spec)
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}

	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
	if report.Platform != "linux" || report.Uptime != 42 {
		t.Errorf("platform/uptime = %q/%d", report.Platform, report.Uptime)
	}
	if report.CPULoad != 90 || report.MemoryUsage != 50 {
		t.Errorf("cpu/mem = %d/%d, want 90/50", report.CPULoad, report.MemoryUsage)
	}
	if len(report.Processes) != 4 || report.Processes[0].PID != 10 {
		t.Errorf("processes = %+v", report.Processes)
	}
	if len(report.Services) != 5 {
		t.Errorf("services = %+v", report.Services)
	}
}

func TestReportRecordsFailures(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{"free -m": errors.New("free: not found")}}
	c := newTestCollector("linux", runner, WithHostInfo(fakeHost{uptime: 7}))

	report, err := c.Report(context.Background(), nil)
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}

	if !report.Failed(QueryMemory) {
		t.Errorf("memory failure not recorded: %v", report.Errors)
	}
	if !report.Failed(QueryServices) {
		t.Errorf("services failure not recorded: %v", report.Errors)
	}
	if report.Failed(QueryUptime) || report.Uptime != 7 {
		t.Errorf("uptime should succeed, got %d errors=%v", report.Uptime, report.Errors)
	}
}

func TestReportSkipsServicesOffLinux(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"memory_pressure": memoryPressureOutput}}
	c := newTestCollector("darwin", runner)

	report, err := c.Report(context.Background(), nil)
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}
	if report.Failed(QueryServices) || report.Services != nil {
		t.Errorf("services on darwin = %+v, errors=%v", report.Services, report.Errors)
	}
	if report.MemoryUsage != 63 {
		t.Errorf("MemoryUsage = %d, want 63", report.MemoryUsage)
	}
}
