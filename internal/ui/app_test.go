package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prabalesh/hostprobe/internal/collector"
	"github.com/prabalesh/hostprobe/internal/models"
)

type fakeSource struct {
	report models.Report
	err    error
	specs  []models.SortSpec
}

func (f *fakeSource) Report(ctx context.Context, spec *models.SortSpec) (models.Report, error) {
	f.specs = append(f.specs, *spec)
	return f.report, f.err
}

func sampleReport() models.Report {
	return models.Report{
		Platform:    "linux",
		Uptime:      3600,
		CPULoad:     42,
		MemoryUsage: 61,
		Processes: []models.Process{
			{PID: 1, Name: "init", CPUPercent: 0.1, MemPercent: 0.2},
			{PID: 200, Name: "postgres", CPUPercent: 35, MemPercent: 12},
			{PID: 30, Name: "nginx", CPUPercent: 5, MemPercent: 1},
		},
		Services: []models.Service{
			{Name: "nginx", Running: true},
			{Name: "cron", Running: false},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedApp(t *testing.T, source *fakeSource) *App {
	t.Helper()

	app := NewApp(source)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	app.Update(cmd())
	return app
}

func TestAppLoadsReportOnInit(t *testing.T) {
	source := &fakeSource{report: sampleReport()}
	app := loadedApp(t, source)

	if app.loading {
		t.Error("still loading after report arrived")
	}
	if len(source.specs) != 1 || source.specs[0].Field != models.SortByCPU {
		t.Errorf("report requested with %+v, want one cpu sorted request", source.specs)
	}

	view := app.View()
	for _, want := range []string{"HostProbe", "System Overview", "42%", "61%", "1h0m0s", "1 running of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("overview missing %q", want)
		}
	}
}

func TestAppRefreshOnlyOnRequest(t *testing.T) {
	source := &fakeSource{report: sampleReport()}
	app := loadedApp(t, source)

	if _, cmd := app.Update(key("j")); cmd != nil {
		t.Error("navigation key scheduled a query")
	}

	_, cmd := app.Update(key("r"))
	if cmd == nil {
		t.Fatal("r did not schedule a refresh")
	}
	if !strings.Contains(app.View(), "Sampling host") {
		t.Error("status line does not show the pending refresh")
	}
	if _, again := app.Update(key("r")); again != nil {
		t.Error("second r while loading scheduled another refresh")
	}

	app.Update(cmd())
	if len(source.specs) != 2 {
		t.Errorf("queries = %d, want 2", len(source.specs))
	}
}

func TestAppProcessSorting(t *testing.T) {
	source := &fakeSource{report: sampleReport()}
	app := loadedApp(t, source)

	app.Update(key("l"))
	if app.activeTab != tabProcesses {
		t.Fatalf("activeTab = %d, want processes", app.activeTab)
	}

	app.Update(key("p"))
	if app.sort != (models.SortSpec{Field: models.SortByPID, Order: models.Ascending}) {
		t.Errorf("sort = %v, want pid asc", app.sort)
	}
	if got := app.report.Processes[0].PID; got != 1 {
		t.Errorf("first pid = %d, want 1", got)
	}

	app.Update(key("o"))
	if got := app.report.Processes[0].PID; got != 200 {
		t.Errorf("first pid after flip = %d, want 200", got)
	}

	view := app.View()
	if !strings.Contains(view, "postgres") || !strings.Contains(view, "Sorted by pid desc") {
		t.Errorf("process view missing rows or sort label:\n%s", view)
	}
}

func TestAppServicesTab(t *testing.T) {
	report := sampleReport()
	app := loadedApp(t, &fakeSource{report: report})
	app.Update(key("l"))
	app.Update(key("l"))

	view := app.View()
	if !strings.Contains(view, "nginx") || !strings.Contains(view, "stopped") {
		t.Errorf("services view missing entries:\n%s", view)
	}

	report.Platform = "darwin"
	report.Services = nil
	app = loadedApp(t, &fakeSource{report: report})
	app.Update(key("l"))
	app.Update(key("l"))
	if !strings.Contains(app.View(), "only available on linux") {
		t.Error("darwin services view does not explain the platform limit")
	}
}

func TestAppShowsFailures(t *testing.T) {
	report := sampleReport()
	report.Errors = map[string]string{collector.QueryMemory: "free: not found"}
	app := loadedApp(t, &fakeSource{report: report})

	if !strings.Contains(app.View(), "unavailable: free: not found") {
		t.Error("overview does not show the memory failure")
	}

	app = loadedApp(t, &fakeSource{err: context.Canceled})
	if !strings.Contains(app.View(), "Refresh failed") {
		t.Error("status line does not show the refresh failure")
	}
	if !errors.Is(app.err, context.Canceled) {
		t.Errorf("err = %v", app.err)
	}
}

func TestRenderProgressBarBounds(t *testing.T) {
	for _, pct := range []float64{-5, 0, 37.5, 100, 250} {
		bar := RenderProgressBar(pct, 8)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 8 {
			t.Errorf("RenderProgressBar(%v, 8) has %d cells, want 8", pct, n)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"nginx", 10, "nginx"},
		{"systemd-journald", 10, "systemd..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
