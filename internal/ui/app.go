package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prabalesh/hostprobe/internal/collector"
	"github.com/prabalesh/hostprobe/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Source produces the data shown on every tab.
type Source interface {
	Report(ctx context.Context, spec *models.SortSpec) (models.Report, error)
}

const (
	tabOverview = iota
	tabProcesses
	tabServices
)

type reportMsg struct {
	report models.Report
	err    error
	took   time.Duration
}

type App struct {
	source      Source
	report      models.Report
	err         error
	loading     bool
	loadedAt    time.Time
	took        time.Duration
	sort        models.SortSpec
	activeTab   int
	tabs        []string
	width       int
	height      int
	selectedRow int
	// Vertical scrolling state
	verticalScrollOffset int
	contentHeight        int
	cpuProgress          progress.Model
	memoryProgress       progress.Model
}

func NewApp(source Source) *App {
	return &App{
		source:         source,
		tabs:           []string{"Overview", "Processes", "Services"},
		sort:           models.SortSpec{Field: models.SortByCPU, Order: models.Descending},
		cpuProgress:    progress.New(progress.WithDefaultGradient()),
		memoryProgress: progress.New(progress.WithDefaultGradient()),
	}
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

// refresh queries the host once. Nothing is polled in the background; the
// user asks for new data with "r".
func (a *App) refresh() tea.Cmd {
	a.loading = true
	spec := a.sort
	return func() tea.Msg {
		start := time.Now()
		report, err := a.source.Report(context.Background(), &spec)
		return reportMsg{report: report, err: err, took: time.Since(start)}
	}
}

func (a *App) getContentAreaHeight() int {
	// title, tabs, status line, help and the blank lines between them
	reservedHeight := 10
	return max(1, a.height-reservedHeight)
}

func (a *App) getMaxScrollOffset() int {
	availableHeight := a.getContentAreaHeight()
	if a.contentHeight <= availableHeight {
		return 0
	}
	return a.contentHeight - availableHeight
}

func (a *App) clampVerticalScroll() {
	a.verticalScrollOffset = max(0, min(a.verticalScrollOffset, a.getMaxScrollOffset()))
}

// applyVerticalScroll cuts content to the visible window.
func (a *App) applyVerticalScroll(content string) string {
	lines := strings.Split(content, "\n")
	a.contentHeight = len(lines)

	a.clampVerticalScroll()

	availableHeight := a.getContentAreaHeight()
	if len(lines) <= availableHeight {
		return content
	}

	startLine := a.verticalScrollOffset
	endLine := min(startLine+availableHeight, len(lines))
	result := strings.Join(lines[startLine:endLine], "\n")

	if a.verticalScrollOffset > 0 {
		result = ScrollHintStyle.Render("▲ More content above") + "\n" + result
	}
	if a.verticalScrollOffset < a.getMaxScrollOffset() {
		result = result + "\n" + ScrollHintStyle.Render("▼ More content below")
	}

	return result
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		progressWidth := max(10, min(50, a.width-20))
		a.cpuProgress.Width = progressWidth
		a.memoryProgress.Width = progressWidth

		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "r":
			if !a.loading {
				return a, a.refresh()
			}
		case "left", "h":
			if a.activeTab > 0 {
				a.activeTab--
				a.verticalScrollOffset = 0
				a.selectedRow = 0
			}
		case "right", "l", "tab":
			if a.activeTab < len(a.tabs)-1 {
				a.activeTab++
				a.verticalScrollOffset = 0
				a.selectedRow = 0
			}
		case "c", "m", "p", "n":
			if a.activeTab == tabProcesses {
				a.setSortField(msg.String())
			}
		case "o":
			if a.activeTab == tabProcesses {
				a.sort = a.sort.Flip()
				collector.SortProcesses(a.report.Processes, a.sort)
			}
		case "up", "k":
			if a.activeTab == tabProcesses {
				if a.selectedRow > 0 {
					a.selectedRow--
				}
			} else if a.verticalScrollOffset > 0 {
				a.verticalScrollOffset--
			}
		case "down", "j":
			if a.activeTab == tabProcesses {
				if a.selectedRow < len(a.report.Processes)-1 {
					a.selectedRow++
				}
			} else {
				a.verticalScrollOffset++
				a.clampVerticalScroll()
			}
		case "pgup", "ctrl+u":
			scrollAmount := max(1, a.getContentAreaHeight()/2)
			a.verticalScrollOffset = max(0, a.verticalScrollOffset-scrollAmount)
		case "pgdown", "ctrl+d":
			scrollAmount := max(1, a.getContentAreaHeight()/2)
			a.verticalScrollOffset += scrollAmount
			a.clampVerticalScroll()
		case "home", "ctrl+home":
			a.verticalScrollOffset = 0
		case "end", "ctrl+end":
			a.verticalScrollOffset = a.getMaxScrollOffset()
		}

	case reportMsg:
		a.loading = false
		a.err = msg.err
		a.took = msg.took
		a.loadedAt = time.Now()
		if msg.err == nil {
			a.report = msg.report
			if a.selectedRow >= len(a.report.Processes) {
				a.selectedRow = max(0, len(a.report.Processes)-1)
			}
		}
	}

	return a, nil
}

// setSortField re-sorts the loaded table in place. Choosing the active
// field again flips the order.
func (a *App) setSortField(key string) {
	fields := map[string]models.SortField{
		"c": models.SortByCPU,
		"m": models.SortByMem,
		"p": models.SortByPID,
		"n": models.SortByName,
	}
	field := fields[key]

	if field == a.sort.Field {
		a.sort = a.sort.Flip()
	} else {
		a.sort = models.SortSpec{Field: field, Order: models.Descending}
		if field == models.SortByPID || field == models.SortByName {
			a.sort.Order = models.Ascending
		}
	}
	collector.SortProcesses(a.report.Processes, a.sort)
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("HostProbe")
	tabs := a.renderTabs()

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverview()
	case tabProcesses:
		content = a.renderProcesses()
	case tabServices:
		content = a.renderServices()
	}

	// the process table scrolls by selection instead
	if a.activeTab != tabProcesses {
		content = a.applyVerticalScroll(content)
	}

	help := HelpStyle.Render("←/→ h/l: tabs • ↑/↓ k/j: scroll • c/m/p/n: sort • o: order • r: refresh • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		content,
		"",
		a.renderStatus(),
		help,
	)
}

func (a *App) renderTabs() string {
	var tabElements []string
	for i, tab := range a.tabs {
		if i == a.activeTab {
			tabElements = append(tabElements, ActiveTabStyle.Render(tab))
		} else {
			tabElements = append(tabElements, InactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, tabElements...)
}

func (a *App) renderStatus() string {
	switch {
	case a.loading:
		return WarningStyle.Render("Sampling host...")
	case a.err != nil:
		return ErrorStyle.Render("Refresh failed: " + a.err.Error())
	case a.loadedAt.IsZero():
		return ""
	}
	return HelpStyle.Render(fmt.Sprintf("Queried at %s in %v", a.loadedAt.Format("15:04:05"), a.took.Round(time.Millisecond)))
}

func (a *App) queryValue(query, value string) string {
	if msg, ok := a.report.Errors[query]; ok {
		return ErrorStyle.Render("unavailable: " + msg)
	}
	return ValueStyle.Render(value)
}

func (a *App) renderOverview() string {
	r := a.report
	uptime := (time.Duration(r.Uptime) * time.Second).String()

	content := []string{
		HeaderStyle.Render("System Overview"),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("Platform:"), ValueStyle.Render(r.Platform)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Uptime:"), a.queryValue(collector.QueryUptime, uptime)),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("CPU:"), a.queryValue(collector.QueryCPU, fmt.Sprintf("%d%%", r.CPULoad))),
		a.cpuProgress.ViewAs(float64(r.CPULoad) / 100.0),
		"",
	}

	memLabel := "Memory used:"
	if r.Platform == "darwin" {
		memLabel = "Memory free:"
	}
	content = append(content,
		fmt.Sprintf("%s %s", LabelStyle.Render(memLabel), a.queryValue(collector.QueryMemory, fmt.Sprintf("%d%%", r.MemoryUsage))),
		a.memoryProgress.ViewAs(float64(r.MemoryUsage)/100.0),
		"",
		HeaderStyle.Render("Quick Stats"),
		fmt.Sprintf("Processes: %s", a.queryValue(collector.QueryProcesses, fmt.Sprintf("%d", len(r.Processes)))),
	)

	if r.Platform == "linux" {
		running := 0
		for _, svc := range r.Services {
			if svc.Running {
				running++
			}
		}
		content = append(content, fmt.Sprintf("Services: %s",
			a.queryValue(collector.QueryServices, fmt.Sprintf("%d running of %d", running, len(r.Services)))))
	}

	return BaseStyle.Width(max(20, a.width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func (a *App) renderProcesses() string {
	processes := a.report.Processes

	visibleRows := max(1, a.height-14)

	startIdx := 0
	if a.selectedRow >= visibleRows {
		startIdx = a.selectedRow - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(processes))

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Process List"))
	content.WriteString("\n\n")

	if msg, ok := a.report.Errors[collector.QueryProcesses]; ok {
		content.WriteString(ErrorStyle.Render("unavailable: " + msg))
		return BaseStyle.Render(content.String())
	}

	content.WriteString(fmt.Sprintf("Total: %d | Sorted by %s", len(processes), a.sort))
	content.WriteString("\n\n")

	header := fmt.Sprintf("%-8s %-24s %8s %8s  %s", "PID", "NAME", "CPU%", "MEM%", "LOAD")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		proc := processes[i]

		row := fmt.Sprintf("%-8d %-24s %7.1f%% %7.1f%%  %s",
			proc.PID, truncateString(proc.Name, 24), proc.CPUPercent, proc.MemPercent,
			RenderProgressBar(proc.CPUPercent, 10))

		rowStyle := TableCellStyle
		if i == a.selectedRow {
			rowStyle = SelectedRowStyle
		} else if (i-startIdx)%2 == 1 {
			rowStyle = AltRowStyle
		}

		content.WriteString(rowStyle.Render(row))
		content.WriteString("\n")
	}

	if len(processes) > visibleRows {
		content.WriteString("\n")
		content.WriteString(ScrollInfoStyle.Render(fmt.Sprintf("Showing %d-%d of %d processes • Use ↑↓ arrows or j/k to navigate",
			startIdx+1, endIdx, len(processes))))
	}

	return BaseStyle.Render(content.String())
}

func (a *App) renderServices() string {
	content := []string{
		HeaderStyle.Render("Services"),
		"",
	}

	switch {
	case a.report.Platform != "" && a.report.Platform != "linux":
		content = append(content, WarningStyle.Render("Service status is only available on linux"))
	case a.report.Failed(collector.QueryServices):
		content = append(content, ErrorStyle.Render("unavailable: "+a.report.Errors[collector.QueryServices]))
	default:
		for _, svc := range a.report.Services {
			status := ErrorStyle.Render("stopped")
			if svc.Running {
				status = SuccessStyle.Render("running")
			}
			content = append(content, fmt.Sprintf("%-32s %s", truncateString(svc.Name, 32), status))
		}
	}

	return BaseStyle.Width(max(20, a.width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
