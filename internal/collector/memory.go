package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const memoryPressureMarker = "System-wide memory free percentage: "

var whitespaceRun = regexp.MustCompile(`\s+`)

// memoryStrategy turns the output of one or more commands into a percentage.
type memoryStrategy func(ctx context.Context, s *StatsCollector) (int, error)

func memoryStrategyFor(platform string) memoryStrategy {
	switch platform {
	case "windows":
		return windowsMemoryUsage
	case "darwin":
		return darwinMemoryUsage
	default:
		return linuxMemoryUsage
	}
}

// MemoryUsage reports memory use as a percentage using the command set of
// the collector's platform. On darwin the figure is the free percentage
// exactly as memory_pressure prints it.
func (s *StatsCollector) MemoryUsage(ctx context.Context) (int, error) {
	return memoryStrategyFor(s.platform)(ctx, s)
}

func windowsMemoryUsage(ctx context.Context, s *StatsCollector) (int, error) {
	freeOut, err := s.runner.Run(ctx, "wmic", "os", "get", "freephysicalmemory", "/format:value")
	if err != nil {
		return 0, fmt.Errorf("query free physical memory: %w", err)
	}
	free, err := ParseWMICValue(freeOut)
	if err != nil {
		return 0, err
	}

	totalOut, err := s.runner.Run(ctx, "wmic", "os", "get", "TotalVisibleMemorySize", "/format:value")
	if err != nil {
		return 0, fmt.Errorf("query total visible memory: %w", err)
	}
	total, err := ParseWMICValue(totalOut)
	if err != nil {
		return 0, err
	}

	return WindowsUsedPercent(free, total)
}

// WindowsUsedPercent is 100 - round(100*free/total).
func WindowsUsedPercent(free, total int64) (int, error) {
	if total <= 0 {
		return 0, parseErrorf("wmic", "total visible memory is %d", total)
	}
	return 100 - roundPercent(free, total), nil
}

// ParseWMICValue reads the integer from the Key=Value line wmic prints on
// the third line of /format:value output.
func ParseWMICValue(out string) (int64, error) {
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		return 0, parseErrorf("wmic", "expected at least 3 lines, got %d", len(lines))
	}

	_, value, ok := strings.Cut(lines[2], "=")
	if !ok {
		return 0, parseErrorf("wmic", "line %q is not key=value", strings.TrimSpace(lines[2]))
	}

	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, parseErrorf("wmic", "value %q is not an integer", strings.TrimSpace(value))
	}
	return n, nil
}

func darwinMemoryUsage(ctx context.Context, s *StatsCollector) (int, error) {
	out, err := s.runner.Run(ctx, "memory_pressure")
	if err != nil {
		return 0, fmt.Errorf("query memory pressure: %w", err)
	}
	return ParseMemoryPressure(out)
}

// ParseMemoryPressure extracts N from the "System-wide memory free
// percentage: N%" line.
func ParseMemoryPressure(out string) (int, error) {
	var line string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, memoryPressureMarker) {
			line = l
			break
		}
	}
	if line == "" {
		return 0, parseErrorf("memory_pressure", "no %q line", strings.TrimSpace(memoryPressureMarker))
	}

	line = strings.Replace(line, "%", "", 1)
	fields := strings.Split(whitespaceRun.ReplaceAllString(line, " "), " ")
	if len(fields) < 5 {
		return 0, parseErrorf("memory_pressure", "line %q has %d fields", line, len(fields))
	}

	free, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0, parseErrorf("memory_pressure", "free percentage %q is not an integer", fields[4])
	}
	return free, nil
}

func linuxMemoryUsage(ctx context.Context, s *StatsCollector) (int, error) {
	out, err := s.runner.Run(ctx, "free", "-m")
	if err != nil {
		return 0, fmt.Errorf("query free memory: %w", err)
	}

	total, used, err := ParseFreeOutput(out)
	if err != nil {
		return 0, err
	}
	return roundPercent(used, total), nil
}

// ParseFreeOutput reads total and used megabytes from the second line of
// `free -m`. Fields are taken positionally after collapsing whitespace, so
// the "Mem:" label occupies index 0.
func ParseFreeOutput(out string) (total, used int64, err error) {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return 0, 0, parseErrorf("free", "expected at least 2 lines, got %d", len(lines))
	}

	fields := strings.Split(whitespaceRun.ReplaceAllString(lines[1], " "), " ")
	if len(fields) < 3 {
		return 0, 0, parseErrorf("free", "line %q has %d fields", lines[1], len(fields))
	}

	total, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, parseErrorf("free", "total %q is not an integer", fields[1])
	}
	used, err = strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, parseErrorf("free", "used %q is not an integer", fields[2])
	}
	if total <= 0 {
		return 0, 0, parseErrorf("free", "total memory is %d", total)
	}
	return total, used, nil
}

// roundPercent is 100*part/whole rounded half up.
func roundPercent(part, whole int64) int {
	return int(math.Floor(100*float64(part)/float64(whole) + 0.5))
}
