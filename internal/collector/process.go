package collector

import (
	"cmp"
	"context"
	"slices"

	"github.com/prabalesh/hostprobe/internal/models"
)

// CurrentProcesses lists every live process. With a non-nil spec the list is
// stable sorted on the requested field; otherwise the provider order is kept.
func (s *StatsCollector) CurrentProcesses(ctx context.Context, spec *models.SortSpec) ([]models.Process, error) {
	raw, err := s.procs.Processes(ctx)
	if err != nil {
		return nil, err
	}

	processes := make([]models.Process, 0, len(raw))
	for _, p := range raw {
		processes = append(processes, models.Process{
			PID:        p.PID,
			Name:       p.Name,
			CPUPercent: p.CPUPercent,
			MemPercent: float64(p.MemPercent),
		})
	}

	if spec != nil {
		SortProcesses(processes, *spec)
	}
	return processes, nil
}

// SortProcesses orders processes in place. Equal keys keep their relative order.
func SortProcesses(processes []models.Process, spec models.SortSpec) {
	compare := processComparator(spec.Field)
	if spec.Order == models.Descending {
		asc := compare
		compare = func(a, b models.Process) int { return asc(b, a) }
	}
	slices.SortStableFunc(processes, compare)
}

func processComparator(field models.SortField) func(a, b models.Process) int {
	switch field {
	case models.SortByName:
		return func(a, b models.Process) int { return cmp.Compare(a.Name, b.Name) }
	case models.SortByCPU:
		return func(a, b models.Process) int { return cmp.Compare(a.CPUPercent, b.CPUPercent) }
	case models.SortByMem:
		return func(a, b models.Process) int { return cmp.Compare(a.MemPercent, b.MemPercent) }
	default:
		return func(a, b models.Process) int { return cmp.Compare(a.PID, b.PID) }
	}
}
