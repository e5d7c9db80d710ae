package models

import (
	"fmt"
	"strings"
)

type Process struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu"`
	MemPercent float64 `json:"mem"`
}

type SortField string

const (
	SortByPID  SortField = "pid"
	SortByName SortField = "name"
	SortByCPU  SortField = "cpu"
	SortByMem  SortField = "mem"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortSpec selects the column and direction used to order a process list.
type SortSpec struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// ParseSortSpec validates a user supplied field and order. An empty order
// means ascending; "ascending" and "descending" are accepted as aliases.
func ParseSortSpec(field, order string) (SortSpec, error) {
	var spec SortSpec

	switch f := SortField(strings.ToLower(strings.TrimSpace(field))); f {
	case SortByPID, SortByName, SortByCPU, SortByMem:
		spec.Field = f
	default:
		return SortSpec{}, fmt.Errorf("unknown sort field %q (want pid, name, cpu or mem)", field)
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc", "ascending":
		spec.Order = Ascending
	case "desc", "descending":
		spec.Order = Descending
	default:
		return SortSpec{}, fmt.Errorf("unknown sort order %q (want asc or desc)", order)
	}

	return spec, nil
}

// Flip returns the spec with the opposite order.
func (s SortSpec) Flip() SortSpec {
	if s.Order == Descending {
		s.Order = Ascending
	} else {
		s.Order = Descending
	}
	return s
}

func (s SortSpec) String() string {
	return string(s.Field) + " " + string(s.Order)
}
