package models

// TickSnapshot holds cumulative CPU time counters summed over all logical cores.
// Values are milliseconds since boot.
type TickSnapshot struct {
	Idle  uint64 `json:"idle"`
	Total uint64 `json:"total"`
}

// Report is a point-in-time view of every query the collector answers.
// A query that failed leaves its field at the zero value and records the
// error message under its name in Errors.
type Report struct {
	Platform    string            `json:"platform"`
	Uptime      uint64            `json:"uptime"`
	CPULoad     int               `json:"cpu_load"`
	MemoryUsage int               `json:"memory_usage"`
	Processes   []Process         `json:"processes"`
	Services    []Service         `json:"services"`
	Errors      map[string]string `json:"errors,omitempty"`
}

func (r Report) Failed(query string) bool {
	_, ok := r.Errors[query]
	return ok
}

type Service struct {
	Name    string `json:"name"`
	Running bool   `json:"running"`
}
