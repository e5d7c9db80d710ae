package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/prabalesh/hostprobe/internal/models"
)

// ServiceFilter selects services from a status listing.
type ServiceFilter func(models.Service) bool

func ServiceNamed(name string) ServiceFilter {
	return func(svc models.Service) bool { return svc.Name == name }
}

func ServiceRunning(running bool) ServiceFilter {
	return func(svc models.Service) bool { return svc.Running == running }
}

// ServiceMatching matches a service equal to want in every field.
func ServiceMatching(want models.Service) ServiceFilter {
	return func(svc models.Service) bool { return svc == want }
}

// Services lists init services and whether they run. It is only available on
// linux. Given filters, the result holds the first service matching each
// filter, in filter order; a filter that matches nothing adds no entry.
func (s *StatsCollector) Services(ctx context.Context, filters ...ServiceFilter) ([]models.Service, error) {
	if s.platform != "linux" {
		return nil, fmt.Errorf("services on %s: %w", s.platform, ErrUnsupportedPlatform)
	}

	out, err := s.runner.Run(ctx, "service", "--status-all")
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services, err := ParseServiceStatus(out)
	if err != nil {
		return nil, err
	}

	if len(filters) == 0 {
		return services, nil
	}
	return FilterServices(services, filters...), nil
}

// FilterServices returns the first match of each filter, skipping misses.
func FilterServices(services []models.Service, filters ...ServiceFilter) []models.Service {
	matched := make([]models.Service, 0, len(filters))
	for _, filter := range filters {
		for _, svc := range services {
			if filter(svc) {
				matched = append(matched, svc)
				break
			}
		}
	}
	return matched
}

// ParseServiceStatus parses `service --status-all` lines such as
// " [ + ]  nginx". The status marker is the third character of the trimmed
// bracket segment.
func ParseServiceStatus(out string) ([]models.Service, error) {
	lines := strings.Split(out, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	services := make([]models.Service, 0, len(lines))
	for _, line := range lines {
		marker, name, ok := strings.Cut(line, "]")
		if !ok {
			return nil, parseErrorf("service --status-all", "line %q has no status marker", line)
		}

		marker = strings.TrimSpace(marker)
		services = append(services, models.Service{
			Name:    strings.TrimSpace(name),
			Running: len(marker) > 2 && marker[2] == '+',
		})
	}
	return services, nil
}
