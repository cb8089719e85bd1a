package domain

import "strings"

// ServiceCatalog рабочее окно владельца и длительности услуг
type ServiceCatalog struct {
	EarliestMinute int
	LatestMinute   int
	durations      map[string]int
}

// NewServiceCatalog создает каталог; имена услуг сравниваются без учёта регистра
func NewServiceCatalog(earliestMinute, latestMinute int, durations map[string]int) *ServiceCatalog {
	c := &ServiceCatalog{
		EarliestMinute: earliestMinute,
		LatestMinute:   latestMinute,
		durations:      make(map[string]int, len(durations)),
	}
	for name, d := range durations {
		c.durations[normalizeService(name)] = d
	}
	return c
}

// Duration длительность услуги в минутах
func (c *ServiceCatalog) Duration(service string) (int, bool) {
	d, ok := c.durations[normalizeService(service)]
	return d, ok
}

func normalizeService(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
