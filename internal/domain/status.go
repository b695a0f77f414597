package domain

import (
	"fmt"
	"strings"
)

// Status is the health state of a Service.
type Status string

const (
	StatusOperational         Status = "Operational"
	StatusDegradedPerformance Status = "Degraded Performance"
	StatusPartialOutage       Status = "Partial Outage"
	StatusMajorOutage         Status = "Major Outage"
)

// AllStatuses lists every representable status, from healthiest to worst.
var AllStatuses = []Status{
	StatusOperational,
	StatusDegradedPerformance,
	StatusPartialOutage,
	StatusMajorOutage,
}

// Valid reports whether s is one of AllStatuses.
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus matches raw against the known statuses, ignoring case and
// surrounding whitespace. It is meant for human input (CLI flags, seed
// files); the API itself only accepts exact values.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, v := range AllStatuses {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q (want one of %s)", ErrValidation, raw, statusList())
}

func statusList() string {
	names := make([]string, len(AllStatuses))
	for i, v := range AllStatuses {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
