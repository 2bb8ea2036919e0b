package models

import "strconv"

// Service is a barber service category used to group price observations
type Service string

const (
	Haircut Service = "haircut"
	Beard   Service = "beard"
	Wash    Service = "wash"
)

// InferredSuffix is appended to the source name of observations derived by arithmetic
const InferredSuffix = " (inferred)"

// KnownServices returns the supported categories in display order
func KnownServices() []Service {
	return []Service{Haircut, Beard, Wash}
}

// IsKnown reports whether s is one of the supported categories
func (s Service) IsKnown() bool {
	for _, known := range KnownServices() {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the category
func (s Service) Label() string {
	switch s {
	case Haircut:
		return "Šišanje"
	case Beard:
		return "Brada"
	case Wash:
		return "Pranje kose"
	default:
		return string(s)
	}
}

// PriceObservation is a single price found on a source page
type PriceObservation struct {
	Source   string
	Service  Service
	PriceRSD int
	Inferred bool // derived from other observed prices, not read from the page
}

// SourceRun is the outcome of extracting one source.
// A run with Err set never carries observations.
type SourceRun struct {
	Source       string
	Observations []PriceObservation
	Err          string
}

// Failed reports whether the run recorded an error
func (r SourceRun) Failed() bool {
	return r.Err != ""
}

// Stat is one statistic that may be unknown when there were no prices
type Stat struct {
	Value int
	Known bool
}

// String renders the value or "unknown"
func (s Stat) String() string {
	if !s.Known {
		return "unknown"
	}
	return strconv.Itoa(s.Value)
}

// CategoryStats holds the min/avg/max summary for one service category
type CategoryStats struct {
	Service Service
	Min     Stat
	Avg     Stat
	Max     Stat
	Count   int
}
