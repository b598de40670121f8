package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service an offered sanitation service of the catalog. Price and duration are edited by the
// catalog administration; the booking engine only reads them.
type Service struct {
	ID              int64
	Country         string
	CoverageRegions []string // empty = the whole country
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	Available       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCoverage returns true if the service is restricted to a list of regions
func (s *Service) HasCoverage() bool {
	return len(s.CoverageRegions) > 0
}

// Covers returns true if the service is offered in the region
func (s *Service) Covers(region string) bool {
	if !s.HasCoverage() {
		return true
	}
	for _, r := range s.CoverageRegions {
		if r == region {
			return true
		}
	}
	return false
}

// IsValid checks the catalog invariants: price > 0 and duration > 0
func (s *Service) IsValid() bool {
	return s.Price.IsPositive() && s.DurationMinutes > 0
}
