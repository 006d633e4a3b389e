package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Defaults for appliance fields that older inventory rows may omit
const (
	DefaultQuantity      = 1
	DefaultStandbyPowerW = 0
	DefaultHoursPerDay   = 1.0
	DefaultDaysPerWeek   = 7
	DefaultMonthsPerYear = 12
)

// MaxQuantity is the largest quantity the inventory codec can read back
const MaxQuantity = math.MaxInt32

// ErrInvalidAppliance is returned for appliance records that break inventory invariants
var ErrInvalidAppliance = errors.New("invalid appliance")

// ApplianceRecord represents one line of the appliance inventory
type ApplianceRecord struct {
	Kind          string  `json:"kind"`
	Quantity      int     `json:"quantity"`
	RatedPowerW   float64 `json:"rated_power_w"`
	StandbyPowerW float64 `json:"standby_power_w"`
	HoursPerDay   float64 `json:"hours_per_day"`
	DaysPerWeek   int     `json:"days_per_week"`
	MonthsPerYear int     `json:"months_per_year"`
}

// Validate checks the record invariants
func (a ApplianceRecord) Validate() error {
	switch {
	case strings.TrimSpace(a.Kind) == "":
		return fmt.Errorf("%w: kind is required", ErrInvalidAppliance)
	case a.Quantity < 1 || a.Quantity > MaxQuantity:
		return fmt.Errorf("%w: quantity must be within 1-%d, got %d", ErrInvalidAppliance, MaxQuantity, a.Quantity)
	case !finite(a.RatedPowerW) || a.RatedPowerW <= 0:
		return fmt.Errorf("%w: rated power must be positive, got %v", ErrInvalidAppliance, a.RatedPowerW)
	case !finite(a.StandbyPowerW) || a.StandbyPowerW < 0:
		return fmt.Errorf("%w: standby power must not be negative, got %v", ErrInvalidAppliance, a.StandbyPowerW)
	case !finite(a.HoursPerDay) || a.HoursPerDay < 0 || a.HoursPerDay > 24:
		return fmt.Errorf("%w: hours per day must be within 0-24, got %v", ErrInvalidAppliance, a.HoursPerDay)
	case a.DaysPerWeek < 1 || a.DaysPerWeek > 7:
		return fmt.Errorf("%w: days per week must be within 1-7, got %d", ErrInvalidAppliance, a.DaysPerWeek)
	case a.MonthsPerYear < 1 || a.MonthsPerYear > 12:
		return fmt.Errorf("%w: months per year must be within 1-12, got %d", ErrInvalidAppliance, a.MonthsPerYear)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
