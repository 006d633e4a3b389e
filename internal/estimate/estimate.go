// Package estimate computes monthly appliance consumption.
package estimate

import "github.com/jgoulah/greencalc/pkg/models"

const (
	// WeeksPerMonth converts weekly usage into monthly usage
	WeeksPerMonth = 4.345
	// HoursPerMonth is the length of an average month
	HoursPerMonth = 24 * 30.4
)

// Breakdown splits one unit's monthly consumption into active and standby parts
type Breakdown struct {
	ActiveHours  float64
	StandbyHours float64
	ActiveKWh    float64
	StandbyKWh   float64
	SeasonFactor float64 // months_per_year / 12
	MonthlyKWh   float64
}

// Compute returns the monthly breakdown for a single unit of rec.
// Standby hours are whatever the active hours leave of the month, and are not
// clamped: an appliance used around the clock slightly overshoots the month.
func Compute(rec models.ApplianceRecord) Breakdown {
	b := Breakdown{
		ActiveHours:  rec.HoursPerDay * float64(rec.DaysPerWeek) * WeeksPerMonth,
		SeasonFactor: float64(rec.MonthsPerYear) / 12,
	}
	b.StandbyHours = HoursPerMonth - b.ActiveHours
	b.ActiveKWh = rec.RatedPowerW * b.ActiveHours / 1000
	b.StandbyKWh = rec.StandbyPowerW * b.StandbyHours / 1000
	b.MonthlyKWh = (b.ActiveKWh + b.StandbyKWh) * b.SeasonFactor
	return b
}

// MonthlyKWh returns the estimated monthly kWh of a single unit
func MonthlyKWh(rec models.ApplianceRecord) float64 {
	return Compute(rec).MonthlyKWh
}

// InventoryTotal sums quantity times the per-unit estimate over recs
func InventoryTotal(recs []models.ApplianceRecord) float64 {
	var total float64
	for _, r := range recs {
		total += float64(r.Quantity) * MonthlyKWh(r)
	}
	return total
}
