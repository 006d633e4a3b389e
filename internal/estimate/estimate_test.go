package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jgoulah/greencalc/pkg/models"
)

func TestHeladeraEstimate(t *testing.T) {
	rec := models.ApplianceRecord{
		Kind:          "Heladera",
		Quantity:      1,
		RatedPowerW:   150,
		StandbyPowerW: 2,
		HoursPerDay:   24,
		DaysPerWeek:   7,
		MonthsPerYear: 12,
	}

	b := Compute(rec)
	assert.InDelta(t, 729.96, b.ActiveHours, 1e-9)
	assert.InDelta(t, -0.36, b.StandbyHours, 1e-9)
	assert.InDelta(t, 109.494, b.ActiveKWh, 1e-9)
	assert.InDelta(t, 109.49328, b.MonthlyKWh, 1e-9)
	assert.InDelta(t, 109.49328, MonthlyKWh(rec), 1e-9)
}

func TestSeasonalScaling(t *testing.T) {
	rec := models.ApplianceRecord{
		Kind:          "Aire Acondicionado",
		Quantity:      1,
		RatedPowerW:   878,
		StandbyPowerW: 3,
		HoursPerDay:   8,
		DaysPerWeek:   7,
		MonthsPerYear: 3,
	}

	full := rec
	full.MonthsPerYear = 12
	assert.InDelta(t, MonthlyKWh(full)/4, MonthlyKWh(rec), 1e-9)
}

func TestStandbyOnly(t *testing.T) {
	rec := models.ApplianceRecord{
		Kind:          "Cargador de Celular",
		Quantity:      1,
		RatedPowerW:   5,
		StandbyPowerW: 1,
		HoursPerDay:   0,
		DaysPerWeek:   7,
		MonthsPerYear: 12,
	}
	assert.InDelta(t, 0.7296, MonthlyKWh(rec), 1e-9)
}

func TestInventoryTotalUsesQuantity(t *testing.T) {
	lamp := models.ApplianceRecord{
		Kind:          "Lámpara LED",
		Quantity:      4,
		RatedPowerW:   11,
		HoursPerDay:   5,
		DaysPerWeek:   7,
		MonthsPerYear: 12,
	}
	assert.InDelta(t, 4*MonthlyKWh(lamp), InventoryTotal([]models.ApplianceRecord{lamp}), 1e-9)
	assert.Zero(t, InventoryTotal(nil))
}
