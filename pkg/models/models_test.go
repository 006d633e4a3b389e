package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBill(t *testing.T) {
	tests := []struct {
		name    string
		kwh     float64
		cost    float64
		wantErr bool
	}{
		{name: "typical bill", kwh: 10.5, cost: 2500},
		{name: "free bill", kwh: 3, cost: 0},
		{name: "zero consumption", kwh: 0, cost: 100, wantErr: true},
		{name: "negative consumption", kwh: -1, cost: 100, wantErr: true},
		{name: "negative cost", kwh: 1, cost: -5, wantErr: true},
		{name: "nan consumption", kwh: math.NaN(), cost: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBill(tt.kwh, tt.cost)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBill)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplianceValidate(t *testing.T) {
	valid := ApplianceRecord{
		Kind:          "Heladera",
		Quantity:      1,
		RatedPowerW:   150,
		StandbyPowerW: 2,
		HoursPerDay:   24,
		DaysPerWeek:   7,
		MonthsPerYear: 12,
	}
	assert.NoError(t, valid.Validate())

	largest := valid
	largest.Quantity = MaxQuantity
	assert.NoError(t, largest.Validate())

	tests := []struct {
		name   string
		mutate func(*ApplianceRecord)
	}{
		{"empty kind", func(a *ApplianceRecord) { a.Kind = "  " }},
		{"zero quantity", func(a *ApplianceRecord) { a.Quantity = 0 }},
		{"quantity above max", func(a *ApplianceRecord) { a.Quantity = MaxQuantity; a.Quantity++ }},
		{"zero power", func(a *ApplianceRecord) { a.RatedPowerW = 0 }},
		{"negative standby", func(a *ApplianceRecord) { a.StandbyPowerW = -1 }},
		{"too many hours", func(a *ApplianceRecord) { a.HoursPerDay = 25 }},
		{"zero days", func(a *ApplianceRecord) { a.DaysPerWeek = 0 }},
		{"thirteen months", func(a *ApplianceRecord) { a.MonthsPerYear = 13 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			assert.ErrorIs(t, rec.Validate(), ErrInvalidAppliance)
		})
	}
}
