package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/greencalc/pkg/models"
)

func TestDecodeFillsDefaults(t *testing.T) {
	rec, err := Decode([]byte(`{"tipo":"Lavadora","potencia_w":500,"horas_dia":1.5,"dias_semana":3}`))
	require.NoError(t, err)

	assert.Equal(t, models.ApplianceRecord{
		Kind:          "Lavadora",
		Quantity:      models.DefaultQuantity,
		RatedPowerW:   500,
		StandbyPowerW: models.DefaultStandbyPowerW,
		HoursPerDay:   1.5,
		DaysPerWeek:   3,
		MonthsPerYear: models.DefaultMonthsPerYear,
	}, rec)
}

func TestDecodeNullIsAbsent(t *testing.T) {
	rec, err := Decode([]byte(`{"tipo":"Monitor","cantidad":2,"potencia_w":22,"standby_w":null,"meses_uso":null}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.StandbyPowerW)
	assert.Equal(t, 12, rec.MonthsPerYear)
	assert.Equal(t, 2, rec.Quantity)
}

func TestDecodeIntegralFloats(t *testing.T) {
	rec, err := Decode([]byte(`{"tipo":"Router WiFi","cantidad":1.0,"potencia_w":10.0,"horas_dia":24.0,"dias_semana":7.0,"meses_uso":12.0}`))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Quantity)
	assert.Equal(t, 7, rec.DaysPerWeek)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", "   "},
		{"syntax", `{"tipo":`},
		{"array wrapper", `[{"tipo":"Heladera","potencia_w":150}]`},
		{"missing power", `{"tipo":"Heladera"}`},
		{"fractional quantity", `{"tipo":"Heladera","potencia_w":150,"cantidad":1.5}`},
		{"zero quantity", `{"tipo":"Heladera","potencia_w":150,"cantidad":0}`},
		{"negative standby", `{"tipo":"Heladera","potencia_w":150,"standby_w":-2}`},
		{"missing kind", `{"potencia_w":150}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.line))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeKeepsFields(t *testing.T) {
	rec := models.ApplianceRecord{
		Kind:          "Aire Acondicionado",
		Quantity:      2,
		RatedPowerW:   878,
		StandbyPowerW: 3,
		HoursPerDay:   6.5,
		DaysPerWeek:   5,
		MonthsPerYear: 4,
	}

	line, err := Encode(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(line), "\n")

	got, err := Decode(line)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
