package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-json-experiment/json"

	"github.com/jgoulah/greencalc/pkg/models"
)

// wireRecord is the decode shape of one inventory line. Pointers distinguish an
// absent field from a zero value so defaults can be filled per field.
type wireRecord struct {
	Kind          string   `json:"tipo"`
	Quantity      *float64 `json:"cantidad"`
	HoursPerDay   *float64 `json:"horas_dia"`
	DaysPerWeek   *float64 `json:"dias_semana"`
	RatedPowerW   *float64 `json:"potencia_w"`
	StandbyPowerW *float64 `json:"standby_w"`
	MonthsPerYear *float64 `json:"meses_uso"`
}

// encodedRecord fixes the field order written to disk
type encodedRecord struct {
	Kind          string  `json:"tipo"`
	Quantity      int     `json:"cantidad"`
	HoursPerDay   float64 `json:"horas_dia"`
	DaysPerWeek   int     `json:"dias_semana"`
	RatedPowerW   float64 `json:"potencia_w"`
	StandbyPowerW float64 `json:"standby_w"`
	MonthsPerYear int     `json:"meses_uso"`
}

// Encode serializes a record as a single JSON line without the trailing newline
func Encode(rec models.ApplianceRecord) ([]byte, error) {
	data, err := json.Marshal(encodedRecord{
		Kind:          rec.Kind,
		Quantity:      rec.Quantity,
		HoursPerDay:   rec.HoursPerDay,
		DaysPerWeek:   rec.DaysPerWeek,
		RatedPowerW:   rec.RatedPowerW,
		StandbyPowerW: rec.StandbyPowerW,
		MonthsPerYear: rec.MonthsPerYear,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding appliance: %w", err)
	}
	return data, nil
}

// Decode parses one inventory line. Fields missing from older rows are filled:
//
//	cantidad    -> 1
//	standby_w   -> 0
//	horas_dia   -> 1
//	dias_semana -> 7
//	meses_uso   -> 12
//
// tipo and potencia_w are required. The decoded record must pass Validate.
func Decode(line []byte) (models.ApplianceRecord, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return models.ApplianceRecord{}, errors.New("empty record")
	}

	var w wireRecord
	if err := json.Unmarshal(line, &w); err != nil {
		return models.ApplianceRecord{}, fmt.Errorf("decoding appliance: %w", err)
	}
	if w.RatedPowerW == nil {
		return models.ApplianceRecord{}, fmt.Errorf("%w: potencia_w is required", models.ErrInvalidAppliance)
	}

	rec := models.ApplianceRecord{
		Kind:          w.Kind,
		RatedPowerW:   *w.RatedPowerW,
		StandbyPowerW: floatOr(w.StandbyPowerW, models.DefaultStandbyPowerW),
		HoursPerDay:   floatOr(w.HoursPerDay, models.DefaultHoursPerDay),
	}

	var err error
	if rec.Quantity, err = intOr(w.Quantity, models.DefaultQuantity, "cantidad"); err != nil {
		return models.ApplianceRecord{}, err
	}
	if rec.DaysPerWeek, err = intOr(w.DaysPerWeek, models.DefaultDaysPerWeek, "dias_semana"); err != nil {
		return models.ApplianceRecord{}, err
	}
	if rec.MonthsPerYear, err = intOr(w.MonthsPerYear, models.DefaultMonthsPerYear, "meses_uso"); err != nil {
		return models.ApplianceRecord{}, err
	}

	if err := rec.Validate(); err != nil {
		return models.ApplianceRecord{}, err
	}
	return rec, nil
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// intOr accepts integral numbers written as floats (7.0)
func intOr(v *float64, def int, field string) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v != math.Trunc(*v) || math.Abs(*v) > models.MaxQuantity {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", models.ErrInvalidAppliance, field, *v)
	}
	return int(*v), nil
}
