// Package catalog lists the appliance kinds offered when building an inventory.
package catalog

import (
	"strings"

	"github.com/jgoulah/greencalc/pkg/models"
)

// Entry describes a catalog appliance and its typical power draw
type Entry struct {
	Kind          string
	RatedPowerW   float64
	StandbyPowerW float64
}

var entries = []Entry{
	{Kind: "Heladera", RatedPowerW: 150, StandbyPowerW: 2},
	{Kind: "Aire Acondicionado", RatedPowerW: 878, StandbyPowerW: 3},
	{Kind: "Lavadora", RatedPowerW: 500, StandbyPowerW: 1},
	{Kind: "Horno Eléctrico", RatedPowerW: 1500, StandbyPowerW: 2},
	{Kind: "Lámpara LED", RatedPowerW: 11, StandbyPowerW: 0},
	{Kind: "Computadora", RatedPowerW: 200, StandbyPowerW: 5},
	{Kind: "Laptop/Notebook", RatedPowerW: 60, StandbyPowerW: 3},
	{Kind: "Pava Eléctrica", RatedPowerW: 2000, StandbyPowerW: 0},
	{Kind: "Cargador de Celular", RatedPowerW: 5, StandbyPowerW: 1},
	{Kind: "Router WiFi", RatedPowerW: 10, StandbyPowerW: 0},
	{Kind: "Monitor", RatedPowerW: 22, StandbyPowerW: 2},
	{Kind: "Plancha", RatedPowerW: 1500, StandbyPowerW: 0},
	{Kind: "Televisor", RatedPowerW: 120, StandbyPowerW: 4},
	{Kind: "Microondas", RatedPowerW: 1100, StandbyPowerW: 3},
}

// All returns the catalog in display order
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds a catalog entry by kind, ignoring case and surrounding spaces
func Lookup(kind string) (Entry, bool) {
	kind = strings.TrimSpace(kind)
	for _, e := range entries {
		if strings.EqualFold(e.Kind, kind) {
			return e, true
		}
	}
	return Entry{}, false
}

// Record builds an inventory record for one unit of e with the default usage profile
func (e Entry) Record() models.ApplianceRecord {
	return models.ApplianceRecord{
		Kind:          e.Kind,
		Quantity:      models.DefaultQuantity,
		RatedPowerW:   e.RatedPowerW,
		StandbyPowerW: e.StandbyPowerW,
		HoursPerDay:   models.DefaultHoursPerDay,
		DaysPerWeek:   models.DefaultDaysPerWeek,
		MonthsPerYear: models.DefaultMonthsPerYear,
	}
}
