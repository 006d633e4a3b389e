package ledger

import "github.com/jgoulah/greencalc/pkg/models"

// DefaultReferenceKWh is the provincial average monthly consumption bills are compared to
const DefaultReferenceKWh = 250.0

// Summary aggregates a set of bills
type Summary struct {
	Count        int
	TotalKWh     float64
	TotalCost    float64
	AverageKWh   float64
	ReferenceKWh float64
	DeltaKWh     float64 // AverageKWh - ReferenceKWh; negative means below the reference
}

// Summarize computes totals and the average consumption of records.
// The average and delta are zero when there are no records.
func Summarize(records []models.BillRecord, referenceKWh float64) Summary {
	s := Summary{Count: len(records), ReferenceKWh: referenceKWh}
	for _, r := range records {
		s.TotalKWh += r.KWh
		s.TotalCost += r.Cost
	}
	if s.Count > 0 {
		s.AverageKWh = s.TotalKWh / float64(s.Count)
		s.DeltaKWh = s.AverageKWh - referenceKWh
	}
	return s
}
