package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the on-disk format of a bill date
const DateLayout = "2006-01-02"

// ErrInvalidBill is returned for bill values that break the ledger invariants
var ErrInvalidBill = errors.New("invalid bill")

// BillRecord represents one electric bill as stored in the ledger
type BillRecord struct {
	Seq  int       `json:"seq"`  // 1-based position in the ledger, derived on load
	Date time.Time `json:"date"` // Calendar day the bill was recorded
	KWh  float64   `json:"kwh"`
	Cost float64   `json:"cost"` // Local currency, unit-less
}

// DateString returns the date in ledger format
func (b BillRecord) DateString() string {
	return b.Date.Format(DateLayout)
}

// ValidateBill checks user input before it reaches the ledger.
// Consumption must be strictly positive; cost may be zero.
func ValidateBill(kwh, cost float64) error {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) || kwh <= 0 {
		return fmt.Errorf("%w: consumption must be greater than zero, got %v", ErrInvalidBill, kwh)
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return fmt.Errorf("%w: cost must not be negative, got %v", ErrInvalidBill, cost)
	}
	return nil
}
