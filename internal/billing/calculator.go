// Package billing derives the charge for a stay from its date window
// and the room's daily rate. It is pure: the same calculation serves
// both the authoritative bill stored at discharge and the speculative
// estimate shown for an ongoing stay.
package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Days returns the number of billable days between the two dates:
// the ceiling of the absolute difference in calendar days, with a
// minimum of one so a same-day discharge still bills one day.
func Days(allocationDate, dischargeDate time.Time) int {
	diff := dischargeDate.Sub(allocationDate)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days == 0 {
		days = 1
	}
	return days
}

// Amount computes days * pricePerDay rounded half-up to 2 decimal
// places at the final multiplication, not per day.
func Amount(allocationDate, dischargeDate time.Time, pricePerDay decimal.Decimal) decimal.Decimal {
	days := Days(allocationDate, dischargeDate)
	return pricePerDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}
