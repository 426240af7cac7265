package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysSameDayBillsOne(t *testing.T) {
	d := date("2024-01-01")
	assert.Equal(t, 1, Days(d, d))
}

func TestDaysFullWindow(t *testing.T) {
	assert.Equal(t, 3, Days(date("2024-01-01"), date("2024-01-04")))
	assert.Equal(t, 1, Days(date("2024-01-01"), date("2024-01-02")))
}

func TestDaysPartialDayRoundsUp(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 11, 30, 0, 0, time.UTC)
	assert.Equal(t, 3, Days(from, to))
}

func TestDaysAbsoluteDifference(t *testing.T) {
	// Reversed dates still yield a positive day count
	assert.Equal(t, 3, Days(date("2024-01-04"), date("2024-01-01")))
}

func TestAmountSameDayEqualsRate(t *testing.T) {
	rate := decimal.NewFromInt(1000)
	d := date("2024-01-01")
	assert.True(t, Amount(d, d, rate).Equal(rate))
}

func TestAmountMultipleDays(t *testing.T) {
	rate := decimal.NewFromInt(1000)
	got := Amount(date("2024-01-01"), date("2024-01-04"), rate)
	assert.True(t, got.Equal(decimal.NewFromInt(3000)), "got %s", got)
}

func TestAmountRoundsHalfUpAtFinalMultiplication(t *testing.T) {
	// 333.335 * 3 = 1000.005, which rounds half-up to 1000.01
	rate := decimal.RequireFromString("333.335")
	got := Amount(date("2024-01-01"), date("2024-01-04"), rate)
	assert.Equal(t, "1000.01", got.StringFixed(2))
}

func TestAmountZeroRate(t *testing.T) {
	got := Amount(date("2024-01-01"), date("2024-01-10"), decimal.Zero)
	assert.True(t, got.IsZero())
}
