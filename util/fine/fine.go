// Package fine computes overdue fines for loans. The schedule is a
// 10-day grace period, then 1, 2, 4, 8 units on days 11-14, doubling
// every day after that.
package fine

import (
	"math"
	"strconv"
	"time"
)

const (
	// GraceDays is the number of elapsed days before a fine accrues.
	GraceDays = 10

	day = 24 * time.Hour

	// beyond this the doubling overflows int64; the fine saturates
	maxExactDays = 73
)

// ElapsedDays is the whole days between issue and at, truncated toward
// zero. A zero issue date counts as zero elapsed days.
func ElapsedDays(issue, at time.Time) int64 {
	if issue.IsZero() {
		return 0
	}
	return int64(at.Sub(issue) / day)
}

// Compute returns the fine owed for a loan issued at issue. For open
// loans (returned == nil) the fine accrues against now.
func Compute(issue time.Time, returned *time.Time, now time.Time) int64 {
	at := now
	if returned != nil {
		at = *returned
	}
	return Amount(ElapsedDays(issue, at))
}

// Amount maps elapsed days to the fine schedule.
func Amount(elapsedDays int64) int64 {
	switch {
	case elapsedDays <= GraceDays:
		return 0
	case elapsedDays == 11:
		return 1
	case elapsedDays == 12:
		return 2
	case elapsedDays == 13:
		return 4
	case elapsedDays == 14:
		return 8
	}
	if elapsedDays > maxExactDays {
		return math.MaxInt64
	}
	// 8 doubled once per day past 14
	return 8 << uint(elapsedDays-14)
}

// DaysOverdue counts the days past the grace period, zero inside it.
func DaysOverdue(issue time.Time, returned *time.Time, now time.Time) int64 {
	at := now
	if returned != nil {
		at = *returned
	}
	d := ElapsedDays(issue, at)
	if d <= GraceDays {
		return 0
	}
	return d - GraceDays
}

// Format renders a fine for display with the fixed currency symbol.
func Format(amount int64) string {
	return "₹" + strconv.FormatInt(amount, 10)
}
