package calendar

import (
	"time"

	"github.com/meenmo/capfloor/market"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NONE treats every day as a business day.
	NONE    CalendarID = "NONE"
	WEEKEND CalendarID = "WEEKEND"
	TARGET  CalendarID = "TARGET"
	USD     CalendarID = "USD"
	JPN     CalendarID = "JPN"
	KRW     CalendarID = "KRW"
)

// Valid reports whether cal is a known calendar.
func (cal CalendarID) Valid() bool {
	switch cal {
	case NONE, WEEKEND, TARGET, USD, JPN, KRW:
		return true
	default:
		return false
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTargetHoliday(t)
	case USD:
		return isUSDHoliday(t)
	case JPN:
		return isJPNHoliday(t)
	case KRW:
		return isKRWHoliday(t)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == NONE {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t onto a business day of cal using the given convention.
func Adjust(cal CalendarID, t time.Time, rule market.BusinessDayAdjustment) time.Time {
	switch rule {
	case market.Following:
		return AdjustFollowing(cal, t)
	case market.ModifiedFollowing:
		return AdjustModifiedFollowing(cal, t)
	case market.Preceding:
		return AdjustPreceding(cal, t)
	case market.ModifiedPreceding:
		return AdjustModifiedPreceding(cal, t)
	default:
		return t
	}
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustPreceding applies the Preceding convention.
func AdjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AdjustModifiedFollowing applies Modified Following.
func AdjustModifiedFollowing(cal CalendarID, t time.Time) time.Time {
	adj := AdjustFollowing(cal, t)
	if adj.Month() != t.Month() {
		return AdjustPreceding(cal, t)
	}
	return adj
}

// AdjustModifiedPreceding applies Modified Preceding.
func AdjustModifiedPreceding(cal CalendarID, t time.Time) time.Time {
	adj := AdjustPreceding(cal, t)
	if adj.Month() != t.Month() {
		return AdjustFollowing(cal, t)
	}
	return adj
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
