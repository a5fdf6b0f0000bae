package utils

import (
	"time"

	"github.com/meenmo/capfloor/market"
)

// YearFraction computes year fraction between two dates using the specified day count convention.
// Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention market.DayCount) float64 {
	switch convention {
	case market.Act360:
		return Days(start, end) / 360.0
	case market.Act365F:
		return Days(start, end) / 365.0
	case market.ActActISDA:
		return actActISDA(start, end)
	case market.Dc30360Bond:
		d1, d2 := start.Day(), end.Day()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case market.Dc30E360:
		// D1 and D2 are capped at 30
		return thirty360(start, end, min(start.Day(), 30), min(end.Day(), 30))
	case market.Dc30E360ISDA:
		d1, d2 := start.Day(), end.Day()
		if isMonthEnd(start) {
			d1 = 30
		}
		if isMonthEnd(end) {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	default:
		return Days(start, end) / 365.0
	}
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

func isMonthEnd(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

func daysInYear(y int) float64 {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}

// actActISDA splits the interval at calendar year boundaries.
func actActISDA(start, end time.Time) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	y1, y2 := start.Year(), end.Year()
	if y1 == y2 {
		return Days(start, end) / daysInYear(y1)
	}
	frac := Days(start, time.Date(y1+1, 1, 1, 0, 0, 0, 0, time.UTC)) / daysInYear(y1)
	frac += float64(y2 - y1 - 1)
	frac += Days(time.Date(y2, 1, 1, 0, 0, 0, 0, time.UTC), end) / daysInYear(y2)
	return frac
}
