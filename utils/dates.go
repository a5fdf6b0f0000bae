package utils

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/capfloor/market"
)

// DateLayout is the YYYY-MM-DD layout used for all date strings.
const DateLayout = "2006-01-02"

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// ParseDate converts YYYY-MM-DD to a UTC time.Time.
func ParseDate(strDate string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: %w", err)
	}
	return t, nil
}

// Days returns the number of calendar days between two dates.
func Days(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Hours()) / 24
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// AddTenor moves t forward by tenor without business-day adjustment.
func AddTenor(t time.Time, tenor market.Tenor) time.Time {
	switch tenor.Unit {
	case market.Days:
		return t.AddDate(0, 0, tenor.N)
	case market.Weeks:
		return t.AddDate(0, 0, 7*tenor.N)
	case market.Months:
		return AddMonth(t, tenor.N)
	case market.Years:
		return AddMonth(t, 12*tenor.N)
	default:
		return t
	}
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
