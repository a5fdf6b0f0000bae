package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/capfloor/calendar"
	"github.com/meenmo/capfloor/market"
	"github.com/meenmo/capfloor/utils"
)

// Generate builds the accrual period boundary dates between start and end.
//
// The first element is always the unadjusted start date. Every later date is
// business-day adjusted on cal with adj; the last one is the adjusted end date.
// With market.GenBackward dates are rolled from end (front stub), with
// market.GenForward from start (back stub). Rolls are taken from the anchor date
// each time so month-end dates do not drift.
func Generate(
	start, end time.Time,
	freq market.Frequency,
	cal calendar.CalendarID,
	adj market.BusinessDayAdjustment,
	rule market.DateGenRule,
) ([]time.Time, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("Generate: end %s not after start %s", end.Format(utils.DateLayout), start.Format(utils.DateLayout))
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("Generate: unsupported frequency %d", freq)
	}

	var unadjusted []time.Time
	switch rule {
	case market.GenBackward:
		unadjusted = rollBackward(start, end, freq.Months())
	case market.GenForward:
		unadjusted = rollForward(start, end, freq.Months())
	default:
		return nil, fmt.Errorf("Generate: unsupported date generation rule %q", rule)
	}

	dates := make([]time.Time, 0, len(unadjusted))
	dates = append(dates, start)
	for _, d := range unadjusted[1:] {
		a := calendar.Adjust(cal, d, adj)
		// Adjustment can pull two rolls onto the same business day.
		if !a.After(dates[len(dates)-1]) {
			continue
		}
		dates = append(dates, a)
	}
	return dates, nil
}

const minStubDays = 7

func rollBackward(start, end time.Time, months int) []time.Time {
	var rolled []time.Time
	for k := 0; ; k++ {
		d := utils.AddMonth(end, -k*months)
		if !d.After(start) {
			break
		}
		rolled = append(rolled, d)
	}
	// A roll landing within a week of start would leave a tiny front stub;
	// merge it into the first period instead.
	if n := len(rolled); n > 1 && utils.Days(start, rolled[n-1]) <= minStubDays {
		rolled = rolled[:n-1]
	}
	out := make([]time.Time, 0, len(rolled)+1)
	out = append(out, start)
	for i := len(rolled) - 1; i >= 0; i-- {
		out = append(out, rolled[i])
	}
	return out
}

func rollForward(start, end time.Time, months int) []time.Time {
	out := []time.Time{start}
	for k := 1; ; k++ {
		d := utils.AddMonth(start, k*months)
		if !d.Before(end) {
			break
		}
		out = append(out, d)
	}
	return append(out, end)
}
