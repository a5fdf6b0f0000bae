package capfloor

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/capfloor/model"
	"github.com/meenmo/capfloor/schedule"
	"github.com/meenmo/capfloor/utils"
)

var log = zerolog.Nop()

// SetLogger replaces the package logger used for valuation diagnostics.
// It is meant to be called once during program setup.
func SetLogger(l zerolog.Logger) {
	log = l
}

// Value prices the cap/floor and returns its present value.
//
// The first period is valued at intrinsic value only: its rate is LastFixing when
// supplied, otherwise the curve forward. Later periods are priced with m. On success
// the diagnostics returned by Result are replaced; on failure they are left as they were.
func (cf *CapFloor) Value(valuationDate time.Time, crv RateCurve, m model.Model) (float64, error) {
	if isNilInterface(crv) {
		return 0, fmt.Errorf("Value: %w", ErrNilCurve)
	}

	dates, err := schedule.Generate(cf.startDate, cf.maturityDate, cf.frequency, cf.calendar, cf.busDayAdjust, cf.dateGenRule)
	if err != nil {
		return 0, fmt.Errorf("Value: %w: %w", ErrInvalidSchedule, err)
	}
	if cf.strikeRate < 0 {
		return 0, fmt.Errorf("Value: strike %g < 0: %w", cf.strikeRate, ErrInvalidSchedule)
	}
	// Period 1 has a known payoff, so at least one more period is needed for any optionality.
	if len(dates) < 3 {
		return 0, fmt.Errorf("Value: schedule has %d period(s), need at least 2: %w", len(dates)-1, ErrInvalidSchedule)
	}

	res := newResult(valuationDate, dates[0], len(dates))
	pv := 0.0

	start, end := dates[0], dates[1]
	fwd, ok := cf.LastFixing()
	if !ok {
		fwd = crv.ForwardRate(start, end, cf.dayCount)
	}
	alpha := utils.YearFraction(start, end, cf.dayCount)
	df := crv.DF(end)
	value := cf.notional * alpha * df * cf.payoff(fwd, cf.strikeRate)
	pv += value
	res.add(end, alpha, fwd, value, df, value, pv)

	for i := 2; i < len(dates); i++ {
		start, end = dates[i-1], dates[i]
		alpha = utils.YearFraction(start, end, cf.dayCount)
		df = crv.DF(end)
		fwd = crv.ForwardRate(start, end, cf.dayCount)

		intrinsic := cf.notional * alpha * df * cf.payoff(fwd, cf.strikeRate)

		unit, err := cf.PriceCaplet(valuationDate, start, end, crv, m)
		if err != nil {
			return 0, fmt.Errorf("Value: period %d (%s to %s): %w", i,
				start.Format(utils.DateLayout), end.Format(utils.DateLayout), err)
		}
		value = unit * cf.notional * alpha
		pv += value
		res.add(end, alpha, fwd, intrinsic, df, value, pv)
	}

	cf.result = res

	log.Debug().
		Str("option_type", string(cf.optionType)).
		Str("valuation_date", valuationDate.Format(utils.DateLayout)).
		Stringer("model", m).
		Int("periods", len(dates)-1).
		Float64("pv", pv).
		Msg("capfloor valued")

	return pv, nil
}

// payoff is the undiscounted, unscaled exercise value at rate f.
func (cf *CapFloor) payoff(f, k float64) float64 {
	if cf.optionType == Floor {
		return math.Max(k-f, 0)
	}
	return math.Max(f-k, 0)
}
