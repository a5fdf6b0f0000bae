package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/capfloor/market"
	"github.com/meenmo/capfloor/utils"
)

// curveDayCount is the time axis used for interpolation and zero rates.
// Leg-specific day counts are only used for forward-rate accruals.
const curveDayCount = market.Act365F

// Curve is a discount curve defined by discount factor pillars.
//
// DFs are interpolated log-linearly (piecewise flat forwards) on an ACT/365F axis;
// outside the pillar range the nearest segment's forward rate is extended.
type Curve struct {
	settlement      time.Time
	dates           []time.Time
	discountFactors map[time.Time]float64
}

// NewCurveFromDFs creates a curve from explicitly provided discount factors.
//
// A pillar at settlement with DF 1.0 is added when missing. Every DF must be positive.
func NewCurveFromDFs(settlement time.Time, dfs map[time.Time]float64) (*Curve, error) {
	if settlement.IsZero() {
		return nil, fmt.Errorf("NewCurveFromDFs: settlement date is required")
	}
	c := &Curve{
		settlement:      settlement,
		discountFactors: make(map[time.Time]float64, len(dfs)+1),
	}
	for t, df := range dfs {
		if !(df > 0) || math.IsInf(df, 0) {
			return nil, fmt.Errorf("NewCurveFromDFs: invalid discount factor %v at %s", df, t.Format(utils.DateLayout))
		}
		if t.Before(settlement) {
			return nil, fmt.Errorf("NewCurveFromDFs: pillar %s before settlement %s", t.Format(utils.DateLayout), settlement.Format(utils.DateLayout))
		}
		c.discountFactors[t] = df
	}
	if _, ok := c.discountFactors[settlement]; !ok {
		c.discountFactors[settlement] = 1.0
	}
	for t := range c.discountFactors {
		c.dates = append(c.dates, t)
	}
	utils.SortDates(c.dates)
	return c, nil
}

// DF returns the discount factor at t.
func (c *Curve) DF(t time.Time) float64 {
	if df, ok := c.discountFactors[t]; ok {
		return df
	}
	if len(c.dates) < 2 {
		// Only the settlement pillar: flat zero rate of 0.
		return 1.0
	}

	d1, d2 := findBracketOrBoundary(c.dates, t)
	df1 := c.discountFactors[d1]
	df2 := c.discountFactors[d2]

	t1 := utils.YearFraction(c.settlement, d1, curveDayCount)
	t2 := utils.YearFraction(c.settlement, d2, curveDayCount)
	tTarget := utils.YearFraction(c.settlement, t, curveDayCount)

	if t2 == t1 {
		return df1
	}

	fwd := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-fwd*(tTarget-t1))
}

// ZeroRateAt returns the continuously-compounded zero rate (in percent) at t.
func (c *Curve) ZeroRateAt(t time.Time) float64 {
	return zeroRate(c, c.settlement, t)
}

// ForwardRate returns the simple forward rate over [start, end] accrued on dayCount.
func (c *Curve) ForwardRate(start, end time.Time, dayCount market.DayCount) float64 {
	return forwardRate(c, start, end, dayCount)
}

// FlatCurve discounts at a single continuously-compounded rate.
type FlatCurve struct {
	settlement time.Time
	rate       float64
}

// NewFlatCurve returns a curve with DF(t) = exp(-rate * tau(settlement, t)).
func NewFlatCurve(settlement time.Time, rate float64) *FlatCurve {
	return &FlatCurve{settlement: settlement, rate: rate}
}

func (c *FlatCurve) DF(t time.Time) float64 {
	tau := utils.YearFraction(c.settlement, t, curveDayCount)
	return math.Exp(-c.rate * tau)
}

func (c *FlatCurve) ZeroRateAt(t time.Time) float64 {
	return zeroRate(c, c.settlement, t)
}

func (c *FlatCurve) ForwardRate(start, end time.Time, dayCount market.DayCount) float64 {
	return forwardRate(c, start, end, dayCount)
}

type discounter interface {
	DF(t time.Time) float64
}

func zeroRate(c discounter, settlement, t time.Time) float64 {
	tau := utils.YearFraction(settlement, t, curveDayCount)
	if tau == 0 {
		return 0
	}
	return -math.Log(c.DF(t)) / tau * 100.0
}

func forwardRate(c discounter, start, end time.Time, dayCount market.DayCount) float64 {
	alpha := utils.YearFraction(start, end, dayCount)
	if alpha == 0 {
		return 0
	}
	return (c.DF(start)/c.DF(end) - 1.0) / alpha
}
