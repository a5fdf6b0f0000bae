package capfloor

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/capfloor/config"
	"github.com/meenmo/capfloor/model"
	"github.com/meenmo/capfloor/utils"
)

// PriceCaplet returns the discounted value per unit notional and per unit accrual of
// the caplet (or floorlet) fixing on start and paying on end.
//
// Time to expiry is the calendar-day distance from valuationDate to start divided by
// config.DaysInYear. A zero strike is replaced by config.StrikeFloor. Once the fixing
// date is on or before valuationDate the option has no time value and the discounted
// intrinsic value is returned.
func (cf *CapFloor) PriceCaplet(valuationDate, start, end time.Time, crv RateCurve, m model.Model) (float64, error) {
	if isNilInterface(crv) {
		return 0, fmt.Errorf("PriceCaplet: %w", ErrNilCurve)
	}
	cfg := config.GetConfig()

	df := crv.DF(end)
	t := utils.Days(valuationDate, start) / cfg.DaysInYear
	f := crv.ForwardRate(start, end, cf.dayCount)
	k := cf.strikeRate
	if k == 0 {
		k = cfg.StrikeFloor
	}

	switch m := concrete(m).(type) {
	case model.Black:
		v := m.Volatility
		if v < 0 {
			return 0, fmt.Errorf("PriceCaplet: Black volatility %g must be non-negative: %w", v, ErrInvalidModel)
		}
		if v == 0 {
			v = cfg.VolFloor
		}
		if f <= 0 {
			return 0, fmt.Errorf("PriceCaplet: forward %g must be positive in lognormal model: %w", f, ErrInvalidModel)
		}
		return cf.black(df, f, k, v, t), nil

	case model.ShiftedBlack:
		v, h := m.Volatility, m.Shift
		if v <= 0 {
			return 0, fmt.Errorf("PriceCaplet: shifted Black volatility %g must be positive: %w", v, ErrInvalidModel)
		}
		if f-h <= 0 || k-h <= 0 {
			return 0, fmt.Errorf("PriceCaplet: shifted forward %g and strike %g must be positive: %w", f-h, k-h, ErrInvalidModel)
		}
		return cf.black(df, f-h, k-h, v, t), nil

	case model.SABR:
		v, err := model.BlackVolFromSABR(m.Alpha, m.Beta, m.Rho, m.Nu, f, k, t)
		if err != nil {
			return 0, fmt.Errorf("PriceCaplet: %w: %w", ErrInvalidModel, err)
		}
		return cf.black(df, f, k, v, t), nil

	default:
		return 0, fmt.Errorf("PriceCaplet: %v: %w", m, ErrUnsupportedModel)
	}
}

// concrete dereferences pointers to the model variants so both forms price alike.
func concrete(m model.Model) model.Model {
	switch p := m.(type) {
	case *model.Black:
		if p != nil {
			return *p
		}
	case *model.ShiftedBlack:
		if p != nil {
			return *p
		}
	case *model.SABR:
		if p != nil {
			return *p
		}
	}
	return m
}

// black is the Black-76 caplet (call) or floorlet (put) on forward f and strike k,
// discounted with df.
func (cf *CapFloor) black(df, f, k, v, t float64) float64 {
	if t <= 0 {
		return df * cf.payoff(f, k)
	}
	sd := v * math.Sqrt(t)
	d1 := (math.Log(f/k) + sd*sd/2.0) / sd
	d2 := d1 - sd

	n := distuv.UnitNormal
	if cf.optionType == Floor {
		return df * (k*n.CDF(-d2) - f*n.CDF(-d1))
	}
	return df * (f*n.CDF(d1) - k*n.CDF(d2))
}
