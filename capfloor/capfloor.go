// Package capfloor values interest-rate caps and floors as strips of caplets or
// floorlets priced under Black, shifted Black or SABR volatility.
//
// A CapFloor holds immutable trade terms plus the diagnostics of its most recent
// successful valuation. Value replaces those diagnostics, so a single CapFloor must
// not be valued from several goroutines at once; distinct instances are independent.
package capfloor

import (
	"fmt"
	"time"

	"github.com/meenmo/capfloor/calendar"
	"github.com/meenmo/capfloor/config"
	"github.com/meenmo/capfloor/market"
	"github.com/meenmo/capfloor/utils"
)

// Params defines inputs to construct a cap or floor.
//
// Exactly one of MaturityDate and MaturityTenor must be set. A tenor maturity is
// resolved from StartDate and rolled onto a business day of Calendar.
// Zero-valued conventions take their defaults: QUARTERLY, 30E/360 ISDA, WEEKEND,
// FOLLOWING and BACKWARD. A nil Notional takes config.DefaultNotional; an explicit
// Notional must be positive.
type Params struct {
	StartDate     time.Time
	MaturityDate  time.Time
	MaturityTenor string

	OptionType OptionType

	// StrikeRate is a decimal (0.03 == 3%).
	StrikeRate float64

	// LastFixing, when set, is used as the first period's rate instead of the curve.
	LastFixing *float64

	Frequency    market.Frequency
	DayCount     market.DayCount
	Notional     *float64
	Calendar     calendar.CalendarID
	BusDayAdjust market.BusinessDayAdjustment
	DateGenRule  market.DateGenRule
}

// CapFloor is a strip of caplets or floorlets sharing strike, notional and schedule.
type CapFloor struct {
	startDate    time.Time
	maturityDate time.Time
	optionType   OptionType
	strikeRate   float64
	lastFixing   *float64
	frequency    market.Frequency
	dayCount     market.DayCount
	notional     float64
	calendar     calendar.CalendarID
	busDayAdjust market.BusinessDayAdjustment
	dateGenRule  market.DateGenRule

	// result is nil until the first successful Value call.
	result *Result
}

func withDefaults(p Params) Params {
	if p.Frequency == 0 {
		p.Frequency = market.FreqQuarterly
	}
	if p.DayCount == "" {
		p.DayCount = market.Dc30E360ISDA
	}
	if p.Calendar == "" {
		p.Calendar = calendar.WEEKEND
	}
	if p.BusDayAdjust == "" {
		p.BusDayAdjust = market.Following
	}
	if p.DateGenRule == "" {
		p.DateGenRule = market.GenBackward
	}
	return p
}

// New validates params and builds a CapFloor.
//
// Every validation failure wraps ErrInvalidInput.
func New(params Params) (*CapFloor, error) {
	p := withDefaults(params)

	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("New: start date is required: %w", ErrInvalidInput)
	}
	if !p.Calendar.Valid() {
		return nil, fmt.Errorf("New: unknown calendar %q: %w", p.Calendar, ErrInvalidInput)
	}
	if !p.BusDayAdjust.Valid() {
		return nil, fmt.Errorf("New: unknown business day adjustment %q: %w", p.BusDayAdjust, ErrInvalidInput)
	}

	maturity, err := resolveMaturity(p)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if !p.StartDate.Before(maturity) {
		return nil, fmt.Errorf("New: start date %s must be before maturity %s: %w",
			p.StartDate.Format(utils.DateLayout), maturity.Format(utils.DateLayout), ErrInvalidInput)
	}

	if !p.OptionType.Valid() {
		return nil, fmt.Errorf("New: unknown option type %q: %w", p.OptionType, ErrInvalidInput)
	}
	if !p.DayCount.Valid() {
		return nil, fmt.Errorf("New: unknown day count %q: %w", p.DayCount, ErrInvalidInput)
	}
	if !p.Frequency.Valid() {
		return nil, fmt.Errorf("New: unknown frequency %d: %w", p.Frequency, ErrInvalidInput)
	}
	if !p.DateGenRule.Valid() {
		return nil, fmt.Errorf("New: unknown date generation rule %q: %w", p.DateGenRule, ErrInvalidInput)
	}

	notional := config.GetConfig().DefaultNotional
	if p.Notional != nil {
		notional = *p.Notional
		if !(notional > 0) {
			return nil, fmt.Errorf("New: notional %g must be positive: %w", notional, ErrInvalidInput)
		}
	}

	var lastFixing *float64
	if p.LastFixing != nil {
		v := *p.LastFixing
		lastFixing = &v
	}

	return &CapFloor{
		startDate:    p.StartDate,
		maturityDate: maturity,
		optionType:   p.OptionType,
		strikeRate:   p.StrikeRate,
		lastFixing:   lastFixing,
		frequency:    p.Frequency,
		dayCount:     p.DayCount,
		notional:     notional,
		calendar:     p.Calendar,
		busDayAdjust: p.BusDayAdjust,
		dateGenRule:  p.DateGenRule,
	}, nil
}

func resolveMaturity(p Params) (time.Time, error) {
	hasDate := !p.MaturityDate.IsZero()
	hasTenor := p.MaturityTenor != ""
	switch {
	case hasDate && hasTenor:
		return time.Time{}, fmt.Errorf("maturity date and tenor are mutually exclusive: %w", ErrInvalidInput)
	case hasDate:
		return p.MaturityDate, nil
	case hasTenor:
		tenor, err := market.ParseTenor(p.MaturityTenor)
		if err != nil {
			return time.Time{}, fmt.Errorf("%v: %w", err, ErrInvalidInput)
		}
		unadjusted := utils.AddTenor(p.StartDate, tenor)
		return calendar.Adjust(p.Calendar, unadjusted, p.BusDayAdjust), nil
	default:
		return time.Time{}, fmt.Errorf("maturity date or tenor is required: %w", ErrInvalidInput)
	}
}

func (cf *CapFloor) StartDate() time.Time                       { return cf.startDate }
func (cf *CapFloor) MaturityDate() time.Time                    { return cf.maturityDate }
func (cf *CapFloor) OptionType() OptionType                     { return cf.optionType }
func (cf *CapFloor) StrikeRate() float64                        { return cf.strikeRate }
func (cf *CapFloor) Frequency() market.Frequency                { return cf.frequency }
func (cf *CapFloor) DayCount() market.DayCount                  { return cf.dayCount }
func (cf *CapFloor) Notional() float64                          { return cf.notional }
func (cf *CapFloor) Calendar() calendar.CalendarID              { return cf.calendar }
func (cf *CapFloor) BusDayAdjust() market.BusinessDayAdjustment { return cf.busDayAdjust }
func (cf *CapFloor) DateGenRule() market.DateGenRule            { return cf.dateGenRule }

// LastFixing returns the known first-period rate, if one was supplied.
func (cf *CapFloor) LastFixing() (float64, bool) {
	if cf.lastFixing == nil {
		return 0, false
	}
	return *cf.lastFixing, true
}

// ValuationDate returns the date of the last successful valuation.
func (cf *CapFloor) ValuationDate() (time.Time, bool) {
	if cf.result == nil {
		return time.Time{}, false
	}
	return cf.result.ValuationDate, true
}
