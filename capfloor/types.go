package capfloor

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/meenmo/capfloor/market"
)

var (
	// ErrInvalidInput reports bad constructor arguments or unrecognized enumerations.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSchedule reports a negative strike or a schedule without optional periods.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidModel reports model parameters or market inputs the model cannot price.
	ErrInvalidModel = errors.New("invalid model")

	// ErrUnsupportedModel is returned for a model outside Black, ShiftedBlack and SABR.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = fmt.Errorf("nil curve: %w", ErrInvalidInput)
)

// OptionType distinguishes caps from floors.
type OptionType string

const (
	Cap   OptionType = "CAP"
	Floor OptionType = "FLOOR"
)

// Valid reports whether o is CAP or FLOOR.
func (o OptionType) Valid() bool {
	return o == Cap || o == Floor
}

// RateCurve provides discount factors and forward rates for valuation.
type RateCurve interface {
	DF(t time.Time) float64
	ForwardRate(start, end time.Time, dayCount market.DayCount) float64
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
