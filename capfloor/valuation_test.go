package capfloor_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/capfloor/calendar"
	"github.com/meenmo/capfloor/capfloor"
	"github.com/meenmo/capfloor/curve"
	"github.com/meenmo/capfloor/market"
	"github.com/meenmo/capfloor/model"
	"github.com/meenmo/capfloor/utils"
)

// flatForwardCurve returns the same forward for every period and discounts at a
// continuously-compounded rate from settlement.
type flatForwardCurve struct {
	settlement time.Time
	fwd        float64
	rate       float64
}

func (c flatForwardCurve) DF(t time.Time) float64 {
	return math.Exp(-c.rate * utils.Days(c.settlement, t) / 365.0)
}

func (c flatForwardCurve) ForwardRate(start, end time.Time, dc market.DayCount) float64 {
	return c.fwd
}

// customModel satisfies model.Model through embedding but is not a known variant.
type customModel struct {
	model.Black
}

var valuationDate = date(2023, 1, 1)

func newTrade(t *testing.T, opt capfloor.OptionType, strike float64) *capfloor.CapFloor {
	t.Helper()
	notional := 1_000_000.0
	cf, err := capfloor.New(capfloor.Params{
		StartDate:    date(2023, 1, 1),
		MaturityDate: date(2024, 1, 1),
		OptionType:   opt,
		StrikeRate:   strike,
		Frequency:    market.FreqQuarterly,
		Notional:     &notional,
		Calendar:     calendar.NONE,
	})
	require.NoError(t, err)
	return cf
}

func testCurve() flatForwardCurve {
	return flatForwardCurve{settlement: valuationDate, fwd: 0.035, rate: 0.001}
}

func TestValue_QuarterlyCapScenario(t *testing.T) {
	t.Parallel()

	cf := newTrade(t, capfloor.Cap, 0.03)
	pv, err := cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.20})
	require.NoError(t, err)

	assert.Greater(t, pv, 0.0)
	assert.False(t, math.IsInf(pv, 0) || math.IsNaN(pv))

	res, ok := cf.Result()
	require.True(t, ok)
	require.Equal(t, 5, res.Len())

	// First period is intrinsic only.
	assert.Equal(t, 0.25, res.Alphas[1])
	df1 := res.DiscountFactors[1]
	assert.InDelta(t, 1_000_000*0.25*df1*math.Max(0.035-0.03, 0), res.Values[1], 1e-9)
	assert.Equal(t, res.Values[1], res.Intrinsic[1])
	assert.Equal(t, 0.035, res.ForwardRates[1])

	// Later periods carry time value on top of intrinsic.
	for i := 2; i < res.Len(); i++ {
		assert.Greater(t, res.Values[i], res.Intrinsic[i], "period %d", i)
	}
	assert.Equal(t, pv, res.PV())

	vd, ok := cf.ValuationDate()
	require.True(t, ok)
	assert.True(t, vd.Equal(valuationDate))
}

func TestValue_SeriesAlignment(t *testing.T) {
	t.Parallel()

	cf, err := capfloor.New(capfloor.Params{
		StartDate:     date(2023, 2, 15),
		MaturityTenor: "5Y",
		OptionType:    capfloor.Floor,
		StrikeRate:    0.04,
		Frequency:     market.FreqSemi,
		DayCount:      market.Act360,
		Calendar:      calendar.TARGET,
		BusDayAdjust:  market.ModifiedFollowing,
	})
	require.NoError(t, err)

	_, err = cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.3})
	require.NoError(t, err)

	res, ok := cf.Result()
	require.True(t, ok)
	n := len(res.Dates)
	assert.Equal(t, 11, n)
	assert.Len(t, res.Alphas, n)
	assert.Len(t, res.ForwardRates, n)
	assert.Len(t, res.Intrinsic, n)
	assert.Len(t, res.DiscountFactors, n)
	assert.Len(t, res.Values, n)
	assert.Len(t, res.CumulativePV, n)

	// Sentinel row.
	assert.True(t, res.Dates[0].Equal(date(2023, 2, 15)))
	assert.Equal(t, 0.0, res.Alphas[0])
	assert.Equal(t, 0.0, res.ForwardRates[0])
	assert.Equal(t, 0.0, res.Intrinsic[0])
	assert.Equal(t, 1.0, res.DiscountFactors[0])
	assert.Equal(t, 0.0, res.Values[0])
	assert.Equal(t, 0.0, res.CumulativePV[0])

	cum := 0.0
	for i := 1; i < n; i++ {
		cum += res.Values[i]
		assert.InDelta(t, cum, res.CumulativePV[i], 1e-9)
	}
}

func TestValue_RepeatedCallsReplaceResult(t *testing.T) {
	t.Parallel()

	cf := newTrade(t, capfloor.Cap, 0.03)
	low, err := cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.1})
	require.NoError(t, err)
	high, err := cf.Value(date(2022, 12, 1), testCurve(), model.Black{Volatility: 0.4})
	require.NoError(t, err)
	assert.Greater(t, high, low)

	res, ok := cf.Result()
	require.True(t, ok)
	assert.Equal(t, 5, res.Len())
	assert.Equal(t, high, res.PV())
	assert.True(t, res.ValuationDate.Equal(date(2022, 12, 1)))

	// The returned copy does not alias internal state.
	res.Values[1] = -1
	again, _ := cf.Result()
	assert.NotEqual(t, -1.0, again.Values[1])
}

func TestValue_FailureKeepsPreviousResult(t *testing.T) {
	t.Parallel()

	cf := newTrade(t, capfloor.Cap, 0.03)
	pv, err := cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.2})
	require.NoError(t, err)
	before, _ := cf.Result()

	_, err = cf.Value(date(2022, 6, 1), testCurve(), model.Black{Volatility: -0.1})
	require.True(t, errors.Is(err, capfloor.ErrInvalidModel))

	after, ok := cf.Result()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, pv, after.PV())
}

func TestValue_PutCallParity(t *testing.T) {
	t.Parallel()

	crv := curve.NewFlatCurve(valuationDate, 0.03)
	models := []model.Model{
		model.Black{Volatility: 0.25},
		model.ShiftedBlack{Volatility: 0.15, Shift: -0.02},
		model.SABR{Alpha: 0.03, Beta: 0.5, Rho: -0.3, Nu: 0.5},
	}

	for _, m := range models {
		capTrade := newTrade(t, capfloor.Cap, 0.028)
		floorTrade := newTrade(t, capfloor.Floor, 0.028)

		_, err := capTrade.Value(valuationDate, crv, m)
		require.NoError(t, err, m.String())
		_, err = floorTrade.Value(valuationDate, crv, m)
		require.NoError(t, err, m.String())

		c, _ := capTrade.Result()
		f, _ := floorTrade.Result()
		for i := 1; i < c.Len(); i++ {
			fra := 1_000_000 * c.Alphas[i] * c.DiscountFactors[i] * (c.ForwardRates[i] - 0.028)
			assert.InDelta(t, fra, c.Values[i]-f.Values[i], 1e-6, "%s period %d", m, i)
		}
	}
}

func TestValue_MonotoneInVolatility(t *testing.T) {
	t.Parallel()

	for _, opt := range []capfloor.OptionType{capfloor.Cap, capfloor.Floor} {
		prev := -1.0
		for _, vol := range []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.8} {
			cf := newTrade(t, opt, 0.035)
			pv, err := cf.Value(valuationDate, testCurve(), model.Black{Volatility: vol})
			require.NoError(t, err)
			assert.Greater(t, pv, prev, "%s vol=%g", opt, vol)
			prev = pv
		}
	}
}

func TestValue_LastFixingDrivesFirstPeriod(t *testing.T) {
	t.Parallel()

	fixing := 0.05
	cf, err := capfloor.New(capfloor.Params{
		StartDate:    date(2023, 1, 1),
		MaturityDate: date(2024, 1, 1),
		OptionType:   capfloor.Cap,
		StrikeRate:   0.03,
		LastFixing:   &fixing,
		Calendar:     calendar.NONE,
	})
	require.NoError(t, err)

	_, err = cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.2})
	require.NoError(t, err)

	res, _ := cf.Result()
	assert.Equal(t, 0.05, res.ForwardRates[1])
	assert.InDelta(t, 1_000_000*0.25*res.DiscountFactors[1]*0.02, res.Values[1], 1e-9)
	assert.Equal(t, 0.035, res.ForwardRates[2])
}

func TestValue_FirstPeriodIgnoresModel(t *testing.T) {
	t.Parallel()

	a := newTrade(t, capfloor.Cap, 0.03)
	b := newTrade(t, capfloor.Cap, 0.03)
	_, err := a.Value(valuationDate, testCurve(), model.Black{Volatility: 0.05})
	require.NoError(t, err)
	_, err = b.Value(valuationDate, testCurve(), model.SABR{Alpha: 0.5, Beta: 1, Rho: 0, Nu: 0})
	require.NoError(t, err)

	ra, _ := a.Result()
	rb, _ := b.Result()
	assert.Equal(t, ra.Values[1], rb.Values[1])
	assert.NotEqual(t, ra.Values[2], rb.Values[2])
}

func TestValue_Errors(t *testing.T) {
	t.Parallel()

	crv := testCurve()

	_, err := newTrade(t, capfloor.Cap, -0.01).Value(valuationDate, crv, model.Black{Volatility: 0.2})
	assert.True(t, errors.Is(err, capfloor.ErrInvalidSchedule), "negative strike: %v", err)

	// 2023-01-01 + 3M rolls to Monday 2023-04-03; the 2-day front stub is dropped.
	onePeriod, err := capfloor.New(capfloor.Params{
		StartDate:     date(2023, 1, 1),
		MaturityTenor: "3M",
		OptionType:    capfloor.Cap,
		StrikeRate:    0.03,
		Frequency:     market.FreqQuarterly,
	})
	require.NoError(t, err)
	_, err = onePeriod.Value(valuationDate, crv, model.Black{Volatility: 0.2})
	assert.True(t, errors.Is(err, capfloor.ErrInvalidSchedule), "one period: %v", err)
	_, ok := onePeriod.Result()
	assert.False(t, ok)

	_, err = newTrade(t, capfloor.Cap, 0.03).Value(valuationDate, crv, model.Black{Volatility: -0.1})
	assert.True(t, errors.Is(err, capfloor.ErrInvalidModel), "negative vol: %v", err)

	_, err = newTrade(t, capfloor.Cap, 0.03).Value(valuationDate, crv, customModel{model.Black{Volatility: 0.2}})
	assert.True(t, errors.Is(err, capfloor.ErrUnsupportedModel), "custom model: %v", err)

	_, err = newTrade(t, capfloor.Cap, 0.03).Value(valuationDate, crv, nil)
	assert.True(t, errors.Is(err, capfloor.ErrUnsupportedModel), "nil model: %v", err)

	_, err = newTrade(t, capfloor.Cap, 0.03).Value(valuationDate, nil, model.Black{Volatility: 0.2})
	assert.True(t, errors.Is(err, capfloor.ErrNilCurve))
	assert.True(t, errors.Is(err, capfloor.ErrInvalidInput))

	var nilCurve *curve.Curve
	_, err = newTrade(t, capfloor.Cap, 0.03).Value(valuationDate, nilCurve, model.Black{Volatility: 0.2})
	assert.True(t, errors.Is(err, capfloor.ErrNilCurve))
}

func TestPrintLeg(t *testing.T) {
	t.Parallel()

	cf := newTrade(t, capfloor.Floor, 0.04)

	var before bytes.Buffer
	require.NoError(t, cf.PrintLeg(&before))
	assert.Contains(t, before.String(), "STRIKE (%): 4\n")
	assert.Contains(t, before.String(), "Caplets not calculated.")

	_, err := cf.Value(valuationDate, testCurve(), model.Black{Volatility: 0.2})
	require.NoError(t, err)

	var after bytes.Buffer
	require.NoError(t, cf.PrintLeg(&after))
	out := after.String()
	assert.NotContains(t, out, "Caplets not calculated.")
	assert.Contains(t, out, "FLRLET_PV")
	assert.Contains(t, out, "VALUATION DATE: 2023-01-01")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// 7 term lines, 1 header, 5 rows.
	require.Len(t, lines, 13)
	assert.Contains(t, lines[8], "2023-01-01")
	assert.Contains(t, lines[12], "2024-01-01")
}

func TestString(t *testing.T) {
	t.Parallel()

	cf := newTrade(t, capfloor.Cap, 0.035)
	want := "START DATE: 2023-01-01\n" +
		"MATURITY DATE: 2024-01-01\n" +
		"STRIKE COUPON: 3.5\n" +
		"OPTION TYPE: CAP\n" +
		"FREQUENCY: QUARTERLY\n" +
		"DAY COUNT: 30E/360 ISDA"
	assert.Equal(t, want, cf.String())
}
