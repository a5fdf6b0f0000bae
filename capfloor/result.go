package capfloor

import "time"

// Result holds the per-period diagnostics of one valuation.
//
// All slices are index-aligned with Dates. Index 0 is a sentinel for the start date
// (no accrual: alpha 0, forward 0, intrinsic 0, DF 1, value 0, cumulative 0); index
// i >= 1 describes the period ending on Dates[i].
type Result struct {
	ValuationDate time.Time

	Dates           []time.Time
	Alphas          []float64
	ForwardRates    []float64
	Intrinsic       []float64
	DiscountFactors []float64
	Values          []float64
	CumulativePV    []float64
}

func newResult(valuationDate time.Time, start time.Time, capacity int) *Result {
	r := &Result{
		ValuationDate:   valuationDate,
		Dates:           make([]time.Time, 0, capacity),
		Alphas:          make([]float64, 0, capacity),
		ForwardRates:    make([]float64, 0, capacity),
		Intrinsic:       make([]float64, 0, capacity),
		DiscountFactors: make([]float64, 0, capacity),
		Values:          make([]float64, 0, capacity),
		CumulativePV:    make([]float64, 0, capacity),
	}
	r.add(start, 0, 0, 0, 1.0, 0, 0)
	return r
}

func (r *Result) add(date time.Time, alpha, fwd, intrinsic, df, value, cumPV float64) {
	r.Dates = append(r.Dates, date)
	r.Alphas = append(r.Alphas, alpha)
	r.ForwardRates = append(r.ForwardRates, fwd)
	r.Intrinsic = append(r.Intrinsic, intrinsic)
	r.DiscountFactors = append(r.DiscountFactors, df)
	r.Values = append(r.Values, value)
	r.CumulativePV = append(r.CumulativePV, cumPV)
}

// Len returns the number of rows, including the sentinel.
func (r Result) Len() int {
	return len(r.Dates)
}

// PV returns the total present value.
func (r Result) PV() float64 {
	if len(r.CumulativePV) == 0 {
		return 0
	}
	return r.CumulativePV[len(r.CumulativePV)-1]
}

func (r Result) clone() Result {
	return Result{
		ValuationDate:   r.ValuationDate,
		Dates:           append([]time.Time(nil), r.Dates...),
		Alphas:          append([]float64(nil), r.Alphas...),
		ForwardRates:    append([]float64(nil), r.ForwardRates...),
		Intrinsic:       append([]float64(nil), r.Intrinsic...),
		DiscountFactors: append([]float64(nil), r.DiscountFactors...),
		Values:          append([]float64(nil), r.Values...),
		CumulativePV:    append([]float64(nil), r.CumulativePV...),
	}
}

// Result returns a copy of the last valuation's diagnostics.
// The bool is false if Value has not succeeded yet.
func (cf *CapFloor) Result() (Result, bool) {
	if cf.result == nil {
		return Result{}, false
	}
	return cf.result.clone(), true
}
