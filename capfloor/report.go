package capfloor

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/capfloor/utils"
)

// PrintLeg writes the trade terms and, once valued, one row per schedule date.
func (cf *CapFloor) PrintLeg(w io.Writer) error {
	p := &errWriter{w: w}

	p.printf("START DATE: %s\n", cf.startDate.Format(utils.DateLayout))
	p.printf("MATURITY DATE: %s\n", cf.maturityDate.Format(utils.DateLayout))
	p.printf("OPTION TYPE: %s\n", cf.optionType)
	p.printf("STRIKE (%%): %s\n", formatPercent(cf.strikeRate))
	p.printf("FREQUENCY: %s\n", cf.frequency)
	p.printf("DAY COUNT: %s\n", cf.dayCount)

	if cf.result == nil {
		p.printf("VALUATION DATE: -\n")
		p.printf("Caplets not calculated.\n")
		return p.err
	}
	r := cf.result
	p.printf("VALUATION DATE: %s\n", r.ValuationDate.Format(utils.DateLayout))

	valueCol := "CAPLET_PV"
	if cf.optionType == Floor {
		valueCol = "FLRLET_PV"
	}
	p.printf("%15s %10s %10s %12s %12s %12s %12s\n",
		"PAYMENT_DATE", "YEAR_FRAC", "FWD_RATE", "INTRINSIC", "DF", valueCol, "CUM_PV")

	for i := range r.Dates {
		p.printf("%15s %10.7f %10.5f %12s %12.6f %12s %12s\n",
			r.Dates[i].Format(utils.DateLayout),
			r.Alphas[i],
			r.ForwardRates[i]*100,
			money(r.Intrinsic[i]),
			r.DiscountFactors[i],
			money(r.Values[i]),
			money(r.CumulativePV[i]))
	}
	return p.err
}

// String lists the trade terms, one "LABEL: value" per line.
func (cf *CapFloor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "START DATE: %s\n", cf.startDate.Format(utils.DateLayout))
	fmt.Fprintf(&b, "MATURITY DATE: %s\n", cf.maturityDate.Format(utils.DateLayout))
	fmt.Fprintf(&b, "STRIKE COUPON: %s\n", formatPercent(cf.strikeRate))
	fmt.Fprintf(&b, "OPTION TYPE: %s\n", cf.optionType)
	fmt.Fprintf(&b, "FREQUENCY: %s\n", cf.frequency)
	fmt.Fprintf(&b, "DAY COUNT: %s", cf.dayCount)
	return b.String()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String()
}

// errWriter keeps the first write error so formatting code can ignore it per call.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
