package pricing

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/capfloor/calendar"
	"github.com/meenmo/capfloor/capfloor"
	"github.com/meenmo/capfloor/curve"
	"github.com/meenmo/capfloor/market"
	"github.com/meenmo/capfloor/model"
	"github.com/meenmo/capfloor/utils"
)

// Input defines the trade file schema. JSON files parse as well since JSON is YAML.
//
// Conventions:
// - rates are decimals (e.g., 0.03 means 3%)
// - dates are "2006-01-02"
type Input struct {
	ValuationDate string     `yaml:"valuation_date"`
	Trade         TradeInput `yaml:"trade"`
	Curve         CurveInput `yaml:"curve"`
	Model         ModelInput `yaml:"model"`
}

type TradeInput struct {
	StartDate     string   `yaml:"start_date"`
	MaturityDate  string   `yaml:"maturity_date"`  // exclusive with maturity_tenor
	MaturityTenor string   `yaml:"maturity_tenor"` // e.g. "5Y"
	OptionType    string   `yaml:"option_type"`    // CAP or FLOOR
	StrikeRate    float64  `yaml:"strike_rate"`
	LastFixing    *float64 `yaml:"last_fixing"`
	Frequency     string   `yaml:"frequency"` // QUARTERLY, 6M, ...
	DayCount      string   `yaml:"day_count"`
	Notional      *float64 `yaml:"notional"`
	Calendar      string   `yaml:"calendar"`
	BusDayAdjust  string   `yaml:"bus_day_adjust"`
	DateGenRule   string   `yaml:"date_gen_rule"`
}

// CurveInput holds either a flat continuously-compounded rate or discount factor pillars.
type CurveInput struct {
	FlatRate        *float64           `yaml:"flat_rate"`
	DiscountFactors map[string]float64 `yaml:"discount_factors"`
}

type ModelInput struct {
	Type string `yaml:"type"` // black, shifted_black or sabr

	Volatility float64 `yaml:"volatility"`
	Shift      float64 `yaml:"shift"`

	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Rho   float64 `yaml:"rho"`
	Nu    float64 `yaml:"nu"`
}

type Output struct {
	Source       string  `json:"source,omitempty"`
	PV           float64 `json:"pv"`
	Periods      int     `json:"periods"`
	MaturityDate string  `json:"maturity_date,omitempty"`
	ZeroRate     float64 `json:"maturity_zero_rate"` // continuously compounded, percent
	Error        string  `json:"error,omitempty"`
}

// Curve is a rate curve that also quotes zero rates.
type Curve interface {
	capfloor.RateCurve
	ZeroRateAt(t time.Time) float64
}

// Job is a parsed input ready to be valued.
type Job struct {
	Trade         *capfloor.CapFloor
	ValuationDate time.Time
	Curve         Curve
	Model         model.Model
}

// Parse decodes a trade file.
func Parse(data []byte) (Input, error) {
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("failed to parse input: %w", err)
	}
	return in, nil
}

// Build converts the raw input into domain objects.
func Build(in Input) (*Job, error) {
	valuationDate, err := utils.ParseDate(in.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation_date: %w", err)
	}

	trade, err := buildTrade(in.Trade)
	if err != nil {
		return nil, err
	}
	crv, err := buildCurve(valuationDate, in.Curve)
	if err != nil {
		return nil, err
	}
	m, err := buildModel(in.Model)
	if err != nil {
		return nil, err
	}
	return &Job{Trade: trade, ValuationDate: valuationDate, Curve: crv, Model: m}, nil
}

// Run values the job.
func (j *Job) Run() (Output, error) {
	pv, err := j.Trade.Value(j.ValuationDate, j.Curve, j.Model)
	if err != nil {
		return Output{}, err
	}
	res, _ := j.Trade.Result()
	maturity := j.Trade.MaturityDate()
	return Output{
		PV:           utils.RoundTo(pv, 2),
		Periods:      res.Len() - 1,
		MaturityDate: maturity.Format(utils.DateLayout),
		ZeroRate:     utils.RoundTo(j.Curve.ZeroRateAt(maturity), 6),
	}, nil
}

func buildTrade(in TradeInput) (*capfloor.CapFloor, error) {
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	var maturity time.Time
	if strings.TrimSpace(in.MaturityDate) != "" {
		maturity, err = utils.ParseDate(in.MaturityDate)
		if err != nil {
			return nil, fmt.Errorf("invalid maturity_date: %w", err)
		}
	}

	var freq market.Frequency
	if s := strings.TrimSpace(in.Frequency); s != "" {
		f, ok := market.ParseFrequency(strings.ToUpper(s))
		if !ok {
			return nil, fmt.Errorf("invalid frequency %q", in.Frequency)
		}
		freq = f
	}

	return capfloor.New(capfloor.Params{
		StartDate:     start,
		MaturityDate:  maturity,
		MaturityTenor: in.MaturityTenor,
		OptionType:    capfloor.OptionType(upper(in.OptionType)),
		StrikeRate:    in.StrikeRate,
		LastFixing:    in.LastFixing,
		Frequency:     freq,
		DayCount:      market.DayCount(upper(in.DayCount)),
		Notional:      in.Notional,
		Calendar:      calendar.CalendarID(upper(in.Calendar)),
		BusDayAdjust:  market.BusinessDayAdjustment(upper(in.BusDayAdjust)),
		DateGenRule:   market.DateGenRule(upper(in.DateGenRule)),
	})
}

func buildCurve(valuationDate time.Time, in CurveInput) (Curve, error) {
	switch {
	case in.FlatRate != nil && len(in.DiscountFactors) > 0:
		return nil, fmt.Errorf("curve: set flat_rate or discount_factors, not both")
	case in.FlatRate != nil:
		return curve.NewFlatCurve(valuationDate, *in.FlatRate), nil
	case len(in.DiscountFactors) > 0:
		dfs := make(map[time.Time]float64, len(in.DiscountFactors))
		for s, df := range in.DiscountFactors {
			d, err := utils.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("curve: invalid pillar date %q: %w", s, err)
			}
			dfs[d] = df
		}
		crv, err := curve.NewCurveFromDFs(valuationDate, dfs)
		if err != nil {
			return nil, fmt.Errorf("curve: %w", err)
		}
		return crv, nil
	default:
		return nil, fmt.Errorf("curve: flat_rate or discount_factors is required")
	}
}

func buildModel(in ModelInput) (model.Model, error) {
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "black":
		return model.Black{Volatility: in.Volatility}, nil
	case "shifted_black", "shifted-black":
		return model.ShiftedBlack{Volatility: in.Volatility, Shift: in.Shift}, nil
	case "sabr":
		return model.SABR{Alpha: in.Alpha, Beta: in.Beta, Rho: in.Rho, Nu: in.Nu}, nil
	case "":
		return nil, fmt.Errorf("model.type is required")
	default:
		return nil, fmt.Errorf("unknown model.type %q (expected black, shifted_black or sabr)", in.Type)
	}
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
