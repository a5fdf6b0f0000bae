package market

// Frequency enumerates payment/reset frequencies in months.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FreqAnnual, FreqSemi, FreqQuarterly, FreqMonthly:
		return true
	default:
		return false
	}
}

// Months returns the number of months in one period.
func (f Frequency) Months() int {
	return int(f)
}

func (f Frequency) String() string {
	switch f {
	case FreqAnnual:
		return "ANNUAL"
	case FreqSemi:
		return "SEMI_ANNUAL"
	case FreqQuarterly:
		return "QUARTERLY"
	case FreqMonthly:
		return "MONTHLY"
	default:
		return "UNKNOWN"
	}
}

// ParseFrequency maps names like "QUARTERLY" or "3M" to a Frequency.
func ParseFrequency(s string) (Frequency, bool) {
	switch s {
	case "ANNUAL", "12M", "1Y":
		return FreqAnnual, true
	case "SEMI_ANNUAL", "6M":
		return FreqSemi, true
	case "QUARTERLY", "3M":
		return FreqQuarterly, true
	case "MONTHLY", "1M":
		return FreqMonthly, true
	default:
		return 0, false
	}
}

// BusinessDayAdjustment roll convention.
type BusinessDayAdjustment string

const (
	NoAdjustment      BusinessDayAdjustment = "NONE"
	Following         BusinessDayAdjustment = "FOLLOWING"
	ModifiedFollowing BusinessDayAdjustment = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayAdjustment = "PRECEDING"
	ModifiedPreceding BusinessDayAdjustment = "MODIFIED_PRECEDING"
)

func (b BusinessDayAdjustment) Valid() bool {
	switch b {
	case NoAdjustment, Following, ModifiedFollowing, Preceding, ModifiedPreceding:
		return true
	default:
		return false
	}
}

// DateGenRule selects the direction in which schedule dates are rolled.
type DateGenRule string

const (
	// GenForward rolls from the start date; any stub is at the back.
	GenForward DateGenRule = "FORWARD"
	// GenBackward rolls from maturity; any stub is at the front.
	GenBackward DateGenRule = "BACKWARD"
)

func (r DateGenRule) Valid() bool {
	return r == GenForward || r == GenBackward
}

// DayCount enum.
type DayCount string

const (
	Act360       DayCount = "ACT/360"
	Act365F      DayCount = "ACT/365F"
	ActActISDA   DayCount = "ACT/ACT ISDA"
	Dc30360Bond  DayCount = "30/360 BOND"
	Dc30E360     DayCount = "30E/360"
	Dc30E360ISDA DayCount = "30E/360 ISDA"
)

func (d DayCount) Valid() bool {
	switch d {
	case Act360, Act365F, ActActISDA, Dc30360Bond, Dc30E360, Dc30E360ISDA:
		return true
	default:
		return false
	}
}
