package market

import (
	"fmt"
	"strconv"
	"strings"
)

// TenorUnit is the unit of a Tenor.
type TenorUnit byte

const (
	Days   TenorUnit = 'D'
	Weeks  TenorUnit = 'W'
	Months TenorUnit = 'M'
	Years  TenorUnit = 'Y'
)

// Tenor is a period such as 3M or 10Y.
type Tenor struct {
	N    int
	Unit TenorUnit
}

func (t Tenor) String() string {
	return strconv.Itoa(t.N) + string(t.Unit)
}

// ParseTenor converts tenor strings like "1W", "3M", "10Y" into a Tenor.
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("ParseTenor: invalid tenor %q", s)
	}
	unit := TenorUnit(s[len(s)-1])
	switch unit {
	case Days, Weeks, Months, Years:
	default:
		return Tenor{}, fmt.Errorf("ParseTenor: unknown unit in tenor %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Tenor{}, fmt.Errorf("ParseTenor: invalid count in tenor %q: %w", s, err)
	}
	if n < 0 {
		return Tenor{}, fmt.Errorf("ParseTenor: negative tenor %q", s)
	}
	return Tenor{N: n, Unit: unit}, nil
}
