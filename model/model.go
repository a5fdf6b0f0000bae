// Package model defines the volatility models used to price caplets and floorlets.
//
// The set of models is closed: Model can only be implemented inside this package,
// so pricers can switch exhaustively over Black, ShiftedBlack and SABR.
package model

import "fmt"

// Model is a volatility model for a single caplet/floorlet.
type Model interface {
	fmt.Stringer
	volModel()
}

// Black is a lognormal model with a flat volatility.
type Black struct {
	Volatility float64
}

// ShiftedBlack is a lognormal model on the forward and strike shifted by Shift.
//
// Forward and strike enter the Black formula as (F - Shift) and (K - Shift), so a
// negative Shift admits negative rates.
type ShiftedBlack struct {
	Volatility float64
	Shift      float64
}

// SABR holds stochastic-volatility parameters that are converted to an equivalent
// Black volatility per caplet.
type SABR struct {
	Alpha float64
	Beta  float64
	Rho   float64
	Nu    float64
}

func (Black) volModel() {}
func (ShiftedBlack) volModel() {}
func (SABR) volModel() {}

func (m Black) String() string {
	return fmt.Sprintf("BLACK(vol=%g)", m.Volatility)
}

func (m ShiftedBlack) String() string {
	return fmt.Sprintf("SHIFTED_BLACK(vol=%g, shift=%g)", m.Volatility, m.Shift)
}

func (m SABR) String() string {
	return fmt.Sprintf("SABR(alpha=%g, beta=%g, rho=%g, nu=%g)", m.Alpha, m.Beta, m.Rho, m.Nu)
}
