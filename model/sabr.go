package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when model parameters or market inputs are out of range.
var ErrInvalidParams = errors.New("invalid model parameters")

// atmThreshold switches to the z -> 0 limit of z/x(z).
const atmThreshold = 1e-7

// BlackVolFromSABR returns the lognormal (Black) volatility implied by SABR
// parameters for forward f, strike k and time to expiry t, using Hagan et al. (2002).
func BlackVolFromSABR(alpha, beta, rho, nu, f, k, t float64) (float64, error) {
	if !(alpha > 0) {
		return 0, fmt.Errorf("BlackVolFromSABR: alpha must be positive, got %g: %w", alpha, ErrInvalidParams)
	}
	if beta < 0 || beta > 1 {
		return 0, fmt.Errorf("BlackVolFromSABR: beta must be in [0, 1], got %g: %w", beta, ErrInvalidParams)
	}
	if !(rho > -1 && rho < 1) {
		return 0, fmt.Errorf("BlackVolFromSABR: rho must be in (-1, 1), got %g: %w", rho, ErrInvalidParams)
	}
	if nu < 0 {
		return 0, fmt.Errorf("BlackVolFromSABR: nu must be non-negative, got %g: %w", nu, ErrInvalidParams)
	}
	if !(f > 0) || !(k > 0) {
		return 0, fmt.Errorf("BlackVolFromSABR: forward and strike must be positive (f=%g, k=%g): %w", f, k, ErrInvalidParams)
	}
	if t < 0 {
		t = 0
	}

	omb := 1.0 - beta
	logFK := math.Log(f / k)
	fkb := math.Pow(f*k, omb)
	sqrtFKB := math.Sqrt(fkb)

	a := omb * omb * alpha * alpha / (24.0 * fkb)
	b := 0.25 * rho * beta * nu * alpha / sqrtFKB
	c := (2.0 - 3.0*rho*rho) * nu * nu / 24.0
	v := omb * omb * logFK * logFK / 24.0
	w := math.Pow(omb, 4) * math.Pow(logFK, 4) / 1920.0

	num := alpha * (1.0 + (a+b+c)*t)
	den := sqrtFKB * (1.0 + v + w)

	z := nu * sqrtFKB * logFK / alpha
	if math.Abs(z) <= atmThreshold {
		return num / den, nil
	}
	x := math.Log((math.Sqrt(1.0-2.0*rho*z+z*z) + z - rho) / (1.0 - rho))
	return num * z / (den * x), nil
}
