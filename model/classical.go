package model

import (
	"fmt"
	"math"
)

// ClassicalElements is a classical (Keplerian) element set. All angles are in
// radians. The conversions in package core produce RAAN, ArgP and Nu wrapped
// to [0, 2pi); angles left undefined by a degenerate geometry are zero by
// convention.
type ClassicalElements struct {
	// P is the semi-latus rectum in kilometers.
	P float64
	// Ecc is the eccentricity magnitude.
	Ecc float64
	// Inc is the inclination in radians, in [0, pi].
	Inc float64
	// RAAN is the right ascension of the ascending node in radians.
	RAAN float64
	// ArgP is the argument of periapsis in radians.
	ArgP float64
	// Nu is the true anomaly in radians.
	Nu float64
}

// SemiMajorAxis returns a = p/(1-ecc^2) in kilometers. It is infinite for a
// parabolic orbit and negative for a hyperbolic one.
func (c ClassicalElements) SemiMajorAxis() float64 {
	return c.P / (1 - c.Ecc*c.Ecc)
}

// PeriapsisRadius returns the periapsis distance p/(1+ecc) in kilometers.
func (c ClassicalElements) PeriapsisRadius() float64 {
	return c.P / (1 + c.Ecc)
}

// ApoapsisRadius returns the apoapsis distance p/(1-ecc) in kilometers. It
// has no physical meaning for ecc >= 1.
func (c ClassicalElements) ApoapsisRadius() float64 {
	return c.P / (1 - c.Ecc)
}

// LongitudeOfPeriapsis returns RAAN + ArgP wrapped to [0, 2pi).
func (c ClassicalElements) LongitudeOfPeriapsis() float64 {
	return wrapTwoPi(c.RAAN + c.ArgP)
}

// ArgumentOfLatitude returns ArgP + Nu wrapped to [0, 2pi), the angle from
// the ascending node to the orbiting body.
func (c ClassicalElements) ArgumentOfLatitude() float64 {
	return wrapTwoPi(c.ArgP + c.Nu)
}

// TrueLongitude returns RAAN + ArgP + Nu wrapped to [0, 2pi).
func (c ClassicalElements) TrueLongitude() float64 {
	return wrapTwoPi(c.RAAN + c.ArgP + c.Nu)
}

// String formats the element set with angles in degrees.
func (c ClassicalElements) String() string {
	const toDeg = 180 / math.Pi
	return fmt.Sprintf("p=%.3f km ecc=%.6f inc=%.4f deg raan=%.4f deg argp=%.4f deg nu=%.4f deg",
		c.P, c.Ecc, c.Inc*toDeg, c.RAAN*toDeg, c.ArgP*toDeg, c.Nu*toDeg)
}

func wrapTwoPi(angle float64) float64 {
	wrapped := math.Mod(angle, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}
