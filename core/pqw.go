package core

import (
	"math"

	"github.com/signalsfoundry/keplerian/model"
)

// PerifocalRV returns position and velocity in the perifocal (PQW) frame for
// a conic with semi-latus rectum p (km), eccentricity ecc and true anomaly nu
// (rad) around a body of gravitational parameter k (km^3/s^2). The x axis
// points at periapsis and z along the angular momentum, so both outputs have
// a zero z component.
//
// The radius formula is singular where 1 + ecc*cos(nu) = 0, the true-anomaly
// asymptote of a hyperbolic orbit; near it the result loses precision as the
// formula dictates.
func PerifocalRV(k, p, ecc, nu float64) (r, v model.Vec3) {
	sinNu, cosNu := math.Sincos(nu)
	r = model.Vec3{X: cosNu, Y: sinNu}.Scale(p / (1 + ecc*cosNu))
	v = model.Vec3{X: -sinNu, Y: ecc + cosNu}.Scale(math.Sqrt(k / p))
	return r, v
}
