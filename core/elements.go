package core

import (
	"errors"
	"math"

	"github.com/signalsfoundry/keplerian/model"
)

// DefaultTolerance is the classification tolerance used when the caller
// passes a non-positive one: eccentricity or inclination below it marks the
// orbit circular or equatorial respectively.
const DefaultTolerance = 1e-8

var (
	// ErrDegenerateOrbit reports a rectilinear trajectory: the angular
	// momentum r x v is zero, so no orbital plane exists and classical
	// elements are undefined.
	ErrDegenerateOrbit = errors.New("degenerate orbit: zero angular momentum")

	// ErrEquinoctialSingularity reports a 180 degree inclination, where
	// tan(inc/2) diverges and the modified equinoctial set is undefined.
	ErrEquinoctialSingularity = errors.New("equinoctial elements singular at 180 degree inclination")
)

// StateFromClassical converts classical elements into an inertial Cartesian
// state for gravitational parameter k (km^3/s^2). It builds the perifocal
// state and rotates it through the 3-1-3 sequence with negated angles:
// z by -argp, x by -inc, z by -raan. The order and signs of that sequence
// define the frame convention of the whole package.
func StateFromClassical(k float64, el model.ClassicalElements) model.StateVector {
	rPQW, vPQW := PerifocalRV(k, el.P, el.Ecc, el.Nu)
	return model.StateVector{
		R: perifocalToInertial(rPQW, el),
		V: perifocalToInertial(vPQW, el),
	}
}

func perifocalToInertial(v model.Vec3, el model.ClassicalElements) model.Vec3 {
	v = Transform(v, -el.ArgP, AxisZ)
	v = Transform(v, -el.Inc, AxisX)
	v = Transform(v, -el.RAAN, AxisZ)
	return v
}

// ClassicalFromState recovers classical elements from a Cartesian state for
// gravitational parameter k (km^3/s^2). A non-positive tol selects
// DefaultTolerance.
//
// Orbits that are circular, equatorial or both within tol have one or two
// reference directions undefined (no periapsis, no ascending node); the
// corresponding angles are fixed at zero by convention and the remaining
// angle absorbs them: ArgP becomes the longitude of periapsis for equatorial
// orbits, Nu the argument of latitude for circular ones and the true
// longitude when both degeneracies coincide. RAAN, ArgP and Nu are wrapped
// to [0, 2pi); Inc comes from an arccosine and lies in [0, pi].
func ClassicalFromState(k float64, sv model.StateVector, tol float64) (model.ClassicalElements, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}

	r, v := sv.R, sv.V
	h := r.Cross(v)
	hNorm := h.Norm()
	if hNorm == 0 {
		return model.ClassicalElements{}, ErrDegenerateOrbit
	}

	n := model.Vec3{Z: 1}.Cross(h).Scale(1 / hNorm)
	e := r.Scale(v.Dot(v) - k/r.Norm()).Sub(v.Scale(r.Dot(v))).Scale(1 / k)
	ecc := e.Norm()
	p := h.Dot(h) / k
	inc := math.Acos(h.Z / hNorm)

	var raan, argp, nu float64
	switch model.Classify(ecc, inc, tol) {
	case model.OrbitEquatorial:
		argp = math.Atan2(e.Y, e.X)
		nu = math.Atan2(h.Dot(e.Cross(r))/hNorm, r.Dot(e))
	case model.OrbitCircular:
		raan = math.Atan2(n.Y, n.X)
		nu = math.Atan2(r.Dot(h.Cross(n))/hNorm, r.Dot(n))
	case model.OrbitCircularEquatorial:
		nu = math.Atan2(r.Y, r.X)
	default:
		raan = math.Atan2(n.Y, n.X)
		argp = math.Atan2(e.Dot(h.Cross(n))/hNorm, e.Dot(n))
		nu = math.Atan2(r.Dot(h.Cross(e))/hNorm, r.Dot(e))
	}

	return model.ClassicalElements{
		P:    p,
		Ecc:  ecc,
		Inc:  inc,
		RAAN: WrapTwoPi(raan),
		ArgP: WrapTwoPi(argp),
		Nu:   WrapTwoPi(nu),
	}, nil
}

// EquinoctialFromClassical remaps classical elements into modified
// equinoctial elements (Walker 1985). The remap is closed-form except at
// 180 degree inclination, where tan(inc/2) diverges and
// ErrEquinoctialSingularity is returned. L is carried unwrapped.
func EquinoctialFromClassical(el model.ClassicalElements) (model.EquinoctialElements, error) {
	tanHalfInc := math.Tan(el.Inc / 2)
	if el.Inc == math.Pi || math.IsInf(tanHalfInc, 0) || math.IsNaN(tanHalfInc) {
		return model.EquinoctialElements{}, ErrEquinoctialSingularity
	}

	lonper := el.RAAN + el.ArgP
	return model.EquinoctialElements{
		P: el.P,
		F: el.Ecc * math.Cos(lonper),
		G: el.Ecc * math.Sin(lonper),
		H: tanHalfInc * math.Cos(el.RAAN),
		K: tanHalfInc * math.Sin(el.RAAN),
		L: lonper + el.Nu,
	}, nil
}

// EquinoctialFromState chains ClassicalFromState and
// EquinoctialFromClassical, propagating either error.
func EquinoctialFromState(k float64, sv model.StateVector, tol float64) (model.EquinoctialElements, error) {
	el, err := ClassicalFromState(k, sv, tol)
	if err != nil {
		return model.EquinoctialElements{}, err
	}
	return EquinoctialFromClassical(el)
}
