package model

import "math"

// OrbitClass names the geometry branch used when recovering classical
// elements from a Cartesian state. Circularity and equatoriality are judged
// against the caller's tolerance.
type OrbitClass int

const (
	// OrbitGeneric is an inclined, non-circular orbit; all angles are
	// well defined.
	OrbitGeneric OrbitClass = iota
	// OrbitEquatorial has inclination below tolerance; RAAN is zero by
	// convention and ArgP becomes the longitude of periapsis.
	OrbitEquatorial
	// OrbitCircular has eccentricity below tolerance; ArgP is zero by
	// convention and Nu becomes the argument of latitude.
	OrbitCircular
	// OrbitCircularEquatorial has both below tolerance; RAAN and ArgP are
	// zero and Nu becomes the true longitude.
	OrbitCircularEquatorial
)

// Classify reports the branch for the given eccentricity and inclination.
// Both comparisons are strict: values equal to tol take the generic path.
func Classify(ecc, inc, tol float64) OrbitClass {
	circular := ecc < tol
	equatorial := math.Abs(inc) < tol
	switch {
	case circular && equatorial:
		return OrbitCircularEquatorial
	case circular:
		return OrbitCircular
	case equatorial:
		return OrbitEquatorial
	default:
		return OrbitGeneric
	}
}

// String implements fmt.Stringer.
func (c OrbitClass) String() string {
	switch c {
	case OrbitGeneric:
		return "generic"
	case OrbitEquatorial:
		return "equatorial"
	case OrbitCircular:
		return "circular"
	case OrbitCircularEquatorial:
		return "circular-equatorial"
	default:
		return "unknown"
	}
}
