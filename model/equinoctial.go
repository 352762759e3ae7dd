package model

import "math"

// EquinoctialElements is a modified equinoctial element set per Walker 1985.
// The set is non-singular for circular and equatorial orbits but undefined
// at 180 degree inclination.
type EquinoctialElements struct {
	// P is the semi-latus rectum in kilometers.
	P float64
	// F is ecc*cos(raan+argp).
	F float64
	// G is ecc*sin(raan+argp).
	G float64
	// H is tan(inc/2)*cos(raan).
	H float64
	// K is tan(inc/2)*sin(raan).
	K float64
	// L is the true longitude raan+argp+nu in radians. It is carried
	// unwrapped so that longitudes accumulated past a revolution survive.
	L float64
}

// Ecc returns the eccentricity magnitude hypot(F, G).
func (e EquinoctialElements) Ecc() float64 {
	return math.Hypot(e.F, e.G)
}

// Inc returns the inclination 2*atan(hypot(H, K)) in radians.
func (e EquinoctialElements) Inc() float64 {
	return 2 * math.Atan(math.Hypot(e.H, e.K))
}
