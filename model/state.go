package model

// StateVector is a Cartesian orbital state in an inertial frame: position in
// kilometers, velocity in kilometers per second.
type StateVector struct {
	R Vec3
	V Vec3
}

// AngularMomentum returns the specific angular momentum vector R x V in
// km^2/s. It is the zero vector for rectilinear trajectories.
func (s StateVector) AngularMomentum() Vec3 {
	return s.R.Cross(s.V)
}

// SpecificEnergy returns the specific orbital energy v^2/2 - k/r in km^2/s^2
// for the gravitational parameter k (km^3/s^2). Negative for bound orbits.
func (s StateVector) SpecificEnergy(k float64) float64 {
	v := s.V.Norm()
	return v*v/2 - k/s.R.Norm()
}
