package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/signalsfoundry/keplerian/model"
)

// Axis identifies a principal rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// R1 returns the elementary frame rotation about the x axis by angle radians.
func R1(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	})
}

// R2 returns the elementary frame rotation about the y axis by angle radians.
func R2(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	})
}

// R3 returns the elementary frame rotation about the z axis by angle radians.
func R3(angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	return mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	})
}

// Transform rotates v about the given principal axis by angle radians using
// the elementary frame rotation for that axis. An invalid axis panics.
func Transform(v model.Vec3, angle float64, axis Axis) model.Vec3 {
	return mulVec(rotationMatrix(angle, axis), v)
}

// TransformEach applies the same rotation to every vector in vs, building
// the rotation matrix once. The input slice is not modified.
func TransformEach(vs []model.Vec3, angle float64, axis Axis) []model.Vec3 {
	m := rotationMatrix(angle, axis)
	out := make([]model.Vec3, len(vs))
	for i, v := range vs {
		out[i] = mulVec(m, v)
	}
	return out
}

func rotationMatrix(angle float64, axis Axis) *mat.Dense {
	switch axis {
	case AxisX:
		return R1(angle)
	case AxisY:
		return R2(angle)
	case AxisZ:
		return R3(angle)
	default:
		panic(fmt.Sprintf("core: invalid rotation axis %d", axis))
	}
}

func mulVec(m *mat.Dense, v model.Vec3) model.Vec3 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return model.Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
