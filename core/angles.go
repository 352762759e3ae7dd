package core

import "math"

const twoPi = 2 * math.Pi

// WrapTwoPi maps any finite angle into [0, 2pi).
func WrapTwoPi(angle float64) float64 {
	wrapped := math.Mod(angle, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	return wrapped
}

// The anomaly conversions below are valid for elliptical orbits,
// ecc in [0, 1). Inputs outside that domain are not validated.

// EccentricAnomalyFromTrue converts true anomaly to eccentric anomaly.
func EccentricAnomalyFromTrue(nu, ecc float64) float64 {
	if ecc == 0 {
		return WrapTwoPi(nu)
	}
	sinNu, cosNu := math.Sincos(nu)
	return WrapTwoPi(math.Atan2(math.Sqrt(1-ecc*ecc)*sinNu, ecc+cosNu))
}

// TrueAnomalyFromEccentric converts eccentric anomaly to true anomaly.
func TrueAnomalyFromEccentric(eccentricAnomaly, ecc float64) float64 {
	if ecc == 0 {
		return WrapTwoPi(eccentricAnomaly)
	}
	sinE, cosE := math.Sincos(eccentricAnomaly)
	return WrapTwoPi(math.Atan2(math.Sqrt(1-ecc*ecc)*sinE, cosE-ecc))
}

// MeanAnomalyFromEccentric applies Kepler's equation M = E - ecc*sin(E).
func MeanAnomalyFromEccentric(eccentricAnomaly, ecc float64) float64 {
	if ecc == 0 {
		return WrapTwoPi(eccentricAnomaly)
	}
	return WrapTwoPi(eccentricAnomaly - ecc*math.Sin(eccentricAnomaly))
}

// EccentricAnomalyFromMean inverts Kepler's equation by Newton-Raphson
// iteration: at most 50 steps, converged when the correction drops below
// 1e-12.
func EccentricAnomalyFromMean(meanAnomaly, ecc float64) float64 {
	if ecc == 0 {
		return WrapTwoPi(meanAnomaly)
	}

	m := WrapTwoPi(meanAnomaly)
	e := keplerInitialGuess(m, ecc)
	for i := 0; i < 50; i++ {
		delta := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return WrapTwoPi(e)
}

// TrueAnomalyFromMean converts mean anomaly directly to true anomaly.
func TrueAnomalyFromMean(meanAnomaly, ecc float64) float64 {
	return TrueAnomalyFromEccentric(EccentricAnomalyFromMean(meanAnomaly, ecc), ecc)
}

// MeanAnomalyFromTrue converts true anomaly directly to mean anomaly.
func MeanAnomalyFromTrue(nu, ecc float64) float64 {
	return MeanAnomalyFromEccentric(EccentricAnomalyFromTrue(nu, ecc), ecc)
}

// keplerInitialGuess picks the Newton starting point. For high
// eccentricities M itself converges poorly, so the guess is biased half an
// eccentricity toward the closer apsis.
func keplerInitialGuess(meanAnomaly, ecc float64) float64 {
	if ecc < 0.8 {
		return meanAnomaly
	}
	if meanAnomaly < math.Pi {
		return meanAnomaly + ecc/2
	}
	return meanAnomaly - ecc/2
}
