// Package tle evaluates a two-line element set into this module's orbital
// types at the set's own epoch. It wraps SGP4 from
// github.com/joshuaferrara/go-satellite; the state it produces is in the
// TEME frame, km and km/s.
package tle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/keplerian/core"
	"github.com/signalsfoundry/keplerian/model"
)

var (
	// ErrMalformedTLE reports a line set that fails basic format checks.
	ErrMalformedTLE = errors.New("malformed TLE")

	// ErrPropagation reports an SGP4 evaluation that produced a
	// non-finite state.
	ErrPropagation = errors.New("sgp4 propagation failed")
)

const lineLength = 69

// Epoch parses the epoch field of TLE line 1 (columns 19-32) into UTC time.
// Two-digit years below 57 map to the 2000s, the rest to the 1900s.
func Epoch(line1 string) (time.Time, error) {
	line1 = strings.TrimSpace(line1)
	if len(line1) != lineLength {
		return time.Time{}, fmt.Errorf("%w: line 1 length %d, expected %d", ErrMalformedTLE, len(line1), lineLength)
	}

	yy, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch year %q: %v", ErrMalformedTLE, line1[18:20], err)
	}
	dayOfYear, err := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch day %q: %v", ErrMalformedTLE, line1[20:32], err)
	}
	if dayOfYear < 1 {
		return time.Time{}, fmt.Errorf("%w: epoch day %v before day 1", ErrMalformedTLE, dayOfYear)
	}

	year := 1900 + yy
	if yy < 57 {
		year = 2000 + yy
	}

	days := int(dayOfYear)
	frac := dayOfYear - float64(days)
	base := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days-1)
	return base.Add(time.Duration(math.Round(frac * 86400 * 1e9))), nil
}

// StateAtEpoch initializes SGP4 (WGS72 gravity) from the line set and
// evaluates it at the TLE's own epoch, returning the TEME state and that
// epoch.
//
// The line set is validated first: the underlying library terminates the
// process on malformed input, so nothing unchecked may reach it.
func StateAtEpoch(line1, line2 string) (model.StateVector, time.Time, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if err := validateLines(line1, line2); err != nil {
		return model.StateVector{}, time.Time{}, err
	}

	epoch, err := Epoch(line1)
	if err != nil {
		return model.StateVector{}, time.Time{}, err
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	if sat.Error != 0 {
		return model.StateVector{}, time.Time{}, fmt.Errorf("%w: sgp4 init code %d: %s", ErrMalformedTLE, sat.Error, sat.ErrorStr)
	}

	year, month, day := epoch.Date()
	hour, min, sec := epoch.Clock()
	pos, vel := satellite.Propagate(sat, year, int(month), day, hour, min, sec)

	sv := model.StateVector{
		R: model.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		V: model.Vec3{X: vel.X, Y: vel.Y, Z: vel.Z},
	}
	if !finite(sv.R) || !finite(sv.V) {
		return model.StateVector{}, time.Time{}, fmt.Errorf("%w: non-finite state at epoch", ErrPropagation)
	}
	return sv, epoch, nil
}

// ElementsAtEpoch chains StateAtEpoch into classical element recovery for
// gravitational parameter k (km^3/s^2), yielding the osculating elements at
// the TLE epoch. A non-positive tol selects core.DefaultTolerance.
func ElementsAtEpoch(k float64, line1, line2 string, tol float64) (model.ClassicalElements, time.Time, error) {
	sv, epoch, err := StateAtEpoch(line1, line2)
	if err != nil {
		return model.ClassicalElements{}, time.Time{}, err
	}
	el, err := core.ClassicalFromState(k, sv, tol)
	if err != nil {
		return model.ClassicalElements{}, time.Time{}, err
	}
	return el, epoch, nil
}

func validateLines(line1, line2 string) error {
	if len(line1) != lineLength {
		return fmt.Errorf("%w: line 1 length %d, expected %d", ErrMalformedTLE, len(line1), lineLength)
	}
	if len(line2) != lineLength {
		return fmt.Errorf("%w: line 2 length %d, expected %d", ErrMalformedTLE, len(line2), lineLength)
	}
	if line1[0] != '1' {
		return fmt.Errorf("%w: line 1 must start with '1', got %q", ErrMalformedTLE, line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("%w: line 2 must start with '2', got %q", ErrMalformedTLE, line2[0])
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("%w: catalog numbers differ: %q vs %q", ErrMalformedTLE, line1[2:7], line2[2:7])
	}
	return nil
}

func finite(v model.Vec3) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
