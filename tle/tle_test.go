package tle

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

const (
	issLine1 = "1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996"
	issLine2 = "2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954"

	earthMu = 398600.4418
)

func TestEpoch(t *testing.T) {
	epoch, err := Epoch(issLine1)
	if err != nil {
		t.Fatalf("Epoch: %v", err)
	}
	want := time.Date(2025, time.January, 25, 0, 0, 42, 0, time.UTC)
	if got := epoch.Truncate(time.Second); !got.Equal(want) {
		t.Errorf("epoch = %v, want %v", got, want)
	}
}

func TestEpochYearWindow(t *testing.T) {
	// Splice the two-digit year field (columns 19-20).
	withYear := func(yy string) string {
		return issLine1[:18] + yy + issLine1[20:]
	}

	cases := []struct {
		yy   string
		year int
	}{
		{"56", 2056},
		{"57", 1957},
		{"99", 1999},
		{"00", 2000},
	}
	for _, tc := range cases {
		epoch, err := Epoch(withYear(tc.yy))
		if err != nil {
			t.Fatalf("Epoch(yy=%s): %v", tc.yy, err)
		}
		if epoch.Year() != tc.year {
			t.Errorf("yy=%s: year = %d, want %d", tc.yy, epoch.Year(), tc.year)
		}
	}
}

func TestStateAtEpochISS(t *testing.T) {
	sv, epoch, err := StateAtEpoch(issLine1, issLine2)
	if err != nil {
		t.Fatalf("StateAtEpoch: %v", err)
	}
	if epoch.Year() != 2025 {
		t.Errorf("epoch year = %d, want 2025", epoch.Year())
	}

	// The ISS sits in low Earth orbit: radius near 6790 km, speed near
	// 7.66 km/s.
	radius := sv.R.Norm()
	if radius < 6650 || radius > 6900 {
		t.Errorf("|r| = %v km, outside LEO band", radius)
	}
	speed := sv.V.Norm()
	if speed < 7.5 || speed > 7.8 {
		t.Errorf("|v| = %v km/s, outside LEO band", speed)
	}
}

func TestElementsAtEpochISS(t *testing.T) {
	el, _, err := ElementsAtEpoch(earthMu, issLine1, issLine2, 0)
	if err != nil {
		t.Fatalf("ElementsAtEpoch: %v", err)
	}

	// Osculating elements wobble around the TLE mean values; inclination
	// stays within a tenth of a degree and the orbit is near-circular.
	wantInc := 51.6377 * math.Pi / 180
	if math.Abs(el.Inc-wantInc) > 0.2*math.Pi/180 {
		t.Errorf("inc = %v rad, want within 0.2 deg of %v", el.Inc, wantInc)
	}
	if el.Ecc > 0.01 {
		t.Errorf("ecc = %v, want near-circular", el.Ecc)
	}
	if el.P < 6650 || el.P > 6900 {
		t.Errorf("p = %v km, outside LEO band", el.P)
	}
}

func TestMalformedLines(t *testing.T) {
	cases := []struct {
		name  string
		line1 string
		line2 string
	}{
		{"short line 1", "1 25544U", issLine2},
		{"short line 2", issLine1, "2 25544"},
		{"wrong line 1 number", "3" + issLine1[1:], issLine2},
		{"wrong line 2 number", issLine1, "1" + issLine2[1:]},
		{"catalog mismatch", issLine1, strings.Replace(issLine2, "25544", "25545", 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := StateAtEpoch(tc.line1, tc.line2); !errors.Is(err, ErrMalformedTLE) {
				t.Fatalf("err = %v, want ErrMalformedTLE", err)
			}
		})
	}
}

func TestEpochRejectsGarbage(t *testing.T) {
	bad := issLine1[:18] + "XY" + issLine1[20:]
	if _, err := Epoch(bad); !errors.Is(err, ErrMalformedTLE) {
		t.Fatalf("err = %v, want ErrMalformedTLE", err)
	}
	if _, err := Epoch("too short"); !errors.Is(err, ErrMalformedTLE) {
		t.Fatalf("err = %v, want ErrMalformedTLE", err)
	}
}
