package tests

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/keplerian/core"
	"github.com/signalsfoundry/keplerian/model"
)

type goldenFile struct {
	Mu     float64       `yaml:"mu"`
	Orbits []goldenOrbit `yaml:"orbits"`
}

type goldenOrbit struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	State  struct {
		R []float64 `yaml:"r"`
		V []float64 `yaml:"v"`
	} `yaml:"state"`
	Classical struct {
		P    float64 `yaml:"p"`
		Ecc  float64 `yaml:"ecc"`
		Inc  float64 `yaml:"inc"`
		RAAN float64 `yaml:"raan"`
		ArgP float64 `yaml:"argp"`
		Nu   float64 `yaml:"nu"`
	} `yaml:"classical"`
}

func loadGolden(t *testing.T) goldenFile {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "orbits.yaml"))
	if err != nil {
		t.Fatalf("read golden fixture: %v", err)
	}
	var file goldenFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		t.Fatalf("parse golden fixture: %v", err)
	}
	if file.Mu <= 0 || len(file.Orbits) == 0 {
		t.Fatalf("golden fixture incomplete: mu=%v, %d orbits", file.Mu, len(file.Orbits))
	}
	return file
}

func toVec(t *testing.T, raw []float64) model.Vec3 {
	t.Helper()
	if len(raw) != 3 {
		t.Fatalf("fixture vector has %d components, want 3", len(raw))
	}
	return model.Vec3{X: raw[0], Y: raw[1], Z: raw[2]}
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func TestGoldenClassicalRecovery(t *testing.T) {
	file := loadGolden(t)
	for _, orbit := range file.Orbits {
		t.Run(orbit.Name, func(t *testing.T) {
			sv := model.StateVector{R: toVec(t, orbit.State.R), V: toVec(t, orbit.State.V)}
			el, err := core.ClassicalFromState(file.Mu, sv, 0)
			if err != nil {
				t.Fatalf("ClassicalFromState: %v", err)
			}

			want := orbit.Classical
			if !scalar.EqualWithinAbs(el.P, want.P, 0.01) {
				t.Errorf("p = %v, want %v", el.P, want.P)
			}
			if !scalar.EqualWithinAbs(el.Ecc, want.Ecc, 1e-5) {
				t.Errorf("ecc = %v, want %v", el.Ecc, want.Ecc)
			}
			const angleTol = 1e-4 // rad, looser than the fixture rounding
			if !scalar.EqualWithinAbs(el.Inc, toRad(want.Inc), angleTol) {
				t.Errorf("inc = %v rad, want %v deg", el.Inc, want.Inc)
			}
			if !scalar.EqualWithinAbs(el.RAAN, toRad(want.RAAN), angleTol) {
				t.Errorf("raan = %v rad, want %v deg", el.RAAN, want.RAAN)
			}
			if !scalar.EqualWithinAbs(el.ArgP, toRad(want.ArgP), angleTol) {
				t.Errorf("argp = %v rad, want %v deg", el.ArgP, want.ArgP)
			}
			if !scalar.EqualWithinAbs(el.Nu, toRad(want.Nu), angleTol) {
				t.Errorf("nu = %v rad, want %v deg", el.Nu, want.Nu)
			}
		})
	}
}

func TestGoldenRoundTrip(t *testing.T) {
	file := loadGolden(t)
	for _, orbit := range file.Orbits {
		t.Run(orbit.Name, func(t *testing.T) {
			sv := model.StateVector{R: toVec(t, orbit.State.R), V: toVec(t, orbit.State.V)}
			el, err := core.ClassicalFromState(file.Mu, sv, 0)
			if err != nil {
				t.Fatalf("ClassicalFromState: %v", err)
			}

			back := core.StateFromClassical(file.Mu, el)
			for _, pair := range []struct {
				name      string
				got, want float64
				tol       float64
			}{
				{"r.x", back.R.X, sv.R.X, 1e-6},
				{"r.y", back.R.Y, sv.R.Y, 1e-6},
				{"r.z", back.R.Z, sv.R.Z, 1e-6},
				{"v.x", back.V.X, sv.V.X, 1e-9},
				{"v.y", back.V.Y, sv.V.Y, 1e-9},
				{"v.z", back.V.Z, sv.V.Z, 1e-9},
			} {
				if !scalar.EqualWithinAbs(pair.got, pair.want, pair.tol) {
					t.Errorf("%s = %v, want %v", pair.name, pair.got, pair.want)
				}
			}
		})
	}
}

func TestGoldenEquinoctialIdentities(t *testing.T) {
	file := loadGolden(t)
	for _, orbit := range file.Orbits {
		t.Run(orbit.Name, func(t *testing.T) {
			sv := model.StateVector{R: toVec(t, orbit.State.R), V: toVec(t, orbit.State.V)}
			el, err := core.ClassicalFromState(file.Mu, sv, 0)
			if err != nil {
				t.Fatalf("ClassicalFromState: %v", err)
			}
			mee, err := core.EquinoctialFromState(file.Mu, sv, 0)
			if err != nil {
				t.Fatalf("EquinoctialFromState: %v", err)
			}

			if !scalar.EqualWithinAbs(mee.F*mee.F+mee.G*mee.G, el.Ecc*el.Ecc, 1e-12) {
				t.Errorf("f^2+g^2 = %v, want ecc^2 = %v", mee.F*mee.F+mee.G*mee.G, el.Ecc*el.Ecc)
			}
			tanHalf := math.Tan(el.Inc / 2)
			if !scalar.EqualWithinAbs(mee.H*mee.H+mee.K*mee.K, tanHalf*tanHalf, 1e-12) {
				t.Errorf("h^2+k^2 = %v, want tan^2(inc/2) = %v", mee.H*mee.H+mee.K*mee.K, tanHalf*tanHalf)
			}
			if !scalar.EqualWithinAbs(mee.L, el.RAAN+el.ArgP+el.Nu, 1e-12) {
				t.Errorf("L = %v, want %v", mee.L, el.RAAN+el.ArgP+el.Nu)
			}
			if mee.P != el.P {
				t.Errorf("p = %v, want %v", mee.P, el.P)
			}
		})
	}
}
