package singlephase

import (
	"errors"
	"fmt"
	"math"

	"github.com/chiuwenyu/singlephase/internal/format"
	"github.com/chiuwenyu/singlephase/internal/units"
)

type Regime string

const (
	RegimeUnknown   Regime = ""
	RegimeLaminar   Regime = "laminar"
	RegimeTurbulent Regime = "turbulent"
)

func RegimeOf(nre float64) Regime {
	if nre <= LaminarLimit {
		return RegimeLaminar
	}
	return RegimeTurbulent
}

var ErrInvalidInput = errors.New("invalid input")

// Input describes one pipe segment. Lengths and viscosity may be given in SI
// (id_m, roughness_m, mu_pa_s) or with a unit (id_value+id_unit,
// roughness_value+roughness_unit, viscosity_cp); the unit form wins when set.
type Input struct {
	Name           string  `json:"name,omitempty"`
	FlowKgH        float64 `json:"w_kg_h"`
	DensityKgM3    float64 `json:"rho_kg_m3"`
	ViscosityPaS   float64 `json:"mu_pa_s,omitempty"`
	ViscosityCP    float64 `json:"viscosity_cp,omitempty"`
	IDM            float64 `json:"id_m,omitempty"`
	IDValue        float64 `json:"id_value,omitempty"`
	IDUnit         string  `json:"id_unit,omitempty"`
	RoughnessM     float64 `json:"roughness_m,omitempty"`
	RoughnessValue float64 `json:"roughness_value,omitempty"`
	RoughnessUnit  string  `json:"roughness_unit,omitempty"`
	SafetyFactor   float64 `json:"sf"`
}

type Result struct {
	Name            string  `json:"name,omitempty"`
	IDM             float64 `json:"id_m"`
	RoughnessM      float64 `json:"roughness_m"`
	ViscosityPaS    float64 `json:"mu_pa_s"`
	SafetyFactor    float64 `json:"sf"`
	VelocityMS      float64 `json:"velocity_m_s"`
	Reynolds        float64 `json:"reynolds"`
	ReynoldsSci     string  `json:"reynolds_sci"`
	FrictionFactor  float64 `json:"darcy_friction_factor"`
	PressureDrop100 float64 `json:"dp_kg_cm2_100m"`
	VelocityHead    float64 `json:"velocity_head"`
	Regime          Regime  `json:"regime"`
	Notes           string  `json:"notes"`
}

// Normalize converts in to SI engine inputs: w [kg/hr], rho, mu [kg/(m·s)],
// id [m], e [m], sf. A non-positive safety factor defaults to 1. NaN or
// infinite values, and negative physical inputs, give ErrInvalidInput.
func (in Input) Normalize() (w, rho, mu, id, e, sf float64, err error) {
	w, rho, sf = in.FlowKgH, in.DensityKgM3, in.SafetyFactor

	mu = in.ViscosityPaS
	if in.ViscosityCP != 0 {
		mu = units.CentipoiseToPascalSeconds(in.ViscosityCP)
	}
	id, err = lengthOf(in.IDM, in.IDValue, in.IDUnit)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, fmt.Errorf("id: %w", err)
	}
	e, err = lengthOf(in.RoughnessM, in.RoughnessValue, in.RoughnessUnit)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, fmt.Errorf("roughness: %w", err)
	}
	for _, x := range []float64{w, rho, mu, id, e, sf} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, 0, 0, 0, 0, 0, ErrInvalidInput
		}
	}
	for _, x := range []float64{w, rho, mu, id, e} {
		if x < 0 {
			return 0, 0, 0, 0, 0, 0, ErrInvalidInput
		}
	}
	if sf <= 0 {
		sf = 1.0
	}
	return w, rho, mu, id, e, sf, nil
}

func lengthOf(si, value float64, unit string) (float64, error) {
	if unit == "" {
		return si, nil
	}
	u, err := units.ParseLength(unit)
	if err != nil {
		return 0, err
	}
	return units.LengthToMetres(value, u)
}

// Calculate runs the full derivation chain for one segment. Engine failures
// are returned unwrapped so callers can match *DivisionByZeroError.
func Calculate(in Input) (Result, error) {
	w, rho, mu, id, e, sf, err := in.Normalize()
	if err != nil {
		return Result{}, err
	}
	fs := New(w, rho, mu, id, e, sf)

	dp, err := fs.PressureDrop100()
	if err != nil {
		return Result{}, err
	}
	v, _ := fs.V()
	nre, _ := fs.NRe()
	f, _ := fs.FDarcy()
	vh, err := fs.VelocityHead()
	if err != nil {
		return Result{}, err
	}

	regime := fs.Regime()
	notes := "Churchill correlation (turbulent)."
	if regime == RegimeLaminar {
		notes = "Hagen-Poiseuille friction factor 64/Re (laminar)."
	}
	return Result{
		Name:            in.Name,
		IDM:             id,
		RoughnessM:      e,
		ViscosityPaS:    mu,
		SafetyFactor:    sf,
		VelocityMS:      v,
		Reynolds:        nre,
		ReynoldsSci:     format.Sci(nre, 10, 4, 3),
		FrictionFactor:  f,
		PressureDrop100: dp,
		VelocityHead:    vh,
		Regime:          regime,
		Notes:           notes,
	}, nil
}
