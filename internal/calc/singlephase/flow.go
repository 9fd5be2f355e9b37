package singlephase

import "math"

const (
	// G is standard gravity [m/s^2].
	G = 9.80665
	// LaminarLimit is the highest Reynolds number treated as laminar.
	LaminarLimit = 2300.0
)

type value struct {
	v  float64
	ok bool
}

// FlowState holds one pipe segment's inputs and its derived hydraulics.
// Inputs are fixed at construction. A FlowState is not safe for concurrent
// use; evaluate parallel segments with separate instances.
type FlowState struct {
	w   float64 // mass flow rate [kg/hr]
	rho float64 // density [kg/m^3]
	mu  float64 // viscosity [kg/(m·s)]
	id  float64 // inside diameter [m]
	e   float64 // absolute roughness [m]
	sf  float64 // safety factor [-]

	v      value // velocity [m/s]
	nre    value // Reynolds number [-]
	fdarcy value // Darcy friction factor [-]
	dp100  value // pressure drop [kg/cm^2/100m]
	vh     value // velocity head [kg/(m·s^2)]
}

// New stores the inputs verbatim. No derived quantity is computed.
func New(w, rho, mu, id, e, sf float64) *FlowState {
	return &FlowState{w: w, rho: rho, mu: mu, id: id, e: e, sf: sf}
}

// W returns the mass flow rate [kg/hr].
func (s *FlowState) W() float64 { return s.w }

// Rho returns the density [kg/m^3].
func (s *FlowState) Rho() float64 { return s.rho }

// Mu returns the viscosity [kg/(m·s)].
func (s *FlowState) Mu() float64 { return s.mu }

// ID returns the inside diameter [m].
func (s *FlowState) ID() float64 { return s.id }

// E returns the absolute roughness [m].
func (s *FlowState) E() float64 { return s.e }

// SF returns the safety factor.
func (s *FlowState) SF() float64 { return s.sf }

// V returns the last computed velocity and whether it has been computed.
func (s *FlowState) V() (float64, bool) { return s.v.v, s.v.ok }

// NRe returns the last computed Reynolds number and whether it has been
// computed.
func (s *FlowState) NRe() (float64, bool) { return s.nre.v, s.nre.ok }

// FDarcy returns the last computed Darcy friction factor and whether it has
// been computed.
func (s *FlowState) FDarcy() (float64, bool) { return s.fdarcy.v, s.fdarcy.ok }

// DP100 returns the last computed pressure drop per 100 m and whether it has
// been computed.
func (s *FlowState) DP100() (float64, bool) { return s.dp100.v, s.dp100.ok }

// VH returns the last computed velocity head and whether it has been
// computed.
func (s *FlowState) VH() (float64, bool) { return s.vh.v, s.vh.ok }

// Velocity computes the mean flow velocity [m/s].
func (s *FlowState) Velocity() (float64, error) {
	if err := s.nonZero("velocity", FieldRho, FieldID); err != nil {
		return 0, err
	}
	area := math.Pi / 4 * s.id * s.id
	v := s.w / s.rho / area / 3600
	s.v = value{v, true}
	return v, nil
}

// ReynoldNum computes the Reynolds number, re-deriving velocity first.
func (s *FlowState) ReynoldNum() (float64, error) {
	v, err := s.Velocity()
	if err != nil {
		return 0, err
	}
	if err := s.nonZero("reynold_num", FieldRho, FieldID, FieldMu); err != nil {
		return 0, err
	}
	nre := s.rho * v * s.id / s.mu
	s.nre = value{nre, true}
	return nre, nil
}

// DarcyFrictionFactor computes the Darcy friction factor: 64/Re for laminar
// flow, the Churchill correlation above LaminarLimit. Zero flow fails with a
// DivisionByZeroError naming FieldW.
func (s *FlowState) DarcyFrictionFactor() (float64, error) {
	if _, err := s.Velocity(); err != nil {
		return 0, err
	}
	nre, err := s.ReynoldNum()
	if err != nil {
		return 0, err
	}
	if err := s.nonZero("darcy_friction_factor", FieldRho, FieldID, FieldMu); err != nil {
		return 0, err
	}
	var f float64
	if nre <= LaminarLimit {
		// No flow leaves 64/Re undefined.
		if nre == 0 {
			return 0, &DivisionByZeroError{Op: "darcy_friction_factor", Fields: []Field{FieldW}}
		}
		f = 64 / nre
	} else {
		f = 4 * churchillFanning(nre, s.e/s.id)
	}
	s.fdarcy = value{f, true}
	return f, nil
}

// PressureDrop100 computes the frictional pressure drop per 100 m of pipe
// [kg/cm^2/100m], scaled by the safety factor.
func (s *FlowState) PressureDrop100() (float64, error) {
	f, err := s.DarcyFrictionFactor()
	if err != nil {
		return 0, err
	}
	v, err := s.Velocity()
	if err != nil {
		return 0, err
	}
	if err := s.nonZero("pressure_drop_100", FieldRho, FieldID, FieldMu); err != nil {
		return 0, err
	}
	dp := f * s.rho * v * v / (2 * G * s.id) / 10000 * 100 * s.sf
	s.dp100 = value{dp, true}
	return dp, nil
}

// VelocityHead computes rho·v^2.
func (s *FlowState) VelocityHead() (float64, error) {
	v, err := s.Velocity()
	if err != nil {
		return 0, err
	}
	vh := s.rho * v * v
	s.vh = value{vh, true}
	return vh, nil
}

// Regime classifies the last computed Reynolds number.
func (s *FlowState) Regime() Regime {
	if !s.nre.ok {
		return RegimeUnknown
	}
	return RegimeOf(s.nre.v)
}

func (s *FlowState) nonZero(op string, fields ...Field) error {
	var zero []Field
	for _, f := range fields {
		if s.field(f) == 0 {
			zero = append(zero, f)
		}
	}
	if len(zero) > 0 {
		return &DivisionByZeroError{Op: op, Fields: zero}
	}
	return nil
}

func (s *FlowState) field(f Field) float64 {
	switch f {
	case FieldW:
		return s.w
	case FieldRho:
		return s.rho
	case FieldID:
		return s.id
	case FieldMu:
		return s.mu
	}
	return math.NaN()
}

// churchillFanning returns the Fanning friction factor for Reynolds number
// nre and relative roughness rr = e/id.
func churchillFanning(nre, rr float64) float64 {
	c := math.Pow(7/nre, 0.9) + 0.27*rr
	a := math.Pow(2.457*math.Log(c), 16)
	b := math.Pow(37530/nre, 16)
	term := math.Pow(8/nre, 12) + 1/math.Pow(a+b, 1.5)
	return 2 * math.Pow(term, 1.0/12)
}
