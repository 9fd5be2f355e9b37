package singlephase

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiuwenyu/singlephase/internal/units"
)

func referenceInput() Input {
	return Input{
		Name:           "P-101 discharge",
		FlowKgH:        150734,
		DensityKgM3:    380,
		ViscosityCP:    0.054,
		IDValue:        13.25,
		IDUnit:         "in",
		RoughnessValue: 0.046,
		RoughnessUnit:  "mm",
		SafetyFactor:   1,
	}
}

func TestCalculate_Reference(t *testing.T) {
	res, err := Calculate(referenceInput())
	require.NoError(t, err)

	assert.Equal(t, "P-101 discharge", res.Name)
	assert.InEpsilon(t, 0.33655, res.IDM, 1e-12)
	assert.InEpsilon(t, 0.000046, res.RoughnessM, 1e-12)
	assert.InEpsilon(t, 0.000054, res.ViscosityPaS, 1e-12)
	assert.InEpsilon(t, 1.2386142026180595, res.VelocityMS, 1e-12)
	assert.InEpsilon(t, 2933428.365900389, res.Reynolds, 1e-12)
	assert.Equal(t, "2.9334e+006", res.ReynoldsSci)
	assert.InEpsilon(t, 0.013264336774626793, res.FrictionFactor, 1e-9)
	assert.InEpsilon(t, 0.011714964623188415, res.PressureDrop100, 1e-9)
	assert.InEpsilon(t, 582.9827543123251, res.VelocityHead, 1e-12)
	assert.Equal(t, RegimeTurbulent, res.Regime)
}

func TestCalculate_SIInputsMatchUnitInputs(t *testing.T) {
	si := Input{
		FlowKgH:      150734,
		DensityKgM3:  380,
		ViscosityPaS: units.CentipoiseToPascalSeconds(0.054),
		IDM:          units.InchesToMetres(13.25),
		RoughnessM:   units.MillimetresToMetres(0.046),
		SafetyFactor: 1,
	}
	a, err := Calculate(si)
	require.NoError(t, err)
	b, err := Calculate(referenceInput())
	require.NoError(t, err)
	assert.Equal(t, a.PressureDrop100, b.PressureDrop100)
	assert.Equal(t, a.Reynolds, b.Reynolds)
}

func TestCalculate_DefaultSafetyFactor(t *testing.T) {
	in := referenceInput()
	in.SafetyFactor = 0
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.SafetyFactor)
}

func TestCalculate_Laminar(t *testing.T) {
	res, err := Calculate(Input{FlowKgH: 3600, DensityKgM3: 1000, ViscosityCP: 1000, IDM: 0.1, SafetyFactor: 1})
	require.NoError(t, err)
	assert.Equal(t, RegimeLaminar, res.Regime)
	assert.InDelta(t, 64.0, res.FrictionFactor*res.Reynolds, 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	in := referenceInput()
	in.DensityKgM3 = 0
	_, err := Calculate(in)
	var dz *DivisionByZeroError
	require.True(t, errors.As(err, &dz))
	assert.Equal(t, []Field{FieldRho}, dz.Fields)
	assert.Equal(t, "division_by_zero", ErrorKind(err))

	in = referenceInput()
	in.IDUnit = "furlong"
	_, err = Calculate(in)
	assert.True(t, errors.Is(err, units.ErrUnknownUnit))
	assert.Equal(t, "other", ErrorKind(err))

	in = referenceInput()
	in.FlowKgH = -1
	_, err = Calculate(in)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "invalid_input", ErrorKind(err))
}

func TestCalculate_ZeroFlow(t *testing.T) {
	in := referenceInput()
	in.FlowKgH = 0
	_, err := Calculate(in)
	var dz *DivisionByZeroError
	require.True(t, errors.As(err, &dz))
	assert.Equal(t, []Field{FieldW}, dz.Fields)
	assert.Equal(t, "division_by_zero", ErrorKind(err))
}

func TestCalculate_NonFiniteInputs(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Input)
	}{
		{"nan sf", func(in *Input) { in.SafetyFactor = math.NaN() }},
		{"inf sf", func(in *Input) { in.SafetyFactor = math.Inf(1) }},
		{"negative inf sf", func(in *Input) { in.SafetyFactor = math.Inf(-1) }},
		{"nan density", func(in *Input) { in.DensityKgM3 = math.NaN() }},
		{"inf flow", func(in *Input) { in.FlowKgH = math.Inf(1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := referenceInput()
			c.mod(&in)
			_, err := Calculate(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
