package singlephase

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 13.25 in line, 0.046 mm roughness, 0.054 cP
func referenceState() *FlowState {
	return New(150734.0, 380.0, 0.054*0.001, 13.25*0.0254, 0.046*0.001, 1.0)
}

func TestNew_NothingComputed(t *testing.T) {
	fs := referenceState()

	for name, get := range map[string]func() (float64, bool){
		"v": fs.V, "nre": fs.NRe, "fdarcy": fs.FDarcy, "dp100": fs.DP100, "vh": fs.VH,
	} {
		_, ok := get()
		assert.False(t, ok, name)
	}
	assert.Equal(t, RegimeUnknown, fs.Regime())
	assert.Equal(t, 150734.0, fs.W())
	assert.Equal(t, 380.0, fs.Rho())
	assert.Equal(t, 1.0, fs.SF())
}

func TestReferenceExample(t *testing.T) {
	fs := referenceState()

	v, err := fs.Velocity()
	require.NoError(t, err)
	assert.InEpsilon(t, 1.2386142026180595, v, 1e-12)
	assert.Equal(t, 1.2, math.Round(v*10)/10)

	dp, err := fs.PressureDrop100()
	require.NoError(t, err)
	assert.InEpsilon(t, 0.011714964623188415, dp, 1e-9)

	nre, ok := fs.NRe()
	require.True(t, ok)
	assert.InEpsilon(t, 2933428.365900389, nre, 1e-12)

	f, ok := fs.FDarcy()
	require.True(t, ok)
	assert.InEpsilon(t, 0.013264336774626793, f, 1e-9)
	assert.True(t, f > 0.01 && f < 0.05)
	assert.Equal(t, RegimeTurbulent, fs.Regime())

	vh, err := fs.VelocityHead()
	require.NoError(t, err)
	assert.InEpsilon(t, 582.9827543123251, vh, 1e-12)
}

func TestVelocity_Formula(t *testing.T) {
	cases := []struct{ w, rho, id float64 }{
		{3600, 1000, 0.1},
		{150734, 380, 0.33655},
		{1, 0.5, 2},
	}
	for _, c := range cases {
		fs := New(c.w, c.rho, 1e-3, c.id, 0, 1)
		v, err := fs.Velocity()
		require.NoError(t, err)
		want := c.w / c.rho / (math.Pi / 4 * c.id * c.id) / 3600
		assert.InEpsilon(t, want, v, 1e-14)

		again, err := fs.Velocity()
		require.NoError(t, err)
		assert.Equal(t, v, again)
	}
}

func TestReynoldNum_ConsistentWithVelocity(t *testing.T) {
	fs := referenceState()
	nre, err := fs.ReynoldNum()
	require.NoError(t, err)
	v, err := fs.Velocity()
	require.NoError(t, err)
	assert.InEpsilon(t, fs.Rho()*v*fs.ID()/fs.Mu(), nre, 1e-14)
}

func TestDarcyFrictionFactor_Laminar(t *testing.T) {
	for _, w := range []float64{36, 3600, 100000, 280000} {
		fs := New(w, 1000, 1.0, 0.1, 0.000046, 1)
		f, err := fs.DarcyFrictionFactor()
		require.NoError(t, err)
		nre, _ := fs.NRe()
		require.LessOrEqual(t, nre, LaminarLimit)
		assert.InDelta(t, 64.0, f*nre, 1e-9)
		assert.Equal(t, RegimeLaminar, fs.Regime())
	}
}

func TestDarcyFrictionFactor_Turbulent(t *testing.T) {
	fs := New(50000, 1000, 0.001, 0.1, 0.000046, 1)
	f, err := fs.DarcyFrictionFactor()
	require.NoError(t, err)
	nre, _ := fs.NRe()
	require.Greater(t, nre, LaminarLimit)
	assert.InEpsilon(t, 4*churchillFanning(nre, 0.000046/0.1), f, 1e-14)
	assert.NotEqual(t, 64/nre, f)
}

func TestBranchBoundary(t *testing.T) {
	above := math.Nextafter(LaminarLimit, math.Inf(1))
	assert.Equal(t, RegimeLaminar, RegimeOf(LaminarLimit))
	assert.Equal(t, RegimeTurbulent, RegimeOf(above))

	laminar := 64 / LaminarLimit
	turbulent := 4 * churchillFanning(above, 0)
	ratio := turbulent / laminar
	assert.True(t, ratio > 0.5 && ratio < 2, "ratio %v", ratio)
}

func TestPressureDrop100_ScalesWithSafetyFactor(t *testing.T) {
	base, err := New(150734, 380, 0.000054, 0.33655, 0.000046, 1).PressureDrop100()
	require.NoError(t, err)
	scaled, err := New(150734, 380, 0.000054, 0.33655, 0.000046, 1.25).PressureDrop100()
	require.NoError(t, err)
	assert.InEpsilon(t, 1.25*base, scaled, 1e-14)
}

func TestDivisionByZero(t *testing.T) {
	cases := []struct {
		name   string
		fs     *FlowState
		op     func(*FlowState) (float64, error)
		wantOp string
		fields []Field
	}{
		{"velocity rho", New(1, 0, 1, 1, 0, 1), (*FlowState).Velocity, "velocity", []Field{FieldRho}},
		{"velocity id", New(1, 1, 1, 0, 0, 1), (*FlowState).Velocity, "velocity", []Field{FieldID}},
		{"velocity both", New(1, 0, 1, 0, 0, 1), (*FlowState).Velocity, "velocity", []Field{FieldRho, FieldID}},
		{"velocity ignores mu", New(1, 1, 0, 1, 0, 1), (*FlowState).Velocity, "", nil},
		{"reynold mu", New(1, 1, 0, 1, 0, 1), (*FlowState).ReynoldNum, "reynold_num", []Field{FieldMu}},
		{"reynold propagates", New(1, 0, 0, 1, 0, 1), (*FlowState).ReynoldNum, "velocity", []Field{FieldRho}},
		{"darcy mu", New(1, 1, 0, 1, 0, 1), (*FlowState).DarcyFrictionFactor, "reynold_num", []Field{FieldMu}},
		{"dp100 id", New(1, 1, 1, 0, 0, 1), (*FlowState).PressureDrop100, "velocity", []Field{FieldID}},
		{"dp100 mu", New(1, 1, 0, 1, 0, 1), (*FlowState).PressureDrop100, "reynold_num", []Field{FieldMu}},
		{"velocity head rho", New(1, 0, 1, 1, 0, 1), (*FlowState).VelocityHead, "velocity", []Field{FieldRho}},
		{"velocity zero flow", New(0, 1000, 0.001, 0.1, 0, 1), (*FlowState).Velocity, "", nil},
		{"darcy zero flow", New(0, 1000, 0.001, 0.1, 0, 1), (*FlowState).DarcyFrictionFactor, "darcy_friction_factor", []Field{FieldW}},
		{"dp100 zero flow", New(0, 1000, 0.001, 0.1, 0, 1), (*FlowState).PressureDrop100, "darcy_friction_factor", []Field{FieldW}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.op(c.fs)
			if c.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDivisionByZero))

			var dz *DivisionByZeroError
			require.True(t, errors.As(err, &dz))
			assert.Equal(t, c.wantOp, dz.Op)
			assert.Equal(t, c.fields, dz.Fields)
			for _, f := range c.fields {
				assert.True(t, dz.Has(f))
				assert.Contains(t, dz.Error(), string(f))
			}
		})
	}
}

func TestFailedDerivationKeepsPriorValues(t *testing.T) {
	fs := New(3600, 1000, 0, 0.1, 0, 1)

	v, err := fs.Velocity()
	require.NoError(t, err)

	_, err = fs.PressureDrop100()
	require.Error(t, err)

	got, ok := fs.V()
	assert.True(t, ok)
	assert.Equal(t, v, got)
	for _, get := range []func() (float64, bool){fs.NRe, fs.FDarcy, fs.DP100} {
		_, ok := get()
		assert.False(t, ok)
	}
}

func TestVelocityFailureLeavesFieldUncomputed(t *testing.T) {
	fs := New(3600, 0, 1, 0.1, 0, 1)
	_, err := fs.Velocity()
	require.Error(t, err)
	_, ok := fs.V()
	assert.False(t, ok)
}

func TestZeroFlowStaysFinite(t *testing.T) {
	fs := New(0, 1000, 0.001, 0.1, 0, 1)

	_, err := fs.PressureDrop100()
	require.ErrorIs(t, err, ErrDivisionByZero)

	nre, ok := fs.NRe()
	assert.True(t, ok)
	assert.Equal(t, 0.0, nre)
	_, ok = fs.FDarcy()
	assert.False(t, ok)
	_, ok = fs.DP100()
	assert.False(t, ok)

	vh, err := fs.VelocityHead()
	require.NoError(t, err)
	assert.Equal(t, 0.0, vh)
}
