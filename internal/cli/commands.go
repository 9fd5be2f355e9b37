// Package cli implements the pipecalc command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chiuwenyu/singlephase/internal/calc/importer"
	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/format"
	"github.com/chiuwenyu/singlephase/internal/units"
)

// Reference line: 13.25" ID, 150734 kg/hr at 380 kg/m³ and 0.054 cP,
// 0.046 mm roughness.
const (
	demoIDInches     = 13.25
	demoFlowKgH      = 150734.0
	demoDensity      = 380.0
	demoViscosityCP  = 0.054
	demoRoughnessMM  = 0.046
	demoSafetyFactor = 1.0
)

var resultHeaders = []string{"NAME", "REGIME", "V (m/s)", "RE", "FDARCY", "DP (kg/cm2/100m)", "VH"}

func resultRow(res singlephase.Result) []string {
	return []string{
		res.Name,
		string(res.Regime),
		format.Fixed(res.VelocityMS, 4),
		format.Sci(res.Reynolds, 10, 4, 3),
		format.Fixed(res.FrictionFactor, 6),
		format.Fixed(res.PressureDrop100, 6),
		format.Fixed(res.VelocityHead, 4),
	}
}

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(version string, out io.Writer) *cobra.Command {
	var jsonOutput bool

	root := &cobra.Command{
		Use:           "pipecalc",
		Short:         "Single-phase pipe line hydraulics",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *Output { return NewOutput(out, jsonOutput) }

	root.AddCommand(
		newDemoCmd(out),
		newCalcCmd(outputFn),
		newSheetCmd(outputFn),
	)
	return root
}

func newDemoCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the reference line through the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := units.InchesToMetres(demoIDInches)
			fs := singlephase.New(
				demoFlowKgH,
				demoDensity,
				units.CentipoiseToPascalSeconds(demoViscosityCP),
				id,
				units.MillimetresToMetres(demoRoughnessMM),
				demoSafetyFactor,
			)

			fmt.Fprintf(out, "Act. ID :  %.2f inch, equal to %.8f meters\n", demoIDInches, id)
			v, err := fs.Velocity()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Velocity (m/s) : %.4f\n", v)
			dp, err := fs.PressureDrop100()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pressure Drop (Kg/cm^2/100m) : %.6f\n", dp)
			vh, err := fs.VelocityHead()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "1.0 V.H. (Kg/m/s^2) : %.4f\n", vh)
			nre, err := fs.ReynoldNum()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Reynold No. [-] : %s\n", format.Sci(nre, 10, 4, 3))
			return nil
		},
	}
}

func newCalcCmd(outputFn func() *Output) *cobra.Command {
	var in singlephase.Input

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate one pipe segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := singlephase.Calculate(in)
			if err != nil {
				return err
			}
			slog.Debug("calculated segment", "regime", res.Regime, "dp100", res.PressureDrop100)
			return outputFn().Print(resultHeaders, [][]string{resultRow(res)}, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Segment name")
	f.Float64Var(&in.FlowKgH, "w", 0, "Mass flow rate [kg/hr]")
	f.Float64Var(&in.DensityKgM3, "rho", 0, "Density [kg/m3]")
	f.Float64Var(&in.ViscosityCP, "mu", 0, "Viscosity [cP]")
	f.Float64Var(&in.IDValue, "id", 0, "Inside diameter")
	f.StringVar(&in.IDUnit, "id-unit", string(units.Inches), "Inside diameter unit (m, cm, mm, in, ft)")
	f.Float64Var(&in.RoughnessValue, "roughness", 0.046, "Absolute roughness")
	f.StringVar(&in.RoughnessUnit, "roughness-unit", string(units.Millimetres), "Roughness unit (m, cm, mm, in, ft)")
	f.Float64Var(&in.SafetyFactor, "sf", 1, "Safety factor")
	cmd.MarkFlagRequired("w")
	cmd.MarkFlagRequired("rho")
	cmd.MarkFlagRequired("mu")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newSheetCmd(outputFn func() *Output) *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "sheet <file.xlsx>",
		Short: "Calculate every segment row of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			segments, rowErrs, err := importer.ReadSegments(f)
			if err != nil {
				return err
			}
			for _, re := range rowErrs {
				slog.Warn("skipped row", "row", re.Row, "error", re.Err)
			}

			inputs := make([]singlephase.Input, 0, len(segments))
			results := make([]singlephase.Result, 0, len(segments))
			rows := make([][]string, 0, len(segments))
			for _, seg := range segments {
				inputs = append(inputs, seg.Input)
				res, err := singlephase.Calculate(seg.Input)
				if err != nil {
					slog.Warn("segment failed", "row", seg.Row, "error", err)
					rows = append(rows, []string{seg.Input.Name, "error: " + err.Error()})
					continue
				}
				if res.Name == "" {
					res.Name = "row " + strconv.Itoa(seg.Row)
				}
				results = append(results, res)
				rows = append(rows, resultRow(res))
			}

			if exportPath != "" {
				out, err := os.Create(exportPath)
				if err != nil {
					return err
				}
				if err := importer.WriteResults(out, inputs); err != nil {
					out.Close()
					return err
				}
				if err := out.Close(); err != nil {
					return err
				}
			}
			return outputFn().Print(resultHeaders, rows, results)
		},
	}
	cmd.Flags().StringVarP(&exportPath, "export", "o", "", "Write results to an xlsx workbook")
	return cmd
}
