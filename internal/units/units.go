package units

import (
	"errors"
	"fmt"
	"strings"
)

type Length string

const (
	Metres      Length = "m"
	Centimetres Length = "cm"
	Millimetres Length = "mm"
	Inches      Length = "in"
	Feet        Length = "ft"
)

var ErrUnknownUnit = errors.New("unknown unit")

// metres per unit
var lengthFactors = map[Length]float64{
	Metres:      1,
	Centimetres: 0.01,
	Millimetres: 0.001,
	Inches:      0.0254,
	Feet:        0.3048,
}

var lengthAliases = map[string]Length{
	"m": Metres, "metre": Metres, "metres": Metres, "meter": Metres, "meters": Metres,
	"cm": Centimetres, "centimetre": Centimetres, "centimetres": Centimetres,
	"mm": Millimetres, "millimetre": Millimetres, "millimetres": Millimetres, "millimeter": Millimetres, "millimeters": Millimetres,
	"in": Inches, "inch": Inches, "inches": Inches, "\"": Inches,
	"ft": Feet, "foot": Feet, "feet": Feet, "'": Feet,
}

// ParseLength accepts a unit symbol or name, case-insensitive.
// An empty string means metres.
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Metres, nil
	}
	u, ok := lengthAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func LengthToMetres(value float64, unit Length) (float64, error) {
	f, ok := lengthFactors[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return value * f, nil
}

func MetresToLength(value float64, unit Length) (float64, error) {
	f, ok := lengthFactors[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return value / f, nil
}

func InchesToMetres(v float64) float64 { return v * lengthFactors[Inches] }
func MetresToInches(v float64) float64 { return v / lengthFactors[Inches] }
func MillimetresToMetres(v float64) float64 { return v * lengthFactors[Millimetres] }
func MetresToMillimetres(v float64) float64 { return v / lengthFactors[Millimetres] }

// 1 cP = 1 mPa·s = 0.001 kg/(m·s)
func CentipoiseToPascalSeconds(cp float64) float64 { return cp * 0.001 }
func PascalSecondsToCentipoise(pas float64) float64 { return pas / 0.001 }

func KgPerHourToKgPerSecond(w float64) float64 { return w / 3600 }
func KgPerSecondToKgPerHour(w float64) float64 { return w * 3600 }
