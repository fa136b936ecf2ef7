// Package model defines the core domain entities for the cut-calc service.
package model

import "fmt"

// Unit is an enumerated linear-measurement system with a fixed conversion
// factor to the canonical unit (millimeters).
//
// @Description Linear measurement unit
// @Example "mm"
type Unit string

const (
	// UnitMillimeter is the canonical unit. All allocator arithmetic happens
	// in millimeters.
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitMeter      Unit = "m"
	UnitInch       Unit = "in"
	UnitFoot       Unit = "ft"
	UnitYard       Unit = "yd"
)

// unitFactors maps each unit to its scalar conversion factor into millimeters.
var unitFactors = map[Unit]float64{
	UnitMillimeter: 1,
	UnitCentimeter: 10,
	UnitMeter:      1000,
	UnitInch:       25.4,
	UnitFoot:       304.8,
	UnitYard:       914.4,
}

// Factor returns the unit's conversion factor to millimeters.
// An unrecognized unit is a programming error, not user input: the DTO layer
// validates unit strings before they reach the domain, so this panics.
func (u Unit) Factor() float64 {
	f, ok := unitFactors[u]
	if !ok {
		panic(fmt.Sprintf("model: unknown unit %q", u))
	}
	return f
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := unitFactors[u]
	return ok
}

// ToCanonical converts a value expressed in u into millimeters.
func (u Unit) ToCanonical(value float64) float64 {
	return value * u.Factor()
}

// FromCanonical converts a millimeter value back into u for display.
func (u Unit) FromCanonical(value float64) float64 {
	return value / u.Factor()
}

// Units returns all supported units in a stable order.
func Units() []Unit {
	return []Unit{UnitMillimeter, UnitCentimeter, UnitMeter, UnitInch, UnitFoot, UnitYard}
}
