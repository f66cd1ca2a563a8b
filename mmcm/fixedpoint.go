// Package mmcm computes MMCM dynamic-reconfiguration register values.
//
// The package is the pure, deterministic half of the DRP controller: given
// human-meaningful clock parameters (divide ratios, phase in millidegrees,
// duty cycle in parts per 100000, loop-filter bandwidth class) it produces
// the exact 16-bit register words the hardware expects, and expands a full
// ClockProfile into the ordered RegisterUpdate sequence the reconfiguration
// sequencer walks at runtime. Nothing here is recomputed after startup.
//
// All arithmetic is integer fixed-point with 10 fractional bits.
package mmcm

const (
	// FracBits is the number of fractional bits used by the fixed-point
	// arithmetic throughout the calculator.
	FracBits = 10

	// FracOne is the fixed-point representation of 1.0.
	FracOne = 1 << FracBits

	// DutyScale is the denominator of duty-cycle values: a duty cycle is
	// expressed as parts per 100000 of the output period.
	DutyScale = 100000

	// PhaseScale is the denominator of phase values: a phase offset is
	// expressed in millidegrees, so a full turn is 360000.
	PhaseScale = 360000
)

// RoundToFraction rounds a fixed-point value to a coarser precision of
// keepBits fractional bits, rounding half up on the bit immediately below
// the retained precision. Bits below the retained precision are left in
// place; callers select only the bits they keep.
func RoundToFraction(value uint64, keepBits uint) uint64 {
	half := uint64(1) << (FracBits - keepBits - 1)
	if value&half != 0 {
		value += half
	}
	return value
}
