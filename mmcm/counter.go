package mmcm

import "fmt"

// DividerFields holds the divide/duty half of one counter pair.
type DividerFields struct {
	// HighTime is the number of VCO cycles the output is high (6 bits).
	HighTime uint8

	// LowTime is the number of VCO cycles the output is low (6 bits).
	LowTime uint8

	// WEdge stretches the high phase by half a VCO cycle when set.
	WEdge bool

	// NoCount bypasses the counter entirely (divide == 1).
	NoCount bool
}

// PhaseFields holds the phase half of one counter pair.
type PhaseFields struct {
	// PhaseMux selects the VCO phase tap in eighths of a cycle (3 bits).
	PhaseMux uint8

	// DelayTime is the coarse phase delay in whole VCO cycles (6 bits).
	DelayTime uint8

	// MuxSel is the 2-bit mux-select field. The coarse mux is always
	// engaged, so the field is fixed to zero.
	MuxSel uint8
}

// CounterFields is the packed representation of one divide/phase counter
// pair, ready to be placed into the two 16-bit counter registers.
type CounterFields struct {
	DividerFields
	PhaseFields
}

// ComputeDividerFields derives high/low times and the edge/no-count flags
// for a counter from its divide ratio and duty cycle.
//
// divide must be in [1,128]; dutyCycle is parts per 100000 and must lie in
// the exclusive range (0,100000). divide == 1 is a hardware special case:
// the counter is bypassed (no-count) and high/low are fixed to 1.
//
// The duty cycle is converted to fixed point, multiplied by the divide
// ratio and rounded to half-cycle precision. The integer part becomes the
// high time and the surviving half bit becomes the edge flag. The high
// time is then clamped into [1, divide-1]: a zero or full-period high
// pulse cannot be represented by the hardware counter.
func ComputeDividerFields(divide, dutyCycle int) (DividerFields, error) {
	if divide < 1 || divide > 128 {
		return DividerFields{}, fmt.Errorf("divide ratio %d out of range [1,128]", divide)
	}
	if dutyCycle <= 0 || dutyCycle >= DutyScale {
		return DividerFields{}, fmt.Errorf("duty cycle %d out of range (0,%d)", dutyCycle, DutyScale)
	}

	if divide == 1 {
		return DividerFields{HighTime: 1, LowTime: 1, NoCount: true}, nil
	}

	dutyFix := (uint64(dutyCycle) << FracBits) / DutyScale
	t := RoundToFraction(dutyFix*uint64(divide), 1)

	high := int(t >> FracBits)
	edge := (t>>(FracBits-1))&1 == 1

	if high == 0 {
		high = 1
		edge = false
	}
	if high == divide {
		high = divide - 1
		edge = true
	}

	return DividerFields{
		HighTime: uint8(high),
		LowTime:  uint8(divide - high),
		WEdge:    edge,
	}, nil
}

// ComputePhaseFields derives the phase-mux selector and coarse delay for a
// counter from its divide ratio and phase offset in millidegrees.
//
// phase must be in [-360000,360000]; negative phases are normalized into
// [0,360000). The offset is converted to fixed-point VCO cycles
// (phase * divide / 360000) and rounded to eighth-cycle precision, which
// is the resolution of the hardware phase mux. The rounded value splits
// into a 3-bit eighths selector and a 6-bit whole-cycle delay.
func ComputePhaseFields(divide, phase int) (PhaseFields, error) {
	if divide < 1 || divide > 128 {
		return PhaseFields{}, fmt.Errorf("divide ratio %d out of range [1,128]", divide)
	}
	if phase < -PhaseScale || phase > PhaseScale {
		return PhaseFields{}, fmt.Errorf("phase %d out of range [-%d,%d]", phase, PhaseScale, PhaseScale)
	}

	if phase < 0 {
		phase += PhaseScale
	}

	cycles := (uint64(phase) << FracBits) * uint64(divide) / PhaseScale
	t := RoundToFraction(cycles, 3)

	return PhaseFields{
		PhaseMux:  uint8((t >> (FracBits - 3)) & 0x7),
		DelayTime: uint8((t >> FracBits) & 0x3F),
	}, nil
}

// ComputeCounterFields derives the full counter pair for one output.
func ComputeCounterFields(divide, phase, dutyCycle int) (CounterFields, error) {
	div, err := ComputeDividerFields(divide, dutyCycle)
	if err != nil {
		return CounterFields{}, err
	}
	ph, err := ComputePhaseFields(divide, phase)
	if err != nil {
		return CounterFields{}, err
	}
	return CounterFields{DividerFields: div, PhaseFields: ph}, nil
}

// Reg1Value packs the lower counter register word:
// {phase_mux[2:0] @15:13, reserved @12, high_time[5:0] @11:6, low_time[5:0] @5:0}.
func (c CounterFields) Reg1Value() uint16 {
	return uint16(c.PhaseMux&0x7)<<13 |
		uint16(c.HighTime&0x3F)<<6 |
		uint16(c.LowTime&0x3F)
}

// Reg2Value packs the upper counter register word:
// {reserved @15:10, mux[1:0] @9:8, edge @7, no_count @6, delay_time[5:0] @5:0}.
func (c CounterFields) Reg2Value() uint16 {
	v := uint16(c.MuxSel&0x3)<<8 | uint16(c.DelayTime&0x3F)
	if c.WEdge {
		v |= 1 << 7
	}
	if c.NoCount {
		v |= 1 << 6
	}
	return v
}

// DivRegValue packs the single input-divider register word:
// {edge @13, no_count @12, high_time[5:0] @11:6, low_time[5:0] @5:0}.
func (d DividerFields) DivRegValue() uint16 {
	v := uint16(d.HighTime&0x3F)<<6 | uint16(d.LowTime&0x3F)
	if d.WEdge {
		v |= 1 << 13
	}
	if d.NoCount {
		v |= 1 << 12
	}
	return v
}
