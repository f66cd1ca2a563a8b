package mmcm

import "fmt"

// DRP register addresses driven by the reconfiguration sequence.
const (
	RegClkOut0Reg1 = 0x08 // output counter, lower word
	RegClkOut0Reg2 = 0x09 // output counter, upper word
	RegClkFBReg1   = 0x14 // feedback counter, lower word
	RegClkFBReg2   = 0x15 // feedback counter, upper word
	RegDivClk      = 0x16 // input divider
	RegLock1       = 0x18
	RegLock2       = 0x19
	RegLock3       = 0x1A
	RegPower       = 0x28
	RegFilter1     = 0x4E
	RegFilter2     = 0x4F
)

// Preserve masks per register: a set bit belongs to the hardware and must
// survive the read-modify-write untouched.
const (
	maskPower       = 0x0000
	maskClkOut0Reg1 = 0x1000
	maskClkOut0Reg2 = 0xFC00
	maskClkFBReg1   = 0x1000
	maskClkFBReg2   = 0x8000
	maskDivClk      = 0xC000
	maskLock1       = 0xFC00
	maskLock2       = 0x8000
	maskLock3       = 0x8000
	maskFilter1     = 0x66FF
	maskFilter2     = 0x666F
)

// UpdatesPerProfile is the fixed length of one profile's update sequence:
// power, output counter (2), input divider, feedback counter (2),
// lock (3), filter (2).
const UpdatesPerProfile = 11

// MaxProfiles is the number of profiles the 2-bit selector can address.
const MaxProfiles = 4

// RegisterUpdate is the atomic unit the sequencer applies to the device:
// read register Addr, keep the bits named by Mask, OR in Value, write the
// result back. Value never overlaps Mask.
type RegisterUpdate struct {
	// Addr is the 7-bit DRP register address.
	Addr uint8

	// Mask names the register bits to preserve.
	Mask uint16

	// Value holds the new bits, confined to the complement of Mask.
	Value uint16
}

// Apply returns the register content after this update is applied to old.
func (u RegisterUpdate) Apply(old uint16) uint16 {
	return old&u.Mask | u.Value
}

// ClockProfile is the user-facing specification of one target clock
// configuration. A profile is immutable once defined; it is expanded into
// RegisterUpdates exactly once, at initialization.
type ClockProfile struct {
	// FeedbackMultiply is the feedback divider M, 1-64.
	FeedbackMultiply int

	// FeedbackPhase is the feedback path phase offset in millidegrees.
	// Fixed at 0 in practice.
	FeedbackPhase int

	// Bandwidth is the loop-filter bandwidth class.
	Bandwidth Bandwidth

	// InputDivide is the input pre-divider D, 1-128.
	InputDivide int

	// OutputDivide is the output counter divide ratio, 1-128.
	OutputDivide int

	// OutputPhase is the output phase offset in millidegrees,
	// -360000..360000.
	OutputPhase int

	// OutputDuty is the output duty cycle in parts per 100000,
	// exclusive range (0,100000).
	OutputDuty int
}

// Validate checks the profile's parameter ranges.
func (p ClockProfile) Validate() error {
	if p.FeedbackMultiply < 1 || p.FeedbackMultiply > 64 {
		return fmt.Errorf("feedback multiply %d out of range [1,64]", p.FeedbackMultiply)
	}
	if p.FeedbackPhase < -PhaseScale || p.FeedbackPhase > PhaseScale {
		return fmt.Errorf("feedback phase %d out of range [-%d,%d]", p.FeedbackPhase, PhaseScale, PhaseScale)
	}
	if p.InputDivide < 1 || p.InputDivide > 128 {
		return fmt.Errorf("input divide %d out of range [1,128]", p.InputDivide)
	}
	if p.OutputDivide < 1 || p.OutputDivide > 128 {
		return fmt.Errorf("output divide %d out of range [1,128]", p.OutputDivide)
	}
	if p.OutputPhase < -PhaseScale || p.OutputPhase > PhaseScale {
		return fmt.Errorf("output phase %d out of range [-%d,%d]", p.OutputPhase, PhaseScale, PhaseScale)
	}
	if p.OutputDuty <= 0 || p.OutputDuty >= DutyScale {
		return fmt.Errorf("output duty %d out of range (0,%d)", p.OutputDuty, DutyScale)
	}
	return nil
}

// BuildUpdates expands one profile into its ordered RegisterUpdate
// sequence. Any invalid parameter is reported here, at initialization; no
// runtime recovery path exists or is expected.
func BuildUpdates(p ClockProfile) ([]RegisterUpdate, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clock profile: %w", err)
	}

	out, err := ComputeCounterFields(p.OutputDivide, p.OutputPhase, p.OutputDuty)
	if err != nil {
		return nil, fmt.Errorf("output counter: %w", err)
	}

	div, err := ComputeDividerFields(p.InputDivide, DutyScale/2)
	if err != nil {
		return nil, fmt.Errorf("input divider: %w", err)
	}

	fb, err := ComputeCounterFields(p.FeedbackMultiply, p.FeedbackPhase, DutyScale/2)
	if err != nil {
		return nil, fmt.Errorf("feedback counter: %w", err)
	}

	lock, err := LockLookup(p.FeedbackMultiply)
	if err != nil {
		return nil, err
	}

	filt, err := FilterLookup(p.FeedbackMultiply, p.Bandwidth)
	if err != nil {
		return nil, err
	}

	updates := []RegisterUpdate{
		{RegPower, maskPower, 0xFFFF},
		{RegClkOut0Reg1, maskClkOut0Reg1, out.Reg1Value()},
		{RegClkOut0Reg2, maskClkOut0Reg2, out.Reg2Value()},
		{RegDivClk, maskDivClk, div.DivRegValue()},
		{RegClkFBReg1, maskClkFBReg1, fb.Reg1Value()},
		{RegClkFBReg2, maskClkFBReg2, fb.Reg2Value()},
		{RegLock1, maskLock1, lock.Reg1Value()},
		{RegLock2, maskLock2, lock.Reg2Value()},
		{RegLock3, maskLock3, lock.Reg3Value()},
		{RegFilter1, maskFilter1, filt.Reg1Value()},
		{RegFilter2, maskFilter2, filt.Reg2Value()},
	}

	for i := range updates {
		if updates[i].Value&updates[i].Mask != 0 {
			return nil, fmt.Errorf("register 0x%02X: value 0x%04X overlaps preserve mask 0x%04X",
				updates[i].Addr, updates[i].Value, updates[i].Mask)
		}
	}

	return updates, nil
}

// ROM is the read-only table of RegisterUpdates for all profiles, indexed
// by profile selector and sequence position. Built once at initialization;
// the sequencer only ever reads it.
type ROM struct {
	updates     []RegisterUpdate
	numProfiles int
}

// BuildROM expands up to MaxProfiles profiles into a ROM. It refuses to
// produce a table containing any invalid profile.
func BuildROM(profiles []ClockProfile) (*ROM, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no clock profiles given")
	}
	if len(profiles) > MaxProfiles {
		return nil, fmt.Errorf("%d clock profiles given, selector addresses at most %d", len(profiles), MaxProfiles)
	}

	rom := &ROM{
		updates:     make([]RegisterUpdate, 0, len(profiles)*UpdatesPerProfile),
		numProfiles: len(profiles),
	}
	for i, p := range profiles {
		updates, err := BuildUpdates(p)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		rom.updates = append(rom.updates, updates...)
	}
	return rom, nil
}

// NumProfiles returns the number of profiles the ROM holds.
func (r *ROM) NumProfiles() int {
	return r.numProfiles
}

// ProfileLen returns the number of updates per profile.
func (r *ROM) ProfileLen() int {
	return UpdatesPerProfile
}

// At returns the update at a flat sequence index
// (selector * ProfileLen + position).
func (r *ROM) At(index int) RegisterUpdate {
	return r.updates[index]
}

// Profile returns a copy of one profile's update sequence.
func (r *ROM) Profile(sel int) []RegisterUpdate {
	base := sel * UpdatesPerProfile
	out := make([]RegisterUpdate, UpdatesPerProfile)
	copy(out, r.updates[base:base+UpdatesPerProfile])
	return out
}
