package sequencer

import (
	"github.com/clklab/drpsim/mmcm"
)

// Inputs are the signals sampled by the sequencer each cycle.
type Inputs struct {
	// Reset unconditionally forces RESTART and suppresses all register
	// activity. Sampled synchronously.
	Reset bool

	// Sel is the 2-bit profile selector.
	Sel uint8

	// Enable is the request strobe. Sampled only while the sequencer is
	// idle and locked.
	Enable bool

	// DRDY is the device ready acknowledgment, one cycle after a request.
	DRDY bool

	// DO is the device read data, valid with DRDY after a read.
	DO uint16

	// Locked is the device lock indicator. Asynchronous; it crosses the
	// internal 2-stage synchronizer before the state machine tests it.
	Locked bool
}

// Outputs are the signals driven by the sequencer each cycle.
type Outputs struct {
	// DADDR is the 7-bit DRP register address.
	DADDR uint8

	// DI is the write data.
	DI uint16

	// DEN requests a register access for one cycle.
	DEN bool

	// DWE marks the access as a write.
	DWE bool

	// DeviceReset holds the clock generator in reset. Asserted in RESTART
	// and throughout the register write burst, so the clock output never
	// glitches through intermediate register states.
	DeviceReset bool

	// Ready pulses for one cycle when the sequencer becomes idle and
	// locked, signalling that a new request may be accepted.
	Ready bool
}

// Statistics holds sequencer activity counters.
type Statistics struct {
	// Cycles is the total number of cycles ticked.
	Cycles uint64
	// ReadyPulses is the number of ready pulses emitted.
	ReadyPulses uint64
	// Reconfigurations is the number of completed profile applications.
	Reconfigurations uint64
	// RegisterReads is the number of register read requests issued.
	RegisterReads uint64
	// RegisterWrites is the number of register write requests issued.
	RegisterWrites uint64
	// LockWaitCycles is the number of cycles spent waiting for lock.
	LockWaitCycles uint64
	// DrdyWaitCycles is the number of cycles spent waiting for DRDY.
	DrdyWaitCycles uint64
}

// Sequencer is the DRP reconfiguration state machine. It owns all of its
// mutable state; one logical process advances exactly one state transition
// per Tick. There are no timeouts: a device that never answers stalls the
// sequencer in the corresponding wait state, which is the modeled hardware
// contract.
type Sequencer struct {
	rom *mmcm.ROM

	state     State
	seqPtr    int
	remaining int
	entry     mmcm.RegisterUpdate
	daddr     uint8
	working   uint16
	readValue uint16

	lockSync Synchronizer

	stats Statistics
}

// New creates a sequencer over a precomputed update ROM. The sequencer
// starts in RESTART, as after a reset.
func New(rom *mmcm.ROM) *Sequencer {
	return &Sequencer{rom: rom, state: StateRestart}
}

// State returns the current control state.
func (s *Sequencer) State() State {
	return s.state
}

// Remaining returns the number of updates left in the active burst.
func (s *Sequencer) Remaining() int {
	return s.remaining
}

// Stats returns the activity counters.
func (s *Sequencer) Stats() Statistics {
	return s.stats
}

// ReadyForRequest reports the level view of readiness: idle and locked.
func (s *Sequencer) ReadyForRequest() bool {
	return s.state == StateWaitSen && s.lockSync.Out()
}

// Reset rewinds the sequencer to its power-on state, including the lock
// synchronizer. Equivalent to holding the reset input and clearing all
// history; statistics are kept.
func (s *Sequencer) Reset() {
	s.state = StateRestart
	s.seqPtr = 0
	s.remaining = 0
	s.working = 0
	s.readValue = 0
	s.lockSync.Clear()
}

// Tick advances the sequencer by one clock cycle.
func (s *Sequencer) Tick(in Inputs) Outputs {
	s.stats.Cycles++

	locked := s.lockSync.Tick(in.Locked)

	var out Outputs

	if in.Reset {
		s.state = StateRestart
		out.DeviceReset = true
		return out
	}

	switch s.state {
	case StateRestart:
		out.DeviceReset = true
		s.seqPtr = 0
		s.state = StateWaitLock

	case StateWaitLock:
		s.remaining = s.rom.ProfileLen()
		if locked {
			out.Ready = true
			s.stats.ReadyPulses++
			s.state = StateWaitSen
		} else {
			s.stats.LockWaitCycles++
		}

	case StateWaitSen:
		sel := int(in.Sel) & (mmcm.MaxProfiles - 1)
		if sel >= s.rom.NumProfiles() {
			// Fewer than four profiles loaded; the selector wraps.
			sel %= s.rom.NumProfiles()
		}
		s.seqPtr = sel * s.rom.ProfileLen()
		if in.Enable {
			s.state = StateAddress
		}

	case StateAddress:
		out.DeviceReset = true
		s.entry = s.rom.At(s.seqPtr)
		s.daddr = s.entry.Addr
		out.DADDR = s.daddr
		out.DEN = true
		s.stats.RegisterReads++
		s.state = StateWaitADrdy

	case StateWaitADrdy:
		out.DeviceReset = true
		out.DADDR = s.daddr
		if in.DRDY {
			s.readValue = in.DO
			s.state = StateBitmask
		} else {
			s.stats.DrdyWaitCycles++
		}

	case StateBitmask:
		out.DeviceReset = true
		out.DADDR = s.daddr
		s.working = s.entry.Mask & s.readValue
		s.state = StateBitset

	case StateBitset:
		out.DeviceReset = true
		out.DADDR = s.daddr
		s.working |= s.entry.Value
		s.seqPtr++
		s.state = StateWrite

	case StateWrite:
		out.DeviceReset = true
		out.DADDR = s.daddr
		out.DI = s.working
		out.DEN = true
		out.DWE = true
		s.remaining--
		s.stats.RegisterWrites++
		s.state = StateWaitDrdy

	case StateWaitDrdy:
		out.DeviceReset = true
		out.DADDR = s.daddr
		if in.DRDY {
			if s.remaining > 0 {
				s.state = StateAddress
			} else {
				s.stats.Reconfigurations++
				s.state = StateWaitLock
			}
		} else {
			s.stats.DrdyWaitCycles++
		}

	default:
		// Self-heal: an out-of-range state value lands in RESTART.
		out.DeviceReset = true
		s.state = StateRestart
	}

	return out
}
