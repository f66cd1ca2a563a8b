// Package device provides a cycle-accurate model of the reconfigurable
// clock generator on the far side of the DRP pins. It exists so the
// sequencer can be exercised end to end without hardware: a 128-register
// file behind the read/write protocol, plus lock behavior that reacts to
// the reset pin.
package device

import "fmt"

// Inputs are the DRP pins driven by the controller.
type Inputs struct {
	// DADDR is the 7-bit register address.
	DADDR uint8

	// DI is the write data.
	DI uint16

	// DEN requests an access for one cycle.
	DEN bool

	// DWE marks the access as a write.
	DWE bool

	// Reset holds the clock generator in reset and drops lock.
	Reset bool
}

// Outputs are the DRP pins driven by the device.
type Outputs struct {
	// DO is the read data, valid with DRDY after a read.
	DO uint16

	// DRDY acknowledges a completed access.
	DRDY bool

	// Locked reports that the clock network has achieved lock.
	Locked bool
}

// Config holds the device timing parameters.
type Config struct {
	// DrdyLatency is the number of cycles from an access request to DRDY.
	// Minimum 1: DRDY is asserted one cycle after a request at the fastest.
	DrdyLatency int

	// LockLatency is the number of cycles from reset release to lock.
	LockLatency int
}

// DefaultConfig returns the device timing used by the simulations:
// single-cycle register access, 16-cycle lock acquisition.
func DefaultConfig() Config {
	return Config{
		DrdyLatency: 1,
		LockLatency: 16,
	}
}

// Validate checks the timing parameters.
func (c Config) Validate() error {
	if c.DrdyLatency < 1 {
		return fmt.Errorf("drdy latency must be >= 1, got %d", c.DrdyLatency)
	}
	if c.LockLatency < 0 {
		return fmt.Errorf("lock latency must be >= 0, got %d", c.LockLatency)
	}
	return nil
}

// numRegs is the size of the DRP register file (7-bit address space).
const numRegs = 128

// MMCM is the simulated clock generator. One state change per Tick;
// single owner of all of its mutable state.
type MMCM struct {
	cfg  Config
	regs [numRegs]uint16

	pending      int
	pendingWrite bool
	pendingAddr  uint8
	pendingData  uint16
	readData     uint16

	locked        bool
	lockCountdown int
}

// New creates a device model. The device starts unlocked, as out of
// reset, and acquires lock after LockLatency cycles.
func New(cfg Config) (*MMCM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MMCM{cfg: cfg, lockCountdown: cfg.LockLatency}, nil
}

// Reg returns the current content of one register.
func (m *MMCM) Reg(addr uint8) uint16 {
	return m.regs[addr&(numRegs-1)]
}

// SetReg sets the content of one register, bypassing the port. Intended
// for preloading power-on register contents.
func (m *MMCM) SetReg(addr uint8, value uint16) {
	m.regs[addr&(numRegs-1)] = value
}

// Locked reports the current lock indicator.
func (m *MMCM) Locked() bool {
	return m.locked
}

// Tick advances the device by one clock cycle.
func (m *MMCM) Tick(in Inputs) Outputs {
	var out Outputs

	if in.Reset {
		m.locked = false
		m.lockCountdown = m.cfg.LockLatency
	} else if !m.locked {
		if m.lockCountdown > 0 {
			m.lockCountdown--
		}
		if m.lockCountdown == 0 {
			m.locked = true
		}
	}

	if m.pending > 0 {
		m.pending--
		if m.pending == 0 {
			if m.pendingWrite {
				m.regs[m.pendingAddr] = m.pendingData
			} else {
				m.readData = m.regs[m.pendingAddr]
			}
			out.DO = m.readData
			out.DRDY = true
		}
	} else if in.DEN {
		m.pendingAddr = in.DADDR & (numRegs - 1)
		m.pendingWrite = in.DWE
		m.pendingData = in.DI
		m.pending = m.cfg.DrdyLatency
	}

	out.Locked = m.locked
	return out
}
