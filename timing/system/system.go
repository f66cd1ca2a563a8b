// Package system wires the reconfiguration sequencer to a simulated clock
// generator and advances both in lockstep, one cycle per Tick. It provides
// the high-level interface the CLI and the end-to-end tests use.
package system

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/clklab/drpsim/mmcm"
	"github.com/clklab/drpsim/timing/device"
	"github.com/clklab/drpsim/timing/sequencer"
)

// Spec holds the immutable configuration of a simulated system.
type Spec struct {
	// Freq is the DRP clock frequency; it converts cycle counts into
	// simulated time.
	Freq sim.Freq

	// Device holds the clock generator timing parameters.
	Device device.Config

	// MaxWaitCycles bounds the blocking helpers (WaitReady, ApplyProfile)
	// so a misconfigured simulation cannot hang. The sequencer itself
	// never times out; this cap exists only in the harness.
	MaxWaitCycles uint64
}

// DefaultSpec returns a 100 MHz system with default device timing.
func DefaultSpec() Spec {
	return Spec{
		Freq:          0.1 * sim.GHz,
		Device:        device.DefaultConfig(),
		MaxWaitCycles: 100000,
	}
}

func (s Spec) validate() error {
	if s.Freq <= 0 {
		return fmt.Errorf("freq must be > 0")
	}
	if s.MaxWaitCycles == 0 {
		return fmt.Errorf("max wait cycles must be > 0")
	}
	return s.Device.Validate()
}

// Stats holds aggregated counters for one system run.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Reconfigurations is the number of completed profile applications.
	Reconfigurations uint64
	// RegisterReads is the number of DRP reads issued.
	RegisterReads uint64
	// RegisterWrites is the number of DRP writes issued.
	RegisterWrites uint64
}

// System is one sequencer wired to one device model. Device outputs are
// registered: what the device drove on cycle N is what the sequencer
// samples on cycle N+1.
type System struct {
	spec Spec

	seq *sequencer.Sequencer
	dev *device.MMCM

	devOut device.Outputs
	cycles uint64
}

// New creates a system over a prebuilt update ROM.
func New(spec Spec, rom *mmcm.ROM) (*System, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("invalid system spec: %w", err)
	}
	dev, err := device.New(spec.Device)
	if err != nil {
		return nil, err
	}
	return &System{
		spec: spec,
		seq:  sequencer.New(rom),
		dev:  dev,
	}, nil
}

// Sequencer returns the underlying sequencer.
func (s *System) Sequencer() *sequencer.Sequencer {
	return s.seq
}

// Device returns the underlying device model.
func (s *System) Device() *device.MMCM {
	return s.dev
}

// Cycles returns the number of cycles simulated so far.
func (s *System) Cycles() uint64 {
	return s.cycles
}

// ElapsedTime returns the simulated wall-clock time.
func (s *System) ElapsedTime() sim.VTimeInSec {
	return s.spec.Freq.Period() * sim.VTimeInSec(float64(s.cycles))
}

// Stats returns aggregated counters.
func (s *System) Stats() Stats {
	seqStats := s.seq.Stats()
	return Stats{
		Cycles:           s.cycles,
		Reconfigurations: seqStats.Reconfigurations,
		RegisterReads:    seqStats.RegisterReads,
		RegisterWrites:   seqStats.RegisterWrites,
	}
}

// Tick advances the whole system by one clock cycle and returns the
// sequencer outputs for that cycle.
func (s *System) Tick(reset bool, sel uint8, enable bool) sequencer.Outputs {
	seqOut := s.seq.Tick(sequencer.Inputs{
		Reset:  reset,
		Sel:    sel,
		Enable: enable,
		DRDY:   s.devOut.DRDY,
		DO:     s.devOut.DO,
		Locked: s.devOut.Locked,
	})
	s.devOut = s.dev.Tick(device.Inputs{
		DADDR: seqOut.DADDR,
		DI:    seqOut.DI,
		DEN:   seqOut.DEN,
		DWE:   seqOut.DWE,
		Reset: seqOut.DeviceReset,
	})
	s.cycles++
	return seqOut
}

// RunCycles advances the system by the given number of cycles with all
// control inputs idle.
func (s *System) RunCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		s.Tick(false, 0, false)
	}
}

// WaitReady ticks until the sequencer is idle and locked. Returns the
// number of cycles consumed.
func (s *System) WaitReady() (uint64, error) {
	start := s.cycles
	for !s.seq.ReadyForRequest() {
		if s.cycles-start > s.spec.MaxWaitCycles {
			return s.cycles - start, fmt.Errorf("sequencer not ready after %d cycles", s.spec.MaxWaitCycles)
		}
		s.Tick(false, 0, false)
	}
	return s.cycles - start, nil
}

// ApplyProfile performs one full profile application: waits for
// readiness, strobes the request with the given selector, runs until the
// reconfiguration completes and the device has relocked. Returns the
// number of cycles the whole operation took.
func (s *System) ApplyProfile(sel uint8) (uint64, error) {
	start := s.cycles

	if _, err := s.WaitReady(); err != nil {
		return s.cycles - start, err
	}

	before := s.seq.Stats().Reconfigurations
	s.Tick(false, sel, true)
	for s.seq.Stats().Reconfigurations == before {
		if s.cycles-start > s.spec.MaxWaitCycles {
			return s.cycles - start, fmt.Errorf("profile %d not applied after %d cycles", sel, s.spec.MaxWaitCycles)
		}
		s.Tick(false, sel, false)
	}

	if _, err := s.WaitReady(); err != nil {
		return s.cycles - start, err
	}
	return s.cycles - start, nil
}
