// Package sequencer provides the cycle-accurate DRP reconfiguration state
// machine. The sequencer walks a precomputed table of register updates,
// performing one read-modify-write per register, and advances exactly one
// control state per Tick.
package sequencer

// State is the sequencer control state.
type State uint8

const (
	// StateRestart holds the device in reset and rewinds the sequence
	// pointer. Also the landing state for any out-of-range state value.
	StateRestart State = iota

	// StateWaitLock waits for the synchronized device lock indicator.
	StateWaitLock

	// StateWaitSen waits for a reconfiguration request strobe.
	StateWaitSen

	// StateAddress issues the read of the current register.
	StateAddress

	// StateWaitADrdy waits for the read to complete.
	StateWaitADrdy

	// StateBitmask masks the bits to be preserved out of the read value.
	StateBitmask

	// StateBitset ORs in the new bits and advances the sequence pointer.
	StateBitset

	// StateWrite issues the write-back of the merged value.
	StateWrite

	// StateWaitDrdy waits for the write to complete.
	StateWaitDrdy
)

func (s State) String() string {
	switch s {
	case StateRestart:
		return "RESTART"
	case StateWaitLock:
		return "WAIT_LOCK"
	case StateWaitSen:
		return "WAIT_SEN"
	case StateAddress:
		return "ADDRESS"
	case StateWaitADrdy:
		return "WAIT_A_DRDY"
	case StateBitmask:
		return "BITMASK"
	case StateBitset:
		return "BITSET"
	case StateWrite:
		return "WRITE"
	case StateWaitDrdy:
		return "WAIT_DRDY"
	default:
		return "UNKNOWN"
	}
}
