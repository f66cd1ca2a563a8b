package mmcm

import "fmt"

// Bandwidth selects the loop-filter bandwidth class of a profile.
type Bandwidth int

const (
	// BandwidthLow is the low-bandwidth loop filter.
	BandwidthLow Bandwidth = iota

	// BandwidthHigh is the high-bandwidth (optimized) loop filter.
	BandwidthHigh
)

func (b Bandwidth) String() string {
	switch b {
	case BandwidthLow:
		return "LOW"
	case BandwidthHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Bandwidth(%d)", int(b))
	}
}

// ParseBandwidth converts a configuration string into a Bandwidth.
// "OPTIMIZED" is accepted as an alias for "HIGH".
func ParseBandwidth(s string) (Bandwidth, error) {
	switch s {
	case "LOW":
		return BandwidthLow, nil
	case "HIGH", "OPTIMIZED":
		return BandwidthHigh, nil
	default:
		return 0, fmt.Errorf("unknown bandwidth class %q", s)
	}
}

// FilterSettings is the 10-bit loop-filter tuple for one feedback multiply
// value and bandwidth class. Constant hardware data.
type FilterSettings struct {
	// CP is the charge-pump current code (4 bits).
	CP uint16

	// RES is the filter resistor code (4 bits).
	RES uint16

	// LFHF is the low/high-frequency compensation code (2 bits).
	LFHF uint16
}

// Reg1Value packs filter register 1. The charge-pump bits are scattered
// across the word: {cp[3] @15, cp[2:1] @12:11, cp[0] @8}; all other bits
// belong to the hardware and stay zero here.
func (f FilterSettings) Reg1Value() uint16 {
	return (f.CP>>3&1)<<15 | (f.CP>>1&3)<<11 | (f.CP&1)<<8
}

// Reg2Value packs filter register 2:
// {res[3] @15, res[2:1] @12:11, res[0] @8, lfhf[1] @7, lfhf[0] @4}.
func (f FilterSettings) Reg2Value() uint16 {
	return (f.RES>>3&1)<<15 | (f.RES>>1&3)<<11 | (f.RES&1)<<8 |
		(f.LFHF>>1&1)<<7 | (f.LFHF&1)<<4
}

// filterTableLow is indexed by feedback multiply minus one.
var filterTableLow = [64]FilterSettings{
	// 1-10
	{2, 15, 3},
	{2, 15, 3},
	{2, 13, 3},
	{2, 13, 3},
	{2, 11, 3},
	{2, 11, 3},
	{2, 9, 3},
	{2, 9, 3},
	{2, 9, 3},
	{2, 7, 3},
	// 11-20
	{2, 7, 3},
	{2, 7, 3},
	{2, 7, 3},
	{2, 5, 3},
	{3, 5, 3},
	{3, 5, 3},
	{3, 5, 3},
	{3, 5, 3},
	{3, 5, 3},
	{3, 3, 3},
	// 21-30
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	{3, 3, 3},
	// 31-40
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{3, 1, 3},
	{4, 1, 3},
	// 41-50
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	// 51-60
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	// 61-64
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
	{4, 1, 3},
}

// filterTableHigh is indexed by feedback multiply minus one.
var filterTableHigh = [64]FilterSettings{
	// 1-10
	{3, 15, 0},
	{4, 15, 0},
	{5, 13, 0},
	{6, 13, 0},
	{7, 11, 0},
	{8, 11, 0},
	{9, 9, 0},
	{10, 9, 0},
	{11, 7, 0},
	{12, 7, 0},
	// 11-20
	{13, 5, 0},
	{13, 5, 0},
	{13, 5, 0},
	{13, 5, 0},
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	// 21-30
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	{14, 3, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	// 31-40
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	// 41-50
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	// 51-60
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	// 61-64
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
	{15, 1, 0},
}

// FilterLookup returns the loop-filter settings for a feedback multiply
// value and bandwidth class. The domain is [1,64] x {LOW,HIGH}.
func FilterLookup(feedbackMultiply int, bw Bandwidth) (FilterSettings, error) {
	if feedbackMultiply < 1 || feedbackMultiply > 64 {
		return FilterSettings{}, fmt.Errorf("feedback multiply %d out of range [1,64]", feedbackMultiply)
	}
	switch bw {
	case BandwidthLow:
		return filterTableLow[feedbackMultiply-1], nil
	case BandwidthHigh:
		return filterTableHigh[feedbackMultiply-1], nil
	default:
		return FilterSettings{}, fmt.Errorf("unknown bandwidth class %d", int(bw))
	}
}
