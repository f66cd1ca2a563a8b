package mmcm

import "fmt"

// LockSettings is the 40-bit lock-detection tuple for one feedback
// multiply value. The values are empirical hardware constants: the first
// ten entries ramp as the feedback divider grows, everything above
// saturates at the table's final values.
type LockSettings struct {
	// RefDly is the reference-path lock delay (5 bits).
	RefDly uint16

	// FBDly is the feedback-path lock delay (5 bits).
	FBDly uint16

	// Cnt is the lock counter threshold (10 bits).
	Cnt uint16

	// SatHigh is the lock counter saturation level (10 bits).
	SatHigh uint16

	// UnlockCnt is the unlock counter threshold (10 bits).
	UnlockCnt uint16
}

// Reg1Value packs lock register 1: {reserved @15:10, lock_cnt[9:0] @9:0}.
func (l LockSettings) Reg1Value() uint16 {
	return l.Cnt & 0x3FF
}

// Reg2Value packs lock register 2:
// {reserved @15, lock_fb_dly[4:0] @14:10, unlock_cnt[9:0] @9:0}.
func (l LockSettings) Reg2Value() uint16 {
	return (l.FBDly&0x1F)<<10 | l.UnlockCnt&0x3FF
}

// Reg3Value packs lock register 3:
// {reserved @15, lock_ref_dly[4:0] @14:10, lock_sat_high[9:0] @9:0}.
func (l LockSettings) Reg3Value() uint16 {
	return (l.RefDly&0x1F)<<10 | l.SatHigh&0x3FF
}

// lockTable is indexed by feedback multiply minus one. Constant data,
// never recomputed.
var lockTable = [64]LockSettings{
	// 1-10
	{6, 6, 1000, 1001, 1},
	{6, 6, 1000, 1001, 1},
	{8, 8, 1000, 1001, 1},
	{11, 11, 1000, 1001, 1},
	{14, 14, 1000, 1001, 1},
	{17, 17, 1000, 1001, 1},
	{19, 19, 1000, 1001, 1},
	{22, 22, 1000, 1001, 1},
	{25, 25, 1000, 1001, 1},
	{28, 28, 1000, 1001, 1},
	// 11-20
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	// 21-30
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	// 31-40
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	// 41-50
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	// 51-60
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	// 61-64
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
	{31, 31, 1000, 1001, 1},
}

// LockLookup returns the lock-detection settings for a feedback multiply
// value. The domain is [1,64]; it is an exact-match table lookup, not a
// computation.
func LockLookup(feedbackMultiply int) (LockSettings, error) {
	if feedbackMultiply < 1 || feedbackMultiply > 64 {
		return LockSettings{}, fmt.Errorf("feedback multiply %d out of range [1,64]", feedbackMultiply)
	}
	return lockTable[feedbackMultiply-1], nil
}
