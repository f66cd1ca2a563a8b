package sequencer

// Synchronizer is a 2-stage flip-flop chain for bringing an asynchronous
// level signal into the sequencer's clock domain. The input sampled at
// tick N becomes visible on the output at tick N+1; combined with the
// state register that tests it, the signal crosses two flops before it is
// acted on, tolerating arbitrary assertion skew.
type Synchronizer struct {
	stage1 bool
	stage2 bool
}

// Tick advances the chain by one clock edge and returns the new output.
func (s *Synchronizer) Tick(in bool) bool {
	s.stage2, s.stage1 = s.stage1, in
	return s.stage2
}

// Out returns the current output without advancing the chain.
func (s *Synchronizer) Out() bool {
	return s.stage2
}

// Clear resets both stages.
func (s *Synchronizer) Clear() {
	s.stage1 = false
	s.stage2 = false
}
