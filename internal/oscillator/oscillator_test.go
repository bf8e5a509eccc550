package oscillator

import "testing"

type recordingSink struct {
	amp  float64
	freq float64
}

func (r *recordingSink) Start()                                      {}
func (r *recordingSink) Stop()                                       {}
func (r *recordingSink) SetFrequency(hz float64)                     { r.freq = hz }
func (r *recordingSink) RampFrequency(targetHz float64, over float64) { r.freq = targetHz }
func (r *recordingSink) SetAmplitude(amp float64)                    { r.amp = amp }
func (r *recordingSink) RampAmplitude(target float64, over float64) { r.amp = target }
func (r *recordingSink) SetPulseWidth(duty float64)                  {}
func (r *recordingSink) SetWavetable(samples [32]int8)               {}

func TestPannerRoutesOnlyEnabledChannels(t *testing.T) {
	left, right := &recordingSink{}, &recordingSink{}
	p := NewPanner(left, right)

	p.RampPan(1.0, true, false, 0.5, 0.5, 0)
	if left.amp != 0.5 {
		t.Errorf("left amp = %v, want 0.5", left.amp)
	}
	if right.amp != 0 {
		t.Errorf("right amp = %v, want 0 (NR51 routes this voice to left only)", right.amp)
	}
}

func TestPannerBothChannelsScaledByMasterVolume(t *testing.T) {
	left, right := &recordingSink{}, &recordingSink{}
	p := NewPanner(left, right)

	p.RampPan(0.8, true, true, 1.0, 0.25, 0)
	if left.amp != 0.8 {
		t.Errorf("left amp = %v, want 0.8", left.amp)
	}
	if right.amp != 0.2 {
		t.Errorf("right amp = %v, want 0.2", right.amp)
	}
}

func TestNullSinkIsSafeToCall(t *testing.T) {
	var n Null
	n.Start()
	n.SetFrequency(440)
	n.SetAmplitude(1)
	n.Stop()
}
