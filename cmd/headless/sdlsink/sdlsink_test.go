package sdlsink

import "testing"

func TestVoiceOscSilentUntilStarted(t *testing.T) {
	v := &voiceOsc{}
	v.SetFrequency(440)
	v.SetAmplitude(1)
	if got := v.sample(1.0 / 44100); got != 0 {
		t.Errorf("sample before Start() = %v, want 0", got)
	}
}

func TestVoiceOscPulseRespectsDutyCycle(t *testing.T) {
	v := &voiceOsc{}
	v.Start()
	v.SetFrequency(100)
	v.SetAmplitude(1)
	v.SetPulseWidth(0.25)

	v.phase = 0.1 // within the 25% duty window
	if got := v.sample(0); got != 1 {
		t.Errorf("sample at phase 0.1 with duty 0.25 = %v, want 1 (high)", got)
	}

	v.phase = 0.5 // outside the duty window
	if got := v.sample(0); got != -1 {
		t.Errorf("sample at phase 0.5 with duty 0.25 = %v, want -1 (low)", got)
	}
}

func TestVoiceOscWavetableIndexesTable(t *testing.T) {
	v := &voiceOsc{}
	v.Start()
	v.SetFrequency(100)
	v.SetAmplitude(1)
	var table [32]int8
	table[0] = 8 // max positive sample
	v.SetWavetable(table)

	v.phase = 0
	if got := v.sample(0); got != 1 {
		t.Errorf("sample at phase 0 with table[0]=8 = %v, want 1.0", got)
	}
}

func TestVoiceOscStopSilences(t *testing.T) {
	v := &voiceOsc{}
	v.Start()
	v.SetFrequency(440)
	v.SetAmplitude(1)
	v.Stop()
	if got := v.sample(1.0 / 44100); got != 0 {
		t.Errorf("sample after Stop() = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, want float64 }{
		{-2, -1},
		{2, 1},
		{0.5, 0.5},
	}
	for _, c := range cases {
		if got := clamp(c.v, -1, 1); got != c.want {
			t.Errorf("clamp(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}
