// Package oscillator defines the narrow control-rate interface the APU
// drives: a Sink receives frequency/amplitude/waveform parameter changes as
// the register file is decoded, and is free to synthesize audio however the
// concrete backend (SDL2 callback, a null sink for headless runs, a test
// recorder) sees fit. The APU never touches a sample buffer directly.
package oscillator

// Sink is one audio voice's control surface. Calls are control-rate (driven
// off the APU's frame sequencer and per-sample register polling), not
// audio-rate — a concrete Sink is responsible for turning a sequence of
// these calls into actual PCM.
type Sink interface {
	Start()
	Stop()
	SetFrequency(hz float64)
	RampFrequency(targetHz float64, over float64)
	SetAmplitude(amp float64)
	RampAmplitude(target float64, over float64)
	SetPulseWidth(duty float64)
	SetWavetable(samples [32]int8)
}

// Null is a no-op Sink, used where a voice has no backend attached (e.g. a
// disabled channel, or running APU logic under test without audio output).
type Null struct{}

func (Null) Start()                                  {}
func (Null) Stop()                                   {}
func (Null) SetFrequency(hz float64)                  {}
func (Null) RampFrequency(targetHz float64, over float64) {}
func (Null) SetAmplitude(amp float64)                 {}
func (Null) RampAmplitude(target float64, over float64)  {}
func (Null) SetPulseWidth(duty float64)               {}
func (Null) SetWavetable(samples [32]int8)            {}

// Panner wraps a stereo pair of Sinks (or two references to the same Sink,
// for a mono backend) and translates a single amplitude + pan value into
// independent left/right amplitudes — the shape NR50 (master volume) and
// NR51 (per-voice stereo routing) need downstream of a single voice.
type Panner struct {
	Left, Right Sink
}

// NewPanner builds a Panner over a stereo sink pair.
func NewPanner(left, right Sink) *Panner {
	return &Panner{Left: left, Right: right}
}

func (p *Panner) Start() {
	p.Left.Start()
	p.Right.Start()
}

func (p *Panner) Stop() {
	p.Left.Stop()
	p.Right.Stop()
}

func (p *Panner) SetFrequency(hz float64) {
	p.Left.SetFrequency(hz)
	p.Right.SetFrequency(hz)
}

func (p *Panner) RampFrequency(targetHz, over float64) {
	p.Left.RampFrequency(targetHz, over)
	p.Right.RampFrequency(targetHz, over)
}

func (p *Panner) SetPulseWidth(duty float64) {
	p.Left.SetPulseWidth(duty)
	p.Right.SetPulseWidth(duty)
}

func (p *Panner) SetWavetable(samples [32]int8) {
	p.Left.SetWavetable(samples)
	p.Right.SetWavetable(samples)
}

// RampPan sets independent left/right amplitude targets derived from a
// shared base amplitude and a routing pair (leftOn/rightOn from NR51) plus
// the NR50 master left/right volumes (0-7 each, pre-scaled to 0..1 by the
// caller). over is the ramp duration in seconds (0 = set immediately).
func (p *Panner) RampPan(amp float64, leftOn, rightOn bool, masterLeft, masterRight float64, over float64) {
	left, right := 0.0, 0.0
	if leftOn {
		left = amp * masterLeft
	}
	if rightOn {
		right = amp * masterRight
	}
	if over <= 0 {
		p.Left.SetAmplitude(left)
		p.Right.SetAmplitude(right)
		return
	}
	p.Left.RampAmplitude(left, over)
	p.Right.RampAmplitude(right, over)
}
