// Package apu implements the DMG's four-voice sound generator: register
// decode, the 512Hz frame sequencer driving length/envelope/sweep, and
// control-rate parameter updates pushed to an oscillator.Sink per voice.
// Actual sample synthesis lives downstream of Sink, not here.
package apu

import (
	"math"

	"nitro-gb-core/internal/debug"
	"nitro-gb-core/internal/memory"
	"nitro-gb-core/internal/oscillator"
)

// VoiceKind identifies which of the four DMG voices a voiceState drives.
type VoiceKind int

const (
	VoicePulse1 VoiceKind = iota
	VoicePulse2
	VoiceWave
	VoiceNoise
)

// dmgClockHz is the master clock rate; the frame sequencer ticks at 512Hz,
// i.e. once every dmgClockHz/512 = 8192 T-states.
const dmgClockHz = 4_194_304
const frameSequencerPeriod = dmgClockHz / 512

var noiseDivisors = [8]uint16{8, 16, 32, 48, 64, 80, 96, 112}

// voiceState is one channel's decoded register state plus its envelopes.
type voiceState struct {
	kind   VoiceKind
	panner *oscillator.Panner

	amp    AmplitudeEnvelope
	length LengthEnvelope
	sweep  FrequencySweepEnvelope

	dacOn   bool
	enabled bool // gated by DAC, length, and (for pulse1) sweep overflow

	lastNRx4Version uint64
}

// APU drives all four voices off the shared bus and the clock's cycle feed.
type APU struct {
	bus    *memory.Bus
	voices [4]*voiceState

	frameSeqCounter int
	frameSeqStep    int

	prevMasterEnable bool
	waveform         WaveformMemo

	logger *debug.Logger
}

// NewAPU wires one Panner per voice (pulse1, pulse2, wave, noise, in that
// order) onto the bus's sound registers. The master enable starts out as
// on (the DMG's post-boot NR52 state), so a master-off seen by the first Run
// is handled as a falling edge.
func NewAPU(bus *memory.Bus, panners [4]*oscillator.Panner) *APU {
	a := &APU{bus: bus, prevMasterEnable: true}
	lengthMax := [4]uint16{64, 64, 256, 64}
	for i := range a.voices {
		a.voices[i] = &voiceState{
			kind:   VoiceKind(i),
			panner: panners[i],
			length: LengthEnvelope{Max: lengthMax[i]},
		}
	}
	return a
}

// SetLogger attaches a logger for register-decode tracing.
func (a *APU) SetLogger(logger *debug.Logger) {
	a.logger = logger
}

// Run advances the APU by the T-states the CPU just executed. This is what
// clock.MasterClock.APUStep wraps.
func (a *APU) Run(cycles uint64) error {
	masterReg := a.bus.Register(memory.RegNR52)
	masterOn := masterReg.Bit(7)

	if !masterOn {
		if a.prevMasterEnable {
			a.powerOff()
		}
		a.prevMasterEnable = false
		return nil
	}
	a.prevMasterEnable = true

	a.decodePulse(a.voices[0], memory.RegNR10, memory.RegNR11, memory.RegNR12, memory.RegNR13, memory.RegNR14, true)
	a.decodePulse(a.voices[1], -1, memory.RegNR21, memory.RegNR22, memory.RegNR23, memory.RegNR24, false)
	a.decodeWave(a.voices[2])
	a.decodeNoise(a.voices[3])

	a.frameSeqCounter += int(cycles)
	for a.frameSeqCounter >= frameSequencerPeriod {
		a.frameSeqCounter -= frameSequencerPeriod
		a.stepFrameSequencer()
	}

	a.mix()
	a.updateStatusBits(masterReg)
	return nil
}

// powerOff implements the NR52 falling-edge invariant: every sound register
// NR10..wave RAM is zeroed exactly once, and every voice stops.
func (a *APU) powerOff() {
	a.bus.ZeroSoundRegisters()
	for _, v := range a.voices {
		v.enabled = false
		v.dacOn = false
		v.panner.Stop()
	}
	if a.logger != nil {
		a.logger.LogAPU(debug.LogLevelInfo, "NR52 master disable: all sound registers cleared", nil)
	}
}

// stepFrameSequencer clocks length at every even step (256Hz), sweep at
// steps 2 and 6 (128Hz), and the volume envelope at step 7 (64Hz).
func (a *APU) stepFrameSequencer() {
	step := a.frameSeqStep
	a.frameSeqStep = (a.frameSeqStep + 1) % 8

	if step%2 == 0 {
		for _, v := range a.voices {
			v.length.Tick(func() { v.enabled = false })
		}
	}
	if step == 2 || step == 6 {
		pulse1 := a.voices[0]
		if pulse1.dacOn {
			freq, disable := pulse1.sweep.Tick()
			if disable {
				pulse1.enabled = false
			} else {
				a.bus.Register(memory.RegNR13).Write(uint8(freq))
				nr14 := a.bus.Register(memory.RegNR14)
				nr14.Write(nr14.Read()&0xF8 | uint8(freq>>8))
				// The sweep's own write-back is not a program trigger.
				pulse1.lastNRx4Version = nr14.Version()
			}
		}
	}
	if step == 7 {
		for _, v := range a.voices {
			if v.kind != VoiceWave {
				v.amp.Tick()
			}
		}
	}
}

func readFrequency(bus *memory.Bus, loReg, hiReg int) uint16 {
	lo := bus.Register(loReg).Read()
	hi := bus.Register(hiReg).Read() & 0x07
	return uint16(hi)<<8 | uint16(lo)
}

// bitsToFrequency converts an 11-bit DMG period register to a waveform
// frequency in Hz.
func bitsToFrequency(bits uint16) float64 {
	if bits >= 2048 {
		return 0
	}
	return 131072.0 / float64(2048-bits)
}

// frequencyToBits is bitsToFrequency's inverse, going from an Hz value back
// to the 11-bit period register representation. Round-trips exactly for
// every bits in [0,2047]:
// frequencyToBits(bitsToFrequency(bits)) == bits.
func frequencyToBits(hz float64) uint16 {
	if hz <= 0 {
		return 2048
	}
	bits := 2048.0 - 131072.0/hz
	switch {
	case bits < 0:
		bits = 0
	case bits > 2047:
		bits = 2047
	}
	return uint16(math.Round(bits))
}

// voiceRampSeconds is the ramp duration applied to every oscillator
// frequency/amplitude update, matching the 10ms ramp the voice update path
// uses for both parameters.
const voiceRampSeconds = 0.010

func (a *APU) decodePulse(v *voiceState, sweepReg, lenReg, envReg, freqLoReg, freqHiReg int, hasSweep bool) {
	nr14 := a.bus.Register(freqHiReg)
	triggered := nr14.Bit(7) && nr14.Version() != v.lastNRx4Version
	v.lastNRx4Version = nr14.Version()

	v.length.Enabled = nr14.Bit(6)
	v.amp.Load(a.bus.Register(envReg).Read())
	v.dacOn = v.amp.DACEnabled()

	if hasSweep {
		sweepByte := a.bus.Register(sweepReg).Read()
		v.sweep.Period = (sweepByte >> 4) & 0x07
		v.sweep.Increasing = sweepByte&0x08 != 0
		v.sweep.Shift = sweepByte & 0x07
	}

	if triggered {
		v.length.Load(a.bus.Register(lenReg).Read() & 0x3F)
		v.length.Trigger()
		v.amp.Trigger()
		if hasSweep {
			v.sweep.Trigger(readFrequency(a.bus, freqLoReg, freqHiReg))
		}
		v.enabled = v.dacOn
		v.panner.Start()
	}

	v.enabled = v.enabled && v.dacOn && v.length.Active()

	freqBits := readFrequency(a.bus, freqLoReg, freqHiReg)
	hz := bitsToFrequency(freqBits)
	duty := [4]float64{0.125, 0.25, 0.50, 0.75}[a.bus.Register(lenReg).Read()>>6]

	if !v.enabled {
		v.panner.RampPan(0, true, true, 0, 0, voiceRampSeconds)
		return
	}
	v.panner.RampFrequency(hz, voiceRampSeconds)
	v.panner.SetPulseWidth(duty)
}

func (a *APU) decodeWave(v *voiceState) {
	nr34 := a.bus.Register(memory.RegNR34)
	triggered := nr34.Bit(7) && nr34.Version() != v.lastNRx4Version
	v.lastNRx4Version = nr34.Version()

	v.length.Enabled = nr34.Bit(6)
	v.dacOn = a.bus.Register(memory.RegNR30).Bit(7)

	if triggered {
		v.length.Load(a.bus.Register(memory.RegNR31).Read())
		v.length.Trigger()
		v.enabled = v.dacOn
		v.panner.Start()
	}
	v.enabled = v.enabled && v.dacOn && v.length.Active()

	if !v.enabled {
		v.panner.RampPan(0, true, true, 0, 0, voiceRampSeconds)
		return
	}

	level := (a.bus.Register(memory.RegNR32).Read() >> 5) & 0x03
	freqBits := readFrequency(a.bus, memory.RegNR33, memory.RegNR34)
	v.panner.RampFrequency(bitsToFrequency(freqBits), voiceRampSeconds)
	v.panner.SetWavetable(a.waveform.Get(a.bus, level))
}

func (a *APU) decodeNoise(v *voiceState) {
	nr44 := a.bus.Register(memory.RegNR44)
	triggered := nr44.Bit(7) && nr44.Version() != v.lastNRx4Version
	v.lastNRx4Version = nr44.Version()

	v.length.Enabled = nr44.Bit(6)
	v.amp.Load(a.bus.Register(memory.RegNR42).Read())
	v.dacOn = v.amp.DACEnabled()

	if triggered {
		v.length.Load(a.bus.Register(memory.RegNR41).Read() & 0x3F)
		v.length.Trigger()
		v.amp.Trigger()
		v.enabled = v.dacOn
		v.panner.Start()
	}
	v.enabled = v.enabled && v.dacOn && v.length.Active()

	if !v.enabled {
		v.panner.RampPan(0, true, true, 0, 0, voiceRampSeconds)
		return
	}

	nr43 := a.bus.Register(memory.RegNR43).Read()
	shift := nr43 >> 4
	divisor := noiseDivisors[nr43&0x07]
	freq := 524288.0 / float64(divisor) / math.Pow(2, float64(shift)+1)
	v.panner.RampFrequency(freq, voiceRampSeconds)
}

// mix applies NR51 (per-voice stereo routing) and NR50 (master left/right
// volume) once, at mix time — the open-question resolution this
// implementation takes (see DESIGN.md).
func (a *APU) mix() {
	nr51 := a.bus.Register(memory.RegNR51).Read()
	nr50 := a.bus.Register(memory.RegNR50).Read()
	masterRight := float64((nr50>>0)&0x07) / 7.0
	masterLeft := float64((nr50>>4)&0x07) / 7.0

	for i, v := range a.voices {
		if !v.enabled {
			continue
		}
		rightOn := nr51&(1<<i) != 0
		leftOn := nr51&(1<<(i+4)) != 0
		amp := float64(v.amp.Volume()) / 15.0
		if v.kind == VoiceWave {
			amp = 1.0 // wave channel's level is already applied via the table shift
		}
		v.panner.RampPan(amp, leftOn, rightOn, masterLeft, masterRight, voiceRampSeconds)
	}
}

// updateStatusBits refreshes NR52 bits 3-0, which report each voice's
// enabled status back to the program (read-only from the CPU's side).
func (a *APU) updateStatusBits(masterReg *memory.Register) {
	status := masterReg.Read() & 0xF0
	for i, v := range a.voices {
		if v.enabled {
			status |= 1 << i
		}
	}
	masterReg.Write(status)
}
