// Package sdlsink is the only place in this module that imports go-sdl2: a
// real stereo audio backend for oscillator.Sink, queuing synthesized PCM
// through SDL2's audio device for the four DMG voices the APU drives.
package sdlsink

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"nitro-gb-core/internal/oscillator"
)

const (
	sampleRate    = 44100
	bufferSamples = 735
)

// Channel picks a stereo side of a voice.
type Channel int

const (
	Left Channel = iota
	Right
)

type waveKind int

const (
	kindPulse waveKind = iota
	kindWave
)

// voiceOsc is one mixed channel's live synthesis state: written at
// control-rate by the Sink calls the APU makes, read at audio-rate by the
// mixer goroutine. The mutex separates those two rates. Frequency and
// amplitude each track a target and a per-second rate so a Ramp call plays
// out smoothly across the samples between now and the next control-rate
// update, instead of stepping instantly.
type voiceOsc struct {
	mu      sync.Mutex
	kind    waveKind
	running bool

	freq       float64
	freqRate   float64 // units/sec toward freqTarget; 0 once reached
	freqTarget float64

	amp       float64
	ampRate   float64
	ampTarget float64

	duty  float64
	table [32]int8
	phase float64
}

func (v *voiceOsc) Start() { v.mu.Lock(); v.running = true; v.mu.Unlock() }
func (v *voiceOsc) Stop()  { v.mu.Lock(); v.running = false; v.mu.Unlock() }

func (v *voiceOsc) SetFrequency(hz float64) {
	v.mu.Lock()
	v.freq, v.freqTarget, v.freqRate = hz, hz, 0
	v.mu.Unlock()
}

func (v *voiceOsc) RampFrequency(targetHz float64, over float64) {
	v.mu.Lock()
	v.freqTarget = targetHz
	v.freqRate = rampRate(v.freq, targetHz, over)
	v.mu.Unlock()
}

func (v *voiceOsc) SetAmplitude(amp float64) {
	v.mu.Lock()
	v.amp, v.ampTarget, v.ampRate = amp, amp, 0
	v.mu.Unlock()
}

func (v *voiceOsc) RampAmplitude(target float64, over float64) {
	v.mu.Lock()
	v.ampTarget = target
	v.ampRate = rampRate(v.amp, target, over)
	v.mu.Unlock()
}

func (v *voiceOsc) SetPulseWidth(duty float64) { v.mu.Lock(); v.duty = duty; v.mu.Unlock() }

func (v *voiceOsc) SetWavetable(samples [32]int8) {
	v.mu.Lock()
	v.table = samples
	v.kind = kindWave
	v.mu.Unlock()
}

// rampRate returns the per-second delta needed to move from current to
// target across over seconds; over<=0 requests an immediate jump.
func rampRate(current, target, over float64) float64 {
	if over <= 0 {
		return 0
	}
	return (target - current) / over
}

// advanceRamp steps value toward target by rate*dt, clamping at target so it
// never overshoots and stopping the rate once it arrives.
func advanceRamp(value, target, rate, dt float64) (newValue, newRate float64) {
	if rate == 0 {
		return target, 0
	}
	value += rate * dt
	if (rate > 0 && value >= target) || (rate < 0 && value <= target) {
		return target, 0
	}
	return value, rate
}

// sample advances the oscillator's phase and ramps by dt seconds and
// returns its contribution in [-1, 1], pre-amplitude-scaled.
func (v *voiceOsc) sample(dt float64) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.freq, v.freqRate = advanceRamp(v.freq, v.freqTarget, v.freqRate, dt)
	v.amp, v.ampRate = advanceRamp(v.amp, v.ampTarget, v.ampRate, dt)

	if !v.running || v.amp <= 0 || v.freq <= 0 {
		return 0
	}

	var out float64
	switch v.kind {
	case kindWave:
		idx := int(v.phase*32) % 32
		out = float64(v.table[idx]) / 8.0
	default:
		if math.Mod(v.phase, 1.0) < v.duty {
			out = 1
		} else {
			out = -1
		}
	}
	v.phase += v.freq * dt
	if v.phase > 1<<20 {
		v.phase = math.Mod(v.phase, 1.0)
	}
	return out * v.amp
}

var _ oscillator.Sink = (*voiceOsc)(nil)

// Device owns the one real SDL2 audio output and fans synthesis across the
// four DMG voices (pulse1, pulse2, wave, noise), each stereo.
type Device struct {
	id     sdl.AudioDeviceID
	voices [4][2]*voiceOsc
	stop   chan struct{}
	wg     sync.WaitGroup
}

// OpenDevice opens the default SDL2 output at 44.1kHz stereo float32 and
// starts the background mixer.
func OpenDevice() (*Device, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdl audio init: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_F32,
		Channels: 2,
		Samples:  bufferSamples,
	}
	id, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("sdl open audio device: %w", err)
	}

	d := &Device{id: id, stop: make(chan struct{})}
	for v := range d.voices {
		d.voices[v][Left] = &voiceOsc{}
		d.voices[v][Right] = &voiceOsc{}
	}

	sdl.PauseAudioDevice(d.id, false)
	d.wg.Add(1)
	go d.mixLoop()
	return d, nil
}

// Channel returns the Sink for one voice (0=pulse1, 1=pulse2, 2=wave,
// 3=noise) and stereo side, for apu.NewAPU's Panner wiring.
func (d *Device) Channel(voice int, side Channel) oscillator.Sink {
	return d.voices[voice][side]
}

// mixLoop sums all eight channels into interleaved float32 frames and queues
// them, skipping a frame when the device's queue is already comfortably full
// to keep latency from growing during a stall.
func (d *Device) mixLoop() {
	defer d.wg.Done()

	dt := 1.0 / float64(sampleRate)
	frame := make([]float32, bufferSamples*2)
	buf := make([]byte, len(frame)*4)
	period := time.Second * time.Duration(bufferSamples) / time.Duration(sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			if sdl.GetQueuedAudioSize(d.id) > uint32(len(buf))*2 {
				continue
			}
			for s := 0; s < bufferSamples; s++ {
				var l, r float64
				for v := range d.voices {
					l += d.voices[v][Left].sample(dt)
					r += d.voices[v][Right].sample(dt)
				}
				frame[s*2] = float32(clamp(l/4, -1, 1))
				frame[s*2+1] = float32(clamp(r/4, -1, 1))
			}
			for i, f := range frame {
				binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
			}
			_ = sdl.QueueAudio(d.id, buf)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Close stops the mixer goroutine and releases the SDL2 device.
func (d *Device) Close() {
	close(d.stop)
	d.wg.Wait()
	sdl.CloseAudioDevice(d.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
