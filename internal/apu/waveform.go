package apu

import "nitro-gb-core/internal/memory"

// waveKey identifies a cached 32-sample expansion of wave RAM: the combined
// version of the 16 backing registers plus the NR32 output-level shift
// applied to it. Re-deriving the table is cheap but this still avoids
// redoing it every tick while a program holds wave RAM steady.
type waveKey struct {
	version uint64
	level   uint8
}

// WaveformMemo caches the wave channel's 32 signed samples, keyed on
// Register.Version() so writes through the bus (not just LoadROM-time data)
// invalidate it automatically — the APU's only cache invalidation hook.
type WaveformMemo struct {
	key   waveKey
	table [32]int8
}

// Get returns the current 32-sample signed waveform, rebuilding it only if
// wave RAM or the output level changed since the last call.
func (m *WaveformMemo) Get(bus *memory.Bus, level uint8) [32]int8 {
	key := waveKey{version: waveRAMVersion(bus), level: level}
	if key == m.key {
		return m.table
	}
	m.key = key
	m.table = expandWaveRAM(bus, level)
	return m.table
}

func waveRAMVersion(bus *memory.Bus) uint64 {
	var v uint64
	for i := 0; i < 16; i++ {
		v += bus.WaveRAM(i).Version()
	}
	return v
}

// outputLevelShift maps NR32 bits 6-5 to the right-shift applied to each
// 4-bit sample: 0=mute, 1=100%, 2=50%, 3=25%.
func outputLevelShift(level uint8) uint8 {
	switch level {
	case 0:
		return 8 // shifts everything to 0
	case 1:
		return 0
	case 2:
		return 1
	default:
		return 2
	}
}

func expandWaveRAM(bus *memory.Bus, level uint8) [32]int8 {
	var table [32]int8
	shift := outputLevelShift(level)
	for i := 0; i < 16; i++ {
		b := bus.WaveRAM(i).Read()
		hi := b >> 4
		lo := b & 0x0F
		table[i*2] = signedSample(hi, shift)
		table[i*2+1] = signedSample(lo, shift)
	}
	return table
}

func signedSample(nibble, shift uint8) int8 {
	if shift >= 8 {
		return 0
	}
	return int8(nibble>>shift) - int8(8>>shift)
}
