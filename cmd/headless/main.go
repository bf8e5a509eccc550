// Command headless runs a DMG ROM with no video output, driving the CPU and
// APU off a MasterClock and the APU's voices into the SDL2-backed audio
// sinks in sdlsink (or a silent Null sink with -mute).
package main

import (
	"flag"
	"fmt"
	"os"

	"nitro-gb-core/cmd/headless/sdlsink"
	"nitro-gb-core/internal/apu"
	"nitro-gb-core/internal/cartridge"
	"nitro-gb-core/internal/clock"
	"nitro-gb-core/internal/cpu"
	"nitro-gb-core/internal/debug"
	"nitro-gb-core/internal/memory"
	"nitro-gb-core/internal/oscillator"
)

func main() {
	romPath := flag.String("rom", "", "Path to a DMG ROM image")
	mute := flag.Bool("mute", false, "Run with a null audio sink instead of SDL2")
	enableLogging := flag.Bool("log", false, "Enable structured logging to stderr")
	cycleLimit := flag.Uint64("cycles", 0, "Stop after this many T-states (0 = run until emulation errors)")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: headless -rom <path-to-rom> [-mute] [-log] [-cycles N]")
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading ROM file: %v\n", err)
		os.Exit(1)
	}

	var cart cartridge.Cartridge
	if err := cart.LoadROM(romData); err != nil {
		fmt.Fprintf(os.Stderr, "loading ROM: %v\n", err)
		os.Exit(1)
	}

	var logger *debug.Logger
	if *enableLogging {
		logger = debug.NewLogger(10000)
		logger.SetComponentEnabled(debug.ComponentCPU, true)
		logger.SetComponentEnabled(debug.ComponentAPU, true)
		logger.SetComponentEnabled(debug.ComponentMemory, true)
		logger.SetComponentEnabled(debug.ComponentSystem, true)
	}

	bus := memory.NewBus()
	bus.SetCartridge(&cart)
	if logger != nil {
		bus.SetLogger(logger)
	}

	c := cpu.NewCPU()
	if logger != nil {
		c.SetLogger(logger)
	}

	panners, closeAudio := buildAudioPanners(*mute)
	defer closeAudio()

	a := apu.NewAPU(bus, panners)
	if logger != nil {
		a.SetLogger(logger)
	}

	mc := clock.NewMasterClock()
	mc.CPUStep = func() (uint64, error) { return c.Step(bus) }
	mc.APUStep = a.Run

	fmt.Printf("Loaded %q (cartridge type 0x%02X, ROM size code 0x%02X)\n", cart.Header.Title, cart.Header.Type, cart.Header.ROMSize)

	for *cycleLimit == 0 || mc.GetCycle() < *cycleLimit {
		if _, err := mc.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "emulation halted: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildAudioPanners wires one oscillator.Panner per DMG voice: either real
// SDL2 audio devices or Null sinks, depending on -mute.
func buildAudioPanners(mute bool) ([4]*oscillator.Panner, func()) {
	var panners [4]*oscillator.Panner
	if mute {
		for i := range panners {
			panners[i] = oscillator.NewPanner(oscillator.Null{}, oscillator.Null{})
		}
		return panners, func() {}
	}

	device, err := sdlsink.OpenDevice()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening SDL2 audio device: %v; falling back to -mute\n", err)
		for i := range panners {
			panners[i] = oscillator.NewPanner(oscillator.Null{}, oscillator.Null{})
		}
		return panners, func() {}
	}
	for i := range panners {
		panners[i] = oscillator.NewPanner(device.Channel(i, sdlsink.Left), device.Channel(i, sdlsink.Right))
	}
	return panners, device.Close
}
