package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/breakpoint"
	"github.com/thelolagemann/dmgcore/pkg/config"
	"github.com/thelolagemann/dmgcore/pkg/emu"
	"github.com/thelolagemann/dmgcore/pkg/headless"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	configFile := flag.String("config", "", "A YAML file with the defaults for the flags below")
	flag.String("rom", "", "The rom file to load")
	flag.String("boot", "", "The boot rom file to load, or minimal for the built-in one")
	flag.Int("frames", 60, "The number of frames to run")
	flag.String("keys", "", "Key presses to script, e.g. start:60-65,a:120")
	flag.String("screenshot", "", "Write the last frame to this PNG file")
	flag.Int("scale", 1, "The scale of the screenshot")
	flag.String("palette", "greyscale", "The palette of the screenshot")
	flag.String("wav", "", "Record the sound to this WAV file")
	flag.String("serial", "", "Write the serial output to this file, - for stdout")
	flag.String("saves", "", "The folder for battery saves")
	flag.String("state-in", "", "The state file to load")
	flag.String("state-out", "", "Write the state to this file after the last frame")
	flag.String("break", "", "A Lua file defining should_pause(cpu)")
	flag.String("log-level", "info", "The log level (debug, info, warn, error)")
	saveConfig := flag.String("save-config", "", "Write the resulting configuration to this YAML file")
	disasm := flag.Bool("disasm", false, "Print the disassembly of the code reachable from the entry point and exit")
	flag.Parse()

	c := config.Default()
	if *configFile != "" {
		var err error
		if c, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	applyFlags(c)

	logger, err := log.NewWithLevel(c.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := c.Validate(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(2)
	}

	if *saveConfig != "" {
		if err := c.Save(*saveConfig); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}

	if *disasm {
		err = disassemble(c.ROM, os.Stdout)
	} else {
		err = run(c, logger)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// applyFlags copies the flags given on the command line over the
// configuration.
func applyFlags(c *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "rom":
			c.ROM = v.(string)
		case "boot":
			c.Boot = v.(string)
		case "frames":
			c.Frames = v.(int)
		case "keys":
			c.Keys = v.(string)
		case "screenshot":
			c.Screenshot = v.(string)
		case "scale":
			c.Scale = v.(int)
		case "palette":
			c.Palette = v.(string)
		case "wav":
			c.WAV = v.(string)
		case "serial":
			c.Serial = v.(string)
		case "saves":
			c.Saves = v.(string)
		case "state-in":
			c.StateIn = v.(string)
		case "state-out":
			c.StateOut = v.(string)
		case "break":
			c.Break = v.(string)
		case "log-level":
			c.LogLevel = v.(string)
		}
	})
}

func run(c *config.Config, logger log.Logger) error {
	// open the rom file
	rom, err := utils.LoadFile(c.ROM)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	switch c.Boot {
	case "":
	case "minimal":
		opts = append(opts, gameboy.WithBootROM(boot.Minimal()))
	default:
		b, err := utils.LoadFile(c.Boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(b))
	}

	switch c.Serial {
	case "":
	case "-":
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	default:
		f, err := os.Create(c.Serial)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, gameboy.WithSerialOutput(f))
	}

	if c.StateIn != "" {
		state, err := os.ReadFile(c.StateIn)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithState(state))
	}

	var saves *emu.Saves
	if c.Saves != "" {
		// saves are keyed by the header title and the rom hash
		header, _ := cartridge.ParseHeader(rom)
		saves = emu.NewSaves(c.Saves, header.Title, rom)
		ram, err := saves.Latest()
		if err != nil {
			return err
		}
		if ram != nil {
			logger.Infof("loading battery save from %s", saves.Dir)
			opts = append(opts, gameboy.WithBatteryRAM(ram))
		}
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	pal, _ := palette.ByName(c.Palette)
	p := &headless.Peripherals{Screen: headless.NewScreen(pal)}
	if p.Keys, err = headless.ParseKeys(c.Keys); err != nil {
		return err
	}
	if c.WAV != "" {
		p.Recorder = headless.NewRecorder()
	}

	var shouldPause func(*gameboy.GameBoy) bool
	var predicate *breakpoint.Predicate
	if c.Break != "" {
		script, err := os.ReadFile(c.Break)
		if err != nil {
			return err
		}
		if predicate, err = breakpoint.Compile(string(script)); err != nil {
			return err
		}
		defer predicate.Close()
		shouldPause = predicate.ShouldPause
	}

	runErr := runFrames(gb, p, c.Frames, shouldPause, logger)
	if runErr == nil && predicate != nil {
		runErr = predicate.Err()
	}

	// write out whatever was produced, even after a termination
	if c.Screenshot != "" {
		if err := utils.SaveImage(c.Screenshot, p.Screen.Image(c.Scale)); err != nil {
			return err
		}
	}
	if p.Recorder != nil {
		if err := p.Recorder.Save(c.WAV); err != nil {
			return err
		}
	}
	if saves != nil {
		if ram := gb.BatteryRAM(); ram != nil {
			path, err := saves.Write(ram)
			if err != nil {
				return err
			}
			logger.Infof("battery saved to %s", path)
		}
	}
	if c.StateOut != "" {
		state, err := gb.SaveState()
		if err != nil {
			return err
		}
		if err := utils.WriteFile(c.StateOut, state); err != nil {
			return err
		}
	}
	return runErr
}

func runFrames(gb *gameboy.GameBoy, p *headless.Peripherals, frames int, shouldPause func(*gameboy.GameBoy) bool, logger log.Logger) error {
	rumble := false
	for p.Frame() < frames {
		outcome, err := gb.ExecuteFrame(p, shouldPause)
		switch outcome {
		case gameboy.FrameCompleted:
			if r := gb.Cartridge.Rumble(); r != rumble {
				rumble = r
				logger.Debugf("frame %d: rumble %v", p.Frame(), rumble)
			}
			p.EndFrame()
		case gameboy.FramePaused:
			logger.Infof("paused in frame %d at PC 0x%04X (%s)", p.Frame(), gb.CPU.PC, cpu.Disassemble(gb.LoadByte, gb.CPU.PC).Text)
			return nil
		case gameboy.FrameTerminated:
			return err
		}
	}
	logger.Infof("ran %d frames (%d cycles)", frames, gb.Cycles())
	return nil
}

// disassemble prints the instructions reachable from the entry point
// and the interrupt vectors of the rom.
func disassemble(romFile string, w io.Writer) error {
	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return err
	}
	mem := func(address types.Word) types.Byte {
		if int(address) < len(rom) {
			return types.Byte(rom[address])
		}
		return 0xFF
	}

	for _, address := range cpu.Trace(mem, 0x0100, 0x0040, 0x0048, 0x0050, 0x0058, 0x0060) {
		if _, err := fmt.Fprintln(w, cpu.Disassemble(mem, address)); err != nil {
			return err
		}
	}
	return nil
}
