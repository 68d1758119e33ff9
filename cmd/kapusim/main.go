package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/DHKold/konsolid8-Studio/config"
	"github.com/DHKold/konsolid8-Studio/emulator"
	"github.com/DHKold/konsolid8-Studio/io"
)

func loadConfig(path string) (cfg *config.Config) {
	var err error
	if len(path) != 0 {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return
}

func openSink(format string, output string, sampleRate int) (sink io.Sink) {
	var err error

	switch format {
	case config.FORMAT_WAV:
		if len(output) == 0 || output == "-" {
			log.Fatalf("%v: WAV output requires an -o file", os.Args[0])
		}
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		sink, err = io.NewWav(ouf, sampleRate)
		if err == nil {
			sink = &fileSink{Sink: sink, file: ouf}
		}
	case config.FORMAT_RAW:
		ouf := os.Stdout
		if len(output) != 0 && output != "-" {
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
		sink = &io.Raw{Output: ouf}
	case config.FORMAT_SOUND:
		sink, err = io.NewPlayer(sampleRate)
	default:
		log.Fatalf("%v: unknown output format %q", os.Args[0], format)
	}

	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	return
}

// fileSink closes the file under a sink that does not own it.
type fileSink struct {
	io.Sink
	file *os.File
}

func (fs *fileSink) Close() (err error) {
	err = fs.Sink.Close()
	if cerr := fs.file.Close(); err == nil {
		err = cerr
	}
	return
}

func main() {
	var configPath string
	var cycles int
	var format string
	var output string
	var sampleRate int
	var statePath string
	var resumePath string
	var verbose bool

	flag.StringVar(&configPath, "config", "", "Configuration file (default: nearest kapu.toml)")
	flag.IntVar(&cycles, "c", config.DEFAULT_CYCLES, "Number of APU cycles to run")
	flag.StringVar(&format, "f", config.FORMAT_SOUND, "Output format: wav, raw or sound")
	flag.StringVar(&output, "o", "", "Output file")
	flag.IntVar(&sampleRate, "r", config.DEFAULT_SAMPLE_RATE, "Sample rate, in Hz")
	flag.StringVar(&statePath, "state", "", "Write the final APU state to this file")
	flag.StringVar(&resumePath, "resume", "", "Resume from an APU state file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one .bin or .kaa input file, got %v", os.Args[0], flag.Args())
	}
	input := flag.Arg(0)

	cfg := loadConfig(configPath)

	// Flags given on the command line override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "c":
			cfg.Output.Cycles = cycles
		case "f":
			cfg.Output.Format = format
		case "r":
			cfg.Output.SampleRate = sampleRate
		}
	})

	err := cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.New(cfg.ApuConfig())
	emu.Verbose = verbose

	if strings.EqualFold(filepath.Ext(input), ".kaa") {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		err = emu.Assemble(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		emu.Load(data)
	}

	if len(resumePath) != 0 {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			log.Fatalf("%v: %v", resumePath, err)
		}
		state, err := io.UnmarshalState(data)
		if err != nil {
			log.Fatalf("%v: %v", resumePath, err)
		}
		emu.Resume(state)
	}

	sink := openSink(cfg.Output.Format, output, cfg.Output.SampleRate)

	samples, runErr := emu.Run(cfg.Output.Cycles)
	if verbose {
		log.Printf("kapusim: %v: %d samples in %d ticks", input, len(samples), emu.Ticks())
	}

	err = sink.Write(samples)
	if err == nil {
		err = sink.Close()
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(statePath) != 0 {
		data, err := io.MarshalState(emu.Snapshot())
		if err != nil {
			log.Fatalf("%v: %v", statePath, err)
		}
		err = os.WriteFile(statePath, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", statePath, err)
		}
	}

	if runErr != nil {
		log.Fatalf("%v: %v", input, runErr)
	}
}
