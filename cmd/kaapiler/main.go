package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/DHKold/konsolid8-Studio/io"
	"github.com/DHKold/konsolid8-Studio/kaa"
)

func main() {
	var output string
	var format string
	var group int
	var verbose bool

	flag.StringVar(&output, "o", "-", "Output file")
	flag.StringVar(&format, "f", "binary", "Output format: binary, hex or go")
	flag.IntVar(&group, "g", 0, "Bytes per group of hex output (0 for no grouping)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one .kaa input file, got %v", os.Args[0], flag.Args())
	}
	input := flag.Arg(0)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	asm := &kaa.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	data, err := prog.Binary()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	switch format {
	case "binary":
	case "hex":
		data = []byte(io.FormatHex(data, group) + "\n")
	case "go":
		data = []byte(io.FormatGo(data) + "\n")
	default:
		log.Fatalf("%v: unknown output format %q", os.Args[0], format)
	}

	ouf := os.Stdout
	if output == "-" {
		if format == "binary" && term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatalf("%v: refusing to write binary to a terminal, use -o or -f hex", os.Args[0])
		}
	} else {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	_, err = ouf.Write(data)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if verbose {
		log.Printf("kaapiler: %v: %d opcodes, %d bytes of bytecode", input, len(prog.Opcodes), prog.Len())
	}
}
