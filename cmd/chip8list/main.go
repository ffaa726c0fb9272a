// Package main implements a CHIP-8 ROM listing tool
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	verify bool
	quiet  bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner(options)
	}

	if err := listFile(options); err != nil {
		fmt.Println(fmt.Errorf("listing failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.verify, "verify", false, "verify that the opcodes of the listing match the input")
	flags.StringVar(&options.output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: chip8list [options] <file to list>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[------------------------------------]")
		fmt.Println("[ chip8list - CHIP-8 ROM lister      ]")
		fmt.Printf("[------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func listFile(options optionFlags) error {
	rom, listing, err := listROM(options.input)
	if err != nil {
		return err
	}

	var outputFile io.WriteCloser
	if options.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
	}
	if _, err = outputFile.Write(listing); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	if options.verify {
		if err = verifyOutput(rom, listing); err != nil {
			return err
		}
		if !options.quiet {
			fmt.Println("Listing matched input file.")
		}
	}
	return nil
}

// listROM reads the ROM file and returns its content and assembly listing.
func listROM(path string) ([]byte, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file '%s': %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := loader.Read(file)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %w", err)
	}

	var listing bytes.Buffer
	if err := trace.List(&listing, rom); err != nil {
		return nil, nil, fmt.Errorf("processing file: %w", err)
	}
	return rom, listing.Bytes(), nil
}

// verifyOutput reassembles the opcode column of the listing and compares it
// with the part of the ROM that is loaded into memory.
func verifyOutput(rom, listing []byte) error {
	assembled, err := parseListing(listing)
	if err != nil {
		return fmt.Errorf("parsing listing: %w", err)
	}

	expected := rom[:min(len(rom), machine.MaxROMSize)]
	expected = expected[:len(expected)&^1]
	return checkBufferEqual(expected, assembled)
}

// parseListing returns the opcode bytes of listing lines in the format
// "200: 6A05  ld VA, $05".
func parseListing(listing []byte) ([]byte, error) {
	var data []byte
	expectedAddress := machine.ProgramStart

	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		line := scanner.Text()
		addressField, rest, ok := strings.Cut(line, ": ")
		if !ok || len(rest) < 4 {
			return nil, fmt.Errorf("malformed line '%s'", line)
		}

		address, err := strconv.ParseUint(addressField, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing address of line '%s': %w", line, err)
		}
		if int(address) != expectedAddress {
			return nil, fmt.Errorf("unexpected address %03X, expected %03X", address, expectedAddress)
		}

		word, err := strconv.ParseUint(rest[:4], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing opcode of line '%s': %w", line, err)
		}

		data = append(data, byte(word>>8), byte(word))
		expectedAddress += machine.InstructionSize
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	return data, nil
}

func checkBufferEqual(input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	firstDiff := -1
	for i := range input {
		if input[i] == output[i] {
			continue
		}
		diffs++
		if firstDiff == -1 {
			firstDiff = i
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches, first at offset %d", diffs, firstDiff)
}
