// Package cli parses command-line arguments for the smftool command.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Commands understood by smftool.
const (
	CommandInfo   = "info"
	CommandDump   = "dump"
	CommandCopy   = "copy"
	CommandRender = "render"
)

// Config holds the settings parsed from command-line arguments.
type Config struct {
	Command   string // info, dump, copy or render
	Input     string // input MIDI file path
	Output    string // output path for copy/render
	SoundFont string // SoundFont (.sf2) path for render
	LogLevel  string // debug, info, warn or error
	Strict    bool   // fail on MThd/MTrk identifier mismatches
	ShowHelp  bool
}

// ParseArgs parses args (without the program name) into a Config.
// Flags may appear before or after the positional command and input
// path; they are reordered before parsing. The SOUNDFONT and LOG_LEVEL
// environment variables act as fallbacks when the matching flag is not
// given.
func ParseArgs(args []string) (*Config, error) {
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("smftool", flag.ContinueOnError)

	config := &Config{}

	fs.StringVar(&config.Output, "output", "", "output file path")
	fs.StringVar(&config.Output, "o", "", "output file path (shorthand)")
	fs.StringVar(&config.SoundFont, "soundfont", "", "SoundFont (.sf2) file for render")
	fs.StringVar(&config.SoundFont, "s", "", "SoundFont file (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Strict, "strict", false, "fail on chunk identifier mismatches")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment fallbacks; explicit flags win.
	if config.SoundFont == "" {
		config.SoundFont = os.Getenv("SOUNDFONT")
	}
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if config.ShowHelp {
		return config, nil
	}

	if fs.NArg() == 0 {
		config.ShowHelp = true
		return config, nil
	}

	config.Command = fs.Arg(0)
	switch config.Command {
	case CommandInfo, CommandDump, CommandCopy, CommandRender:
	default:
		return nil, fmt.Errorf("unknown command: %s", config.Command)
	}

	if fs.NArg() < 2 {
		return nil, fmt.Errorf("%s: missing input file", config.Command)
	}
	config.Input = fs.Arg(1)

	switch config.Command {
	case CommandCopy, CommandRender:
		if config.Output == "" {
			return nil, fmt.Errorf("%s: -o/--output is required", config.Command)
		}
	}
	if config.Command == CommandRender && config.SoundFont == "" {
		return nil, fmt.Errorf("render: -s/--soundfont is required (or set SOUNDFONT)")
	}

	return config, nil
}

// boolFlags are flags that never take a value; reorderArgs must not
// swallow the following argument for them.
var boolFlags = map[string]bool{
	"-h": true, "-help": true, "--help": true,
	"-strict": true, "--strict": true,
}

// reorderArgs moves flags before positional arguments so the flag
// package sees all of them regardless of where the user put them.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// Value-taking flag: carry the next argument along with it.
			if !boolFlags[arg] && i+1 < len(args) && (len(args[i+1]) == 0 || args[i+1][0] != '-') {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp writes the usage message to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `smftool - Standard MIDI File inspector and converter

Usage:
  smftool [options] <command> <input.mid>

Commands:
  info      print header, track and duration summary
  dump      print every event in every track
  copy      decode and re-encode the file (expands running status)
  render    synthesize the file to a 16-bit stereo WAV

Options:
  -o, --output <path>        output file (copy, render)
  -s, --soundfont <path>     SoundFont .sf2 file (render)
  -l, --log-level <level>    log level: debug, info, warn, error (default: info)
  --strict                   fail on MThd/MTrk identifier mismatches
  -h, --help                 show this help

Environment Variables:
  SOUNDFONT=<path>           default SoundFont for render
  LOG_LEVEL=<level>          default log level

Examples:
  smftool info song.mid
  smftool dump song.mid
  smftool copy song.mid -o clean.mid
  smftool render song.mid -s gm.sf2 -o song.wav
`)
}
