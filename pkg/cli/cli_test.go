package cli

import "testing"

func TestParseArgs_ValidArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "info command",
			args: []string{"info", "song.mid"},
			expected: Config{
				Command:  CommandInfo,
				Input:    "song.mid",
				LogLevel: "info",
			},
		},
		{
			name: "dump command",
			args: []string{"dump", "song.mid"},
			expected: Config{
				Command:  CommandDump,
				Input:    "song.mid",
				LogLevel: "info",
			},
		},
		{
			name: "copy with output",
			args: []string{"copy", "song.mid", "-o", "out.mid"},
			expected: Config{
				Command:  CommandCopy,
				Input:    "song.mid",
				Output:   "out.mid",
				LogLevel: "info",
			},
		},
		{
			name: "flags before command",
			args: []string{"-o", "out.mid", "copy", "song.mid"},
			expected: Config{
				Command:  CommandCopy,
				Input:    "song.mid",
				Output:   "out.mid",
				LogLevel: "info",
			},
		},
		{
			name: "render with soundfont",
			args: []string{"render", "song.mid", "-s", "gm.sf2", "-o", "song.wav"},
			expected: Config{
				Command:   CommandRender,
				Input:     "song.mid",
				Output:    "song.wav",
				SoundFont: "gm.sf2",
				LogLevel:  "info",
			},
		},
		{
			name: "log level long form",
			args: []string{"--log-level", "debug", "info", "song.mid"},
			expected: Config{
				Command:  CommandInfo,
				Input:    "song.mid",
				LogLevel: "debug",
			},
		},
		{
			name: "log level shorthand",
			args: []string{"-l", "error", "info", "song.mid"},
			expected: Config{
				Command:  CommandInfo,
				Input:    "song.mid",
				LogLevel: "error",
			},
		},
		{
			name: "strict mode",
			args: []string{"--strict", "info", "song.mid"},
			expected: Config{
				Command:  CommandInfo,
				Input:    "song.mid",
				LogLevel: "info",
				Strict:   true,
			},
		},
		{
			name: "help flag",
			args: []string{"--help"},
			expected: Config{
				LogLevel: "info",
				ShowHelp: true,
			},
		},
		{
			name: "no arguments shows help",
			args: []string{},
			expected: Config{
				LogLevel: "info",
				ShowHelp: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *config != tt.expected {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.args, *config, tt.expected)
			}
		})
	}
}

func TestParseArgs_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate", "song.mid"}},
		{"missing input", []string{"info"}},
		{"copy without output", []string{"copy", "song.mid"}},
		{"render without output", []string{"render", "song.mid", "-s", "gm.sf2"}},
		{"invalid log level", []string{"-l", "loud", "info", "song.mid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("ParseArgs(%v) should have failed", tt.args)
			}
		})
	}
}

func TestParseArgs_EnvFallbacks(t *testing.T) {
	t.Run("SOUNDFONT env", func(t *testing.T) {
		t.Setenv("SOUNDFONT", "env.sf2")
		config, err := ParseArgs([]string{"render", "song.mid", "-o", "song.wav"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.SoundFont != "env.sf2" {
			t.Errorf("SoundFont = %q, want %q", config.SoundFont, "env.sf2")
		}
	})

	t.Run("flag wins over SOUNDFONT env", func(t *testing.T) {
		t.Setenv("SOUNDFONT", "env.sf2")
		config, err := ParseArgs([]string{"render", "song.mid", "-s", "flag.sf2", "-o", "song.wav"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.SoundFont != "flag.sf2" {
			t.Errorf("SoundFont = %q, want %q", config.SoundFont, "flag.sf2")
		}
	})

	t.Run("LOG_LEVEL env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		config, err := ParseArgs([]string{"info", "song.mid"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.LogLevel != "warn" {
			t.Errorf("LogLevel = %q, want %q", config.LogLevel, "warn")
		}
	})
}
