// Package app wires the smftool commands together: argument parsing,
// logging, file loading, and dispatch to the codec and renderer.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zurustar/gosmf/pkg/cli"
	"github.com/zurustar/gosmf/pkg/fileutil"
	"github.com/zurustar/gosmf/pkg/logger"
	"github.com/zurustar/gosmf/pkg/render"
	"github.com/zurustar/gosmf/pkg/smf"
)

// Application runs one smftool invocation.
type Application struct {
	config *cli.Config
	log    *slog.Logger
	stdout io.Writer
}

// New creates an Application writing command output to stdout.
func New() *Application {
	return &Application{stdout: os.Stdout}
}

// Run parses args, loads the input file and dispatches the command.
func (app *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()

	inputPath, err := fileutil.ResolvePath(app.config.Input)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read MIDI file: %w", err)
	}

	file, err := smf.DecodeWith(data, smf.DecodeOptions{Strict: app.config.Strict})
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", inputPath, err)
	}
	app.log.Info("MIDI file decoded", "path", inputPath, "tracks", len(file.Tracks))

	switch app.config.Command {
	case cli.CommandInfo:
		return app.runInfo(file)
	case cli.CommandDump:
		return app.runDump(file)
	case cli.CommandCopy:
		return app.runCopy(file)
	case cli.CommandRender:
		return app.runRender(file)
	default:
		return fmt.Errorf("unknown command: %s", app.config.Command)
	}
}

// runInfo prints a header, division, duration and per-track summary.
func (app *Application) runInfo(file *smf.File) error {
	fmt.Fprintf(app.stdout, "format: %d\n", file.Header.Format)
	fmt.Fprintf(app.stdout, "tracks: %d\n", len(file.Tracks))
	fmt.Fprintf(app.stdout, "division: %s\n", divisionString(file.Header.Division))
	fmt.Fprintf(app.stdout, "duration: %s\n", file.Duration().Round(10*time.Millisecond))
	for i, t := range file.Tracks {
		name := t.Name()
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(app.stdout, "track %d: %s, %d events\n", i, name, len(t.Messages))
	}
	return nil
}

// runDump prints every event with its absolute tick position.
func (app *Application) runDump(file *smf.File) error {
	for i, t := range file.Tracks {
		fmt.Fprintf(app.stdout, "track %d:\n", i)
		var tick uint64
		for _, m := range t.Messages {
			tick += uint64(m.Delta)
			fmt.Fprintf(app.stdout, "  %8d %s\n", tick, eventString(m.Event))
		}
	}
	return nil
}

// runCopy re-encodes the decoded file. Running-status compression in
// the input comes out expanded, everything else round-trips.
func (app *Application) runCopy(file *smf.File) error {
	encoded, err := file.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	if err := os.WriteFile(app.config.Output, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	app.log.Info("File written", "path", app.config.Output, "bytes", len(encoded))
	return nil
}

// runRender synthesizes the decoded file to a WAV file. The file is
// re-encoded first so the renderer sees exactly what the codec decoded.
func (app *Application) runRender(file *smf.File) error {
	soundFontPath, err := findSoundFont(app.config.SoundFont)
	if err != nil {
		return err
	}
	app.log.Info("SoundFont selected", "path", soundFontPath)

	encoded, err := file.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	renderer, err := render.NewRenderer(soundFontPath)
	if err != nil {
		return err
	}
	out, err := os.Create(app.config.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	if err := renderer.Render(encoded, out); err != nil {
		return err
	}
	app.log.Info("WAV written", "path", app.config.Output)
	return nil
}

// divisionString formats a timing division for display.
func divisionString(d smf.Division) string {
	if d.Kind == smf.DivisionSMPTE {
		return fmt.Sprintf("SMPTE %d fps, %d ticks/frame", d.FramesPerSecond, d.TicksPerFrame)
	}
	return fmt.Sprintf("%d ticks/quarter", d.TicksPerQuarter)
}

// eventString formats one event for the dump listing.
func eventString(ev smf.Event) string {
	switch e := ev.(type) {
	case smf.Meta:
		if e.IsText() || e.Type == smf.MetaTrackName {
			return fmt.Sprintf("Meta 0x%02X %q", e.Type, e.Text())
		}
		if e.Type == smf.MetaSetTempo {
			return fmt.Sprintf("SetTempo %d us/quarter", e.MicrosPerQuarter())
		}
		if e.Type == smf.MetaEndOfTrack {
			return "EndOfTrack"
		}
		return fmt.Sprintf("Meta 0x%02X % X", e.Type, e.Payload)
	case smf.SysEx:
		return fmt.Sprintf("SysEx % X", e.Payload)
	case smf.SysExContinuation:
		return fmt.Sprintf("SysExCont % X", e.Payload)
	case smf.Channel:
		data := make([]string, len(e.Data))
		for i, v := range e.Data {
			data[i] = fmt.Sprintf("%d", v)
		}
		return fmt.Sprintf("%s ch=%d [%s]", e.Type, e.Channel, strings.Join(data, " "))
	default:
		return fmt.Sprintf("%T", ev)
	}
}
