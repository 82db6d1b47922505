// Package render synthesizes Standard MIDI File data to PCM audio
// using go-meltysynth and a SoundFont. Rendering is offline: samples
// are produced as fast as the synthesizer allows and written to a WAV
// file, with no audio device involved.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sinshu/go-meltysynth/meltysynth"
)

// SampleRate is the output sample rate for synthesis.
const SampleRate = 44100

// renderChunk is the number of samples synthesized per Render call.
const renderChunk = 4096

var (
	// ErrNoSoundFont is returned when no SoundFont file is provided.
	ErrNoSoundFont = errors.New("SoundFont file is required for MIDI rendering")

	// ErrSoundFontNotFound is returned when the SoundFont file cannot be found.
	ErrSoundFontNotFound = errors.New("SoundFont file not found")

	// ErrInvalidMIDI is returned when the synthesizer rejects the MIDI data.
	ErrInvalidMIDI = errors.New("invalid MIDI data")
)

// Renderer synthesizes MIDI data through a loaded SoundFont. One
// Renderer may render any number of files sequentially; it is not safe
// for concurrent use.
type Renderer struct {
	synth *meltysynth.Synthesizer
}

// NewRenderer loads the SoundFont at soundFontPath and prepares a
// synthesizer for it.
func NewRenderer(soundFontPath string) (*Renderer, error) {
	if soundFontPath == "" {
		return nil, ErrNoSoundFont
	}

	sf2Data, err := os.ReadFile(soundFontPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSoundFontNotFound, soundFontPath)
		}
		return nil, fmt.Errorf("failed to read SoundFont file: %w", err)
	}

	soundFont, err := meltysynth.NewSoundFont(bytes.NewReader(sf2Data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SoundFont: %w", err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	return &Renderer{synth: synth}, nil
}

// Render synthesizes midiData and writes a 16-bit stereo PCM WAV to
// out. The rendered length equals the file's playback length as
// computed by the sequencer.
func (r *Renderer) Render(midiData []byte, out io.Writer) error {
	midi, err := meltysynth.NewMidiFile(bytes.NewReader(midiData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMIDI, err)
	}

	sequencer := meltysynth.NewMidiFileSequencer(r.synth)
	sequencer.Play(midi, false)

	totalSamples := int(midi.GetLength().Seconds() * float64(SampleRate))
	left := make([]float32, renderChunk)
	right := make([]float32, renderChunk)

	w := newWAVWriter(out)
	if err := w.writeHeader(totalSamples); err != nil {
		return err
	}
	for rendered := 0; rendered < totalSamples; rendered += renderChunk {
		n := min(renderChunk, totalSamples-rendered)
		sequencer.Render(left[:n], right[:n])
		if err := w.writeSamples(left[:n], right[:n]); err != nil {
			return err
		}
	}
	return nil
}

// RenderFile is the file-path convenience form of Render.
func (r *Renderer) RenderFile(midiPath, outPath string) error {
	midiData, err := os.ReadFile(midiPath)
	if err != nil {
		return fmt.Errorf("failed to read MIDI file: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	return r.Render(midiData, out)
}
