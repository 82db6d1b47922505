package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRendererRequiresSoundFont(t *testing.T) {
	if _, err := NewRenderer(""); !errors.Is(err, ErrNoSoundFont) {
		t.Errorf("NewRenderer(\"\") = %v, want ErrNoSoundFont", err)
	}
}

func TestNewRendererMissingFile(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing.sf2"))
	if !errors.Is(err, ErrSoundFontNotFound) {
		t.Errorf("NewRenderer on missing file = %v, want ErrSoundFontNotFound", err)
	}
}

func TestNewRendererRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.sf2")
	if err := os.WriteFile(path, []byte("not a soundfont"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := NewRenderer(path); err == nil {
		t.Error("NewRenderer should reject a non-SF2 file")
	}
}

func TestWAVHeaderLayout(t *testing.T) {
	var out bytes.Buffer
	w := newWAVWriter(&out)
	if err := w.writeHeader(SampleRate); err != nil { // one second
		t.Fatalf("writeHeader failed: %v", err)
	}

	header := out.Bytes()
	if len(header) != 44 {
		t.Fatalf("header length = %d, want 44", len(header))
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		t.Errorf("bad RIFF/WAVE tags: % X", header[:12])
	}
	if string(header[12:16]) != "fmt " || string(header[36:40]) != "data" {
		t.Errorf("bad chunk tags: % X", header)
	}

	dataSize := binary.LittleEndian.Uint32(header[40:44])
	if dataSize != SampleRate*wavBlockAlign {
		t.Errorf("data size = %d, want %d", dataSize, SampleRate*wavBlockAlign)
	}
	riffSize := binary.LittleEndian.Uint32(header[4:8])
	if riffSize != 36+dataSize {
		t.Errorf("riff size = %d, want %d", riffSize, 36+dataSize)
	}
	if rate := binary.LittleEndian.Uint32(header[24:28]); rate != SampleRate {
		t.Errorf("sample rate = %d, want %d", rate, SampleRate)
	}
	if bits := binary.LittleEndian.Uint16(header[34:36]); bits != wavBitsPerSample {
		t.Errorf("bits per sample = %d, want %d", bits, wavBitsPerSample)
	}
}

func TestWriteSamplesInterleavesAndClamps(t *testing.T) {
	var out bytes.Buffer
	w := newWAVWriter(&out)

	left := []float32{0, 1, -1, 2}    // 2 clamps to 1
	right := []float32{0.5, -2, 0, 0} // -2 clamps to -1
	if err := w.writeSamples(left, right); err != nil {
		t.Fatalf("writeSamples failed: %v", err)
	}

	data := out.Bytes()
	if len(data) != 16 {
		t.Fatalf("wrote %d bytes, want 16", len(data))
	}

	sample := func(i int) (int16, int16) {
		l := int16(binary.LittleEndian.Uint16(data[i*4:]))
		r := int16(binary.LittleEndian.Uint16(data[i*4+2:]))
		return l, r
	}

	if l, r := sample(0); l != 0 || r != 16383 {
		t.Errorf("frame 0 = %d/%d, want 0/16383", l, r)
	}
	if l, r := sample(1); l != 32767 || r != -32767 {
		t.Errorf("frame 1 = %d/%d, want 32767/-32767", l, r)
	}
	if l, _ := sample(2); l != -32767 {
		t.Errorf("frame 2 left = %d, want -32767", l)
	}
	if l, _ := sample(3); l != 32767 {
		t.Errorf("frame 3 left (clamped) = %d, want 32767", l)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0.5, 0.5},
		{-3, -1},
		{3, 1},
		{1, 1},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := clamp(tt.in, -1, 1); got != tt.want {
			t.Errorf("clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
