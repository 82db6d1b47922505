package render

import (
	"encoding/binary"
	"io"
)

// wavWriter emits a 16-bit stereo little-endian PCM WAV stream. The
// header is written up front from the known sample count, so the output
// writer does not need to support seeking.
type wavWriter struct {
	out io.Writer
	buf []byte
}

const (
	wavChannels      = 2
	wavBitsPerSample = 16
	wavBlockAlign    = wavChannels * wavBitsPerSample / 8
)

func newWAVWriter(out io.Writer) *wavWriter {
	return &wavWriter{out: out}
}

// writeHeader writes the RIFF/fmt/data chunk headers for totalSamples
// stereo frames.
func (w *wavWriter) writeHeader(totalSamples int) error {
	dataSize := uint32(totalSamples * wavBlockAlign)

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 36+dataSize)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)           // fmt chunk size
	header = binary.LittleEndian.AppendUint16(header, 1)            // PCM
	header = binary.LittleEndian.AppendUint16(header, wavChannels)  // stereo
	header = binary.LittleEndian.AppendUint32(header, SampleRate)   // sample rate
	header = binary.LittleEndian.AppendUint32(header, SampleRate*wavBlockAlign) // byte rate
	header = binary.LittleEndian.AppendUint16(header, wavBlockAlign)
	header = binary.LittleEndian.AppendUint16(header, wavBitsPerSample)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataSize)

	_, err := w.out.Write(header)
	return err
}

// writeSamples converts float32 stereo samples to interleaved int16 and
// writes them out.
func (w *wavWriter) writeSamples(left, right []float32) error {
	need := len(left) * wavBlockAlign
	if cap(w.buf) < need {
		w.buf = make([]byte, need)
	}
	buf := w.buf[:need]

	for i := range left {
		l := int16(clamp(left[i], -1, 1) * 32767)
		r := int16(clamp(right[i], -1, 1) * 32767)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(l))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(r))
	}

	_, err := w.out.Write(buf)
	return err
}

// clamp restricts a value to the range [min, max].
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
