package smf

import (
	"fmt"

	"github.com/zurustar/gosmf/pkg/bytebuf"
)

// File is a decoded Standard MIDI File: one header plus its tracks in
// file order.
type File struct {
	Header Header
	Tracks []Track
}

// DecodeOptions control decode policy.
type DecodeOptions struct {
	// Strict fails on "MThd"/"MTrk" identifier mismatches with
	// ErrUnexpectedIdentifier. The default lenient mode trusts the
	// declared chunk lengths instead.
	Strict bool
}

// Decode parses data as a Standard MIDI File with default (lenient)
// options.
func Decode(data []byte) (*File, error) {
	return DecodeWith(data, DecodeOptions{})
}

// DecodeWith parses data as a Standard MIDI File. The header's declared
// track count governs how many track chunks are consumed; chunk types
// other than MTrk encountered before that point are skipped by their
// declared length, and nothing after the final track is read at all.
func DecodeWith(data []byte, opts DecodeOptions) (*File, error) {
	buf := bytebuf.New(data)
	header, err := readHeader(buf, opts.Strict)
	if err != nil {
		return nil, err
	}
	f := &File{Header: header}
	for len(f.Tracks) < int(header.NumTracks) {
		tag, err := buf.PeekBytes(4)
		if err != nil {
			return nil, fmt.Errorf("%w: next chunk identifier", ErrTruncatedInput)
		}
		if string(tag) != trackTag {
			if err := skipChunk(buf); err != nil {
				return nil, err
			}
			continue
		}
		t, err := readTrack(buf, opts.Strict)
		if err != nil {
			return nil, err
		}
		f.Tracks = append(f.Tracks, t)
	}
	return f, nil
}

// skipChunk consumes an unrecognized chunk: its tag, its 32-bit length,
// and that many body bytes, without interpretation.
func skipChunk(buf *bytebuf.Buffer) error {
	tag, err := buf.ReadBytes(4)
	if err != nil {
		return fmt.Errorf("%w: chunk identifier", ErrTruncatedInput)
	}
	length, err := buf.ReadUint32()
	if err != nil {
		return fmt.Errorf("%w: %q chunk length", ErrTruncatedInput, tag)
	}
	if err := buf.Skip(int(length)); err != nil {
		return fmt.Errorf("%w: %q chunk body of %d bytes", ErrTruncatedInput, tag, length)
	}
	return nil
}

// Encode serializes the file into the standard byte layout. The
// header's track count is resynced to the actual track list first.
// Channel messages are always written with explicit status bytes, so a
// file decoded from running-status-compressed input re-encodes larger
// but structurally identical.
func (f *File) Encode() ([]byte, error) {
	buf := bytebuf.New(nil)
	f.Header.NumTracks = uint16(len(f.Tracks))
	if err := writeHeader(buf, f.Header); err != nil {
		return nil, err
	}
	for _, t := range f.Tracks {
		if err := writeTrack(buf, t); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// EncodeHeader serializes only the header chunk, with the track count
// resynced. Together with EncodeTrack this supports streaming
// generation without materializing the whole file.
func (f *File) EncodeHeader(buf *bytebuf.Buffer) error {
	f.Header.NumTracks = uint16(len(f.Tracks))
	return writeHeader(buf, f.Header)
}

// EncodeTrack serializes the track at index i. The byte effect equals
// the corresponding portion of Encode.
func (f *File) EncodeTrack(buf *bytebuf.Buffer, i int) error {
	if i < 0 || i >= len(f.Tracks) {
		return fmt.Errorf("track index %d out of range (have %d tracks)", i, len(f.Tracks))
	}
	return writeTrack(buf, f.Tracks[i])
}
