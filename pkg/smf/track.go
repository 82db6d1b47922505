package smf

import (
	"fmt"

	"github.com/zurustar/gosmf/pkg/bytebuf"
)

// Track is one MTrk chunk: an ordered event sequence. Order is playback
// order and is preserved exactly by the codec.
type Track struct {
	Messages []Message
}

// readTrack decodes one track chunk. Events are decoded until exactly
// the declared chunk length is consumed; a message that would read past
// the boundary fails the whole track with ErrTrackLengthMismatch rather
// than desyncing into the next chunk.
func readTrack(buf *bytebuf.Buffer, strict bool) (Track, error) {
	tag, err := buf.ReadBytes(4)
	if err != nil {
		return Track{}, fmt.Errorf("%w: track identifier", ErrTruncatedInput)
	}
	if strict && string(tag) != trackTag {
		return Track{}, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedIdentifier, tag, trackTag)
	}
	length, err := buf.ReadUint32()
	if err != nil {
		return Track{}, fmt.Errorf("%w: track length", ErrTruncatedInput)
	}
	if buf.Remaining() < int(length) {
		return Track{}, fmt.Errorf("%w: track body of %d bytes (have %d)",
			ErrTruncatedInput, length, buf.Remaining())
	}

	start := buf.Cursor()
	end := start + int(length)
	var t Track
	var rs runningStatus
	for buf.Cursor() < end {
		m, err := readMessage(buf, &rs)
		if err != nil {
			return Track{}, err
		}
		if buf.Cursor() > end {
			return Track{}, fmt.Errorf("%w: event stream runs %d bytes past the declared %d",
				ErrTrackLengthMismatch, buf.Cursor()-end, length)
		}
		t.Messages = append(t.Messages, m)
	}
	return t, nil
}

// writeTrack encodes one track chunk. The 32-bit length is not known
// until every variable-length message is serialized, so a zero
// placeholder is written first and backpatched afterwards.
func writeTrack(buf *bytebuf.Buffer, t Track) error {
	buf.WriteBytes([]byte(trackTag))
	lengthPos := buf.Cursor()
	buf.WriteUint32(0)
	start := buf.Cursor()
	for _, m := range t.Messages {
		if err := writeMessage(buf, m); err != nil {
			return err
		}
	}
	end := buf.Cursor()
	if err := buf.SetCursor(lengthPos); err != nil {
		return err
	}
	buf.WriteUint32(uint32(end - start))
	return buf.SetCursor(end)
}
