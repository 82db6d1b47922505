package smf

import (
	"fmt"

	"github.com/zurustar/gosmf/pkg/bytebuf"
)

// File format values from the MThd chunk.
const (
	Format0 uint16 = 0 // single track
	Format1 uint16 = 1 // multi-track, synchronous
	Format2 uint16 = 2 // multi-track, independent
)

const (
	headerTag      = "MThd"
	trackTag       = "MTrk"
	headerBodySize = 6
)

// DivisionKind selects which timing interpretation a Division carries.
type DivisionKind uint8

const (
	// DivisionTicksPerQuarter expresses delta-times as ticks per quarter
	// note, scaled by the tempo meta events in the tracks.
	DivisionTicksPerQuarter DivisionKind = iota
	// DivisionSMPTE expresses delta-times as ticks per SMPTE frame at a
	// fixed frame rate, independent of tempo.
	DivisionSMPTE
)

// Division is the timing-division variant from the file header. Exactly
// one interpretation is active, selected by Kind; the high bit of the
// 16-bit wire field is the selector.
type Division struct {
	Kind DivisionKind

	// TicksPerQuarter is valid when Kind is DivisionTicksPerQuarter.
	// 15-bit unsigned on the wire.
	TicksPerQuarter uint16

	// FramesPerSecond and TicksPerFrame are valid when Kind is
	// DivisionSMPTE. The frame rate is stored negated on the wire.
	FramesPerSecond uint8
	TicksPerFrame   uint8
}

// TicksPerQuarter builds a tempo-relative division.
func TicksPerQuarter(ticks uint16) Division {
	return Division{Kind: DivisionTicksPerQuarter, TicksPerQuarter: ticks}
}

// SMPTE builds a frame-rate-relative division.
func SMPTE(framesPerSecond, ticksPerFrame uint8) Division {
	return Division{
		Kind:            DivisionSMPTE,
		FramesPerSecond: framesPerSecond,
		TicksPerFrame:   ticksPerFrame,
	}
}

// pack returns the 16-bit wire form of the division.
func (d Division) pack() (uint16, error) {
	switch d.Kind {
	case DivisionTicksPerQuarter:
		if d.TicksPerQuarter > 0x7FFF {
			return 0, fmt.Errorf("%w: %d ticks per quarter note exceeds 15 bits",
				ErrInvalidDivision, d.TicksPerQuarter)
		}
		return d.TicksPerQuarter, nil
	case DivisionSMPTE:
		if d.FramesPerSecond == 0 || d.FramesPerSecond > 128 {
			// The negated rate must fit 0x80-0xFF or the selector bit is lost.
			return 0, fmt.Errorf("%w: SMPTE frame rate %d", ErrInvalidDivision, d.FramesPerSecond)
		}
		// Frame rate goes on the wire as a negative byte, high bit set.
		frames := uint16(0x100 - uint16(d.FramesPerSecond))
		return frames<<8 | uint16(d.TicksPerFrame), nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %d", ErrInvalidDivision, d.Kind)
	}
}

// unpackDivision interprets the 16-bit division field.
func unpackDivision(raw uint16) Division {
	if raw&0x8000 == 0 {
		return TicksPerQuarter(raw & 0x7FFF)
	}
	return SMPTE(uint8(0xFF-byte(raw>>8))+1, uint8(raw))
}

// Header is the decoded MThd chunk.
type Header struct {
	Format    uint16
	NumTracks uint16
	Division  Division
}

// readHeader decodes the header chunk. The declared body length must be
// at least 6; any trailing vendor bytes beyond the fixed body are
// skipped without interpretation and are not round-tripped by
// writeHeader.
func readHeader(buf *bytebuf.Buffer, strict bool) (Header, error) {
	tag, err := buf.ReadBytes(4)
	if err != nil {
		return Header{}, fmt.Errorf("%w: header identifier", ErrTruncatedInput)
	}
	if strict && string(tag) != headerTag {
		return Header{}, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedIdentifier, tag, headerTag)
	}
	length, err := buf.ReadUint32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: header length", ErrTruncatedInput)
	}
	if length < headerBodySize {
		return Header{}, fmt.Errorf("%w: header body of %d bytes", ErrTruncatedInput, length)
	}
	var h Header
	if h.Format, err = buf.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("%w: header format", ErrTruncatedInput)
	}
	if h.NumTracks, err = buf.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("%w: header track count", ErrTruncatedInput)
	}
	raw, err := buf.ReadUint16()
	if err != nil {
		return Header{}, fmt.Errorf("%w: header division", ErrTruncatedInput)
	}
	h.Division = unpackDivision(raw)
	if err := buf.Skip(int(length) - headerBodySize); err != nil {
		return Header{}, fmt.Errorf("%w: header extension of %d bytes",
			ErrTruncatedInput, length-headerBodySize)
	}
	return h, nil
}

// writeHeader encodes the header chunk with the canonical body length.
func writeHeader(buf *bytebuf.Buffer, h Header) error {
	division, err := h.Division.pack()
	if err != nil {
		return err
	}
	buf.WriteBytes([]byte(headerTag))
	buf.WriteUint32(headerBodySize)
	buf.WriteUint16(h.Format)
	buf.WriteUint16(h.NumTracks)
	buf.WriteUint16(division)
	return nil
}
