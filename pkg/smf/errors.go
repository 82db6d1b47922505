// Package smf implements a codec for the Standard MIDI File binary
// format: it decodes a byte stream into a header plus ordered tracks of
// events, and encodes that structure back into the standard byte layout,
// including the running-status compression used by real-world files.
package smf

import "errors"

// Codec errors. Decode and encode fail atomically: when one of these is
// returned no partial File, Track or Message is exposed to the caller.
var (
	// ErrTruncatedInput is returned when a read needs more bytes than
	// remain in the source (header, chunk length, event payload).
	ErrTruncatedInput = errors.New("truncated MIDI data")

	// ErrUnknownMessageType is returned when a status byte is one of the
	// system common/realtime bytes (0xF1-0xF6, 0xF8-0xFE) that never
	// appear in well-formed SMF track data, or when running status is
	// needed but no prior status byte exists in the track.
	ErrUnknownMessageType = errors.New("unknown MIDI message type")

	// ErrTrackLengthMismatch is returned when the bytes consumed decoding
	// a track's events do not exactly match its declared chunk length.
	ErrTrackLengthMismatch = errors.New("track length mismatch")

	// ErrInvalidDivision is returned when a Header carries a Division the
	// wire format cannot represent (ticks above 15 bits, SMPTE zero frame
	// rate, or an unknown variant).
	ErrInvalidDivision = errors.New("invalid timing division")

	// ErrUnexpectedIdentifier is returned in strict mode when a chunk tag
	// does not match the expected "MThd"/"MTrk" value. Lenient decoding
	// proceeds using only the declared length.
	ErrUnexpectedIdentifier = errors.New("unexpected chunk identifier")
)
