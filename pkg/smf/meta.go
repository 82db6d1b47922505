package smf

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Standard meta event subtypes.
const (
	MetaSequenceNumber    uint8 = 0x00
	MetaText              uint8 = 0x01
	MetaCopyright         uint8 = 0x02
	MetaTrackName         uint8 = 0x03
	MetaInstrumentName    uint8 = 0x04
	MetaLyric             uint8 = 0x05
	MetaMarker            uint8 = 0x06
	MetaCuePoint          uint8 = 0x07
	MetaChannelPrefix     uint8 = 0x20
	MetaPortPrefix        uint8 = 0x21
	MetaEndOfTrack        uint8 = 0x2F
	MetaSetTempo          uint8 = 0x51
	MetaSMPTEOffset       uint8 = 0x54
	MetaTimeSignature     uint8 = 0x58
	MetaKeySignature      uint8 = 0x59
	MetaSequencerSpecific uint8 = 0x7F
)

// EndOfTrack returns the mandatory final event of a track. Its payload
// is empty: it encodes as status, subtype and a single 0x00 length byte.
func EndOfTrack() Meta {
	return Meta{Type: MetaEndOfTrack}
}

// TrackName returns a track name meta event.
func TrackName(name string) Meta {
	return Meta{Type: MetaTrackName, Payload: []byte(name)}
}

// SetTempo returns a tempo meta event with the given microseconds per
// quarter note, stored as a 24-bit big-endian payload.
func SetTempo(microsPerQuarter uint32) Meta {
	return Meta{Type: MetaSetTempo, Payload: []byte{
		byte(microsPerQuarter >> 16),
		byte(microsPerQuarter >> 8),
		byte(microsPerQuarter),
	}}
}

// IsText reports whether the meta subtype carries textual payload.
func (m Meta) IsText() bool {
	return m.Type >= MetaText && m.Type <= MetaCuePoint
}

// Text returns the payload as a string. Valid UTF-8 (which covers plain
// ASCII, the usual case) is returned as-is; anything else is decoded as
// Shift-JIS, the dominant legacy encoding in SMF text events. Bytes
// that survive neither interpretation come back unchanged.
func (m Meta) Text() string {
	if utf8.Valid(m.Payload) {
		return string(m.Payload)
	}
	reader := transform.NewReader(bytes.NewReader(m.Payload), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(m.Payload)
	}
	return string(decoded)
}

// MicrosPerQuarter returns the tempo value of a SetTempo event, or 0 if
// the event is not a well-formed tempo event.
func (m Meta) MicrosPerQuarter() uint32 {
	if m.Type != MetaSetTempo || len(m.Payload) != 3 {
		return 0
	}
	return uint32(m.Payload[0])<<16 | uint32(m.Payload[1])<<8 | uint32(m.Payload[2])
}

// Name returns the first track name found in the track, or "".
func (t Track) Name() string {
	for _, m := range t.Messages {
		if meta, ok := m.Event.(Meta); ok && meta.Type == MetaTrackName {
			return meta.Text()
		}
	}
	return ""
}
