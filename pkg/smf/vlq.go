package smf

import (
	"fmt"

	"github.com/zurustar/gosmf/pkg/bytebuf"
)

// readVLQ reads a MIDI variable-length quantity: 7-bit groups, most
// significant first, with the high bit of every byte except the last set
// as a continuation flag. SMF limits values to 4 encoded bytes (28 bits)
// but longer encodings that still fit a uint32 are accepted.
func readVLQ(buf *bytebuf.Buffer) (uint32, error) {
	var v uint32
	for {
		c, err := buf.ReadUint8()
		if err != nil {
			return 0, fmt.Errorf("%w: variable-length quantity", ErrTruncatedInput)
		}
		v = v<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			return v, nil
		}
	}
}

// writeVLQ writes v as the minimal variable-length quantity. Zero
// encodes as the single byte 0x00.
func writeVLQ(buf *bytebuf.Buffer, v uint32) {
	groups := []byte{byte(v & 0x7F)}
	for v >>= 7; v != 0; v >>= 7 {
		groups = append(groups, byte(v&0x7F)|0x80)
	}
	for i := len(groups) - 1; i >= 0; i-- {
		buf.WriteUint8(groups[i])
	}
}
