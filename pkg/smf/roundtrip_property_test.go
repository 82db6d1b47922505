package smf

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genChannelEvent produces an arbitrary channel voice message.
func genChannelEvent() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0x8, 0xE),
		gen.IntRange(0, 15),
		gen.IntRange(0, 127),
		gen.IntRange(0, 127),
	).Map(func(values []interface{}) Event {
		typ := ChannelType(values[0].(int))
		ch := uint8(values[1].(int))
		a := uint16(values[2].(int))
		b := uint16(values[3].(int))
		switch typ {
		case ProgramChange, ChannelPressure:
			return Channel{Type: typ, Channel: ch, Data: []uint16{a}}
		case PitchBend:
			return Channel{Type: typ, Channel: ch, Data: []uint16{a | b<<7}}
		default:
			return Channel{Type: typ, Channel: ch, Data: []uint16{a, b}}
		}
	})
}

// genMetaEvent produces an arbitrary meta event.
func genMetaEvent() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 0x7F),
		gen.SliceOf(gen.UInt8()),
	).Map(func(values []interface{}) Event {
		payload := values[1].([]byte)
		if payload == nil {
			payload = []byte{}
		}
		return Meta{Type: uint8(values[0].(int)), Payload: payload}
	})
}

// genMessage produces a message with an arbitrary delta-time.
func genMessage() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(0, 0x0FFFFFFF),
		gen.Bool(),
		genChannelEvent(),
		genMetaEvent(),
	).Map(func(values []interface{}) Message {
		m := Message{Delta: uint32(values[0].(int64))}
		if values[1].(bool) {
			m.Event = values[2].(Event)
		} else {
			m.Event = values[3].(Event)
		}
		return m
	})
}

// TestFileStructuralRoundTripProperty checks that for arbitrary files,
// two decode/encode cycles yield structurally equal results. Byte
// equality is not required in general (running-status input expands);
// structural equality is.
func TestFileStructuralRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decode/encode/decode is structurally stable", prop.ForAll(
		func(messages []Message, ticks int) bool {
			file := &File{
				Header: Header{Format: Format0, Division: TicksPerQuarter(uint16(ticks))},
				Tracks: []Track{{Messages: messages}},
			}
			encoded, err := file.Encode()
			if err != nil {
				return false
			}
			first, err := Decode(encoded)
			if err != nil {
				return false
			}
			reencoded, err := first.Encode()
			if err != nil {
				return false
			}
			second, err := Decode(reencoded)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		gen.SliceOf(genMessage()),
		gen.IntRange(1, 0x7FFF),
	))

	properties.Property("track length field matches event stream", prop.ForAll(
		func(messages []Message) bool {
			file := &File{
				Header: Header{Format: Format0, Division: TicksPerQuarter(96)},
				Tracks: []Track{{Messages: messages}},
			}
			encoded, err := file.Encode()
			if err != nil {
				return false
			}
			// Track chunk starts right after the 14-byte header.
			declared := uint32(encoded[18])<<24 | uint32(encoded[19])<<16 |
				uint32(encoded[20])<<8 | uint32(encoded[21])
			return int(declared) == len(encoded)-22
		},
		gen.SliceOf(genMessage()),
	))

	properties.TestingRun(t)
}
