package smf

import (
	"fmt"

	"github.com/zurustar/gosmf/pkg/bytebuf"
)

// Status bytes that are never running-status-eligible.
const (
	statusMeta      = 0xFF
	statusSysEx     = 0xF0
	statusSysExCont = 0xF7
)

// ChannelType is the high status nibble of a channel voice message.
type ChannelType uint8

const (
	NoteOff         ChannelType = 0x8
	NoteOn          ChannelType = 0x9
	PolyPressure    ChannelType = 0xA
	Controller      ChannelType = 0xB
	ProgramChange   ChannelType = 0xC
	ChannelPressure ChannelType = 0xD
	PitchBend       ChannelType = 0xE
)

// dataBytes returns the number of data bytes the type carries on the
// wire, a pure function of the type nibble.
func (t ChannelType) dataBytes() int {
	switch t {
	case ProgramChange, ChannelPressure:
		return 1
	default:
		return 2
	}
}

func (t ChannelType) String() string {
	switch t {
	case NoteOff:
		return "NoteOff"
	case NoteOn:
		return "NoteOn"
	case PolyPressure:
		return "PolyPressure"
	case Controller:
		return "Controller"
	case ProgramChange:
		return "ProgramChange"
	case ChannelPressure:
		return "ChannelPressure"
	case PitchBend:
		return "PitchBend"
	default:
		return fmt.Sprintf("ChannelType(0x%X)", uint8(t))
	}
}

// Event is one of the four SMF event categories: Meta, SysEx,
// SysExContinuation or Channel.
type Event interface {
	event()
}

// Meta is an 0xFF event: a subtype byte plus a length-prefixed payload.
type Meta struct {
	Type    uint8
	Payload []byte
}

// SysEx is an 0xF0 system-exclusive event with a raw payload.
type SysEx struct {
	Payload []byte
}

// SysExContinuation is an 0xF7 event, the continuation/escape form of
// SysEx. Same wire shape, distinct status byte.
type SysExContinuation struct {
	Payload []byte
}

// Channel is a channel voice message. Data holds the decoded data
// bytes: two entries for NoteOff/NoteOn/PolyPressure/Controller, one for
// ProgramChange/ChannelPressure, and for PitchBend a single entry with
// the combined 14-bit bend value.
type Channel struct {
	Type    ChannelType
	Channel uint8
	Data    []uint16
}

func (Meta) event()              {}
func (SysEx) event()             {}
func (SysExContinuation) event() {}
func (Channel) event()           {}

// Message is one track event: the delta-time in ticks since the
// previous event in the same track, and the event itself.
type Message struct {
	Delta uint32
	Event Event
}

// runningStatus carries the last full channel status byte seen while
// decoding one track. It is reset at the start of every track decode
// and never persists across tracks.
type runningStatus struct {
	status uint8
	valid  bool
}

// readMessage decodes one event. A data byte in status position reuses
// rs (running status): the byte is pushed back and re-read as the first
// data byte of a message that omitted its status.
func readMessage(buf *bytebuf.Buffer, rs *runningStatus) (Message, error) {
	delta, err := readVLQ(buf)
	if err != nil {
		return Message{}, err
	}
	status, err := buf.ReadUint8()
	if err != nil {
		return Message{}, fmt.Errorf("%w: status byte", ErrTruncatedInput)
	}

	switch status {
	case statusMeta:
		subtype, err := buf.ReadUint8()
		if err != nil {
			return Message{}, fmt.Errorf("%w: meta subtype", ErrTruncatedInput)
		}
		payload, err := readPayload(buf)
		if err != nil {
			return Message{}, err
		}
		return Message{Delta: delta, Event: Meta{Type: subtype, Payload: payload}}, nil
	case statusSysEx:
		payload, err := readPayload(buf)
		if err != nil {
			return Message{}, err
		}
		return Message{Delta: delta, Event: SysEx{Payload: payload}}, nil
	case statusSysExCont:
		payload, err := readPayload(buf)
		if err != nil {
			return Message{}, err
		}
		return Message{Delta: delta, Event: SysExContinuation{Payload: payload}}, nil
	}

	if status&0x80 == 0 {
		// Running status: this byte is the first data byte of a message
		// whose status was omitted. Rewind so it is re-read as data.
		if !rs.valid {
			return Message{}, fmt.Errorf("%w: data byte 0x%02X with no running status",
				ErrUnknownMessageType, status)
		}
		if err := buf.Skip(-1); err != nil {
			return Message{}, err
		}
		status = rs.status
	} else {
		rs.status = status
		rs.valid = true
	}

	typ := ChannelType(status >> 4)
	if typ < NoteOff || typ > PitchBend {
		// System common/realtime bytes (0xF1-0xF6, 0xF8-0xFE) do not
		// belong in SMF track data and have no self-describing length,
		// so resynchronizing past them is not possible.
		return Message{}, fmt.Errorf("%w: status byte 0x%02X", ErrUnknownMessageType, status)
	}

	raw, err := buf.ReadBytes(typ.dataBytes())
	if err != nil {
		return Message{}, fmt.Errorf("%w: %s data bytes", ErrTruncatedInput, typ)
	}
	ch := Channel{Type: typ, Channel: status & 0x0F}
	if typ == PitchBend {
		ch.Data = []uint16{uint16(raw[0]) | uint16(raw[1])<<7}
	} else {
		ch.Data = make([]uint16, len(raw))
		for i, v := range raw {
			ch.Data[i] = uint16(v)
		}
	}
	return Message{Delta: delta, Event: ch}, nil
}

// readPayload reads a VLQ length and exactly that many payload bytes.
func readPayload(buf *bytebuf.Buffer) ([]byte, error) {
	length, err := readVLQ(buf)
	if err != nil {
		return nil, err
	}
	payload, err := buf.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrTruncatedInput, length)
	}
	return payload, nil
}

// writeMessage encodes one event. Channel messages always get an
// explicit status byte: decoding accepts running-status compression but
// encoding never produces it, so a compressed input re-encodes in
// expanded form.
func writeMessage(buf *bytebuf.Buffer, m Message) error {
	writeVLQ(buf, m.Delta)
	switch ev := m.Event.(type) {
	case Meta:
		buf.WriteUint8(statusMeta)
		buf.WriteUint8(ev.Type)
		writePayload(buf, ev.Payload)
	case SysEx:
		buf.WriteUint8(statusSysEx)
		writePayload(buf, ev.Payload)
	case SysExContinuation:
		buf.WriteUint8(statusSysExCont)
		writePayload(buf, ev.Payload)
	case Channel:
		if ev.Type < NoteOff || ev.Type > PitchBend {
			return fmt.Errorf("%w: channel type 0x%X", ErrUnknownMessageType, uint8(ev.Type))
		}
		buf.WriteUint8(uint8(ev.Type)<<4 | ev.Channel&0x0F)
		if ev.Type == PitchBend {
			var bend uint16
			if len(ev.Data) > 0 {
				bend = ev.Data[0]
			}
			buf.WriteUint8(byte(bend & 0x7F))
			buf.WriteUint8(byte(bend >> 7 & 0x7F))
			return nil
		}
		for i := 0; i < ev.Type.dataBytes(); i++ {
			var v uint16
			if i < len(ev.Data) {
				v = ev.Data[i]
			}
			buf.WriteUint8(byte(v & 0x7F))
		}
	default:
		return fmt.Errorf("%w: event %T", ErrUnknownMessageType, m.Event)
	}
	return nil
}

func writePayload(buf *bytebuf.Buffer, payload []byte) {
	writeVLQ(buf, uint32(len(payload)))
	if len(payload) > 0 {
		buf.WriteBytes(payload)
	}
}
