package smf

import (
	"encoding/binary"
	"errors"

	"github.com/pithecene-io/midiwire/midi"
)

// Track is one chunk of a Standard MIDI File. An MTrk chunk decodes
// into Events; any other chunk is preserved verbatim in Raw, header
// included, and re-encodes byte for byte.
type Track struct {
	Events []TrackEvent
	Raw    []byte
}

// Alien reports whether the track is a preserved non-MTrk chunk.
func (t *Track) Alien() bool {
	return t.Raw != nil
}

// TrackEvent is one event in an MTrk chunk, Delta ticks after the
// previous event. The tick length comes from the file's Division.
type TrackEvent struct {
	Delta uint32
	Event Event
}

// Event is either a MidiEvent or one of the meta event types.
type Event interface {
	isTrackEvent()
}

// MidiEvent wraps a wire message occurring in a track.
type MidiEvent struct {
	Msg midi.Message
}

func (MidiEvent) isTrackEvent() {}

// metaEvent is implemented by all meta event types in this package.
type metaEvent interface {
	Event
	metaBytes() (uint8, []byte)
}

func decodeTrack(b []byte, pos int) (Track, int, error) {
	if pos+8 > len(b) {
		return Track{}, 0, &midi.ParseError{Kind: midi.KindTruncated, Offset: pos, Msg: "expected a track chunk header"}
	}
	length := int(binary.BigEndian.Uint32(b[pos+4 : pos+8]))
	if pos+8+length > len(b) {
		return Track{}, 0, &midi.ParseError{Kind: midi.KindTruncated, Offset: pos + 4, Msg: "chunk longer than remaining input"}
	}
	chunk := b[pos : pos+8+length]
	if string(chunk[0:4]) != "MTrk" {
		raw := make([]byte, len(chunk))
		copy(raw, chunk)
		return Track{Raw: raw}, 8 + length, nil
	}

	var track Track
	ctx := midi.NewReceiverContext()
	i := pos + 8
	end := pos + 8 + length
	for i < end {
		delta, n, err := ReadVLQ(b, i)
		if err != nil {
			return Track{}, 0, err
		}
		i += n
		if i >= end {
			return Track{}, 0, &midi.ParseError{Kind: midi.KindTruncated, Offset: i, Msg: "delta time with no event"}
		}
		var event Event
		switch b[i] {
		case 0xFF:
			meta, n, err := decodeMeta(b, i+1, end)
			if err != nil {
				return Track{}, 0, err
			}
			event = meta
			i += 1 + n
		case 0xF0:
			payload, next, err := readLengthPrefixed(b, i+1, end)
			if err != nil {
				return Track{}, 0, err
			}
			if len(payload) == 0 || payload[len(payload)-1] != 0xF7 {
				return Track{}, 0, &midi.ParseError{Kind: midi.KindMalformed, Offset: i, Msg: "system exclusive event without a terminator"}
			}
			// Sysex cancels running status, in files as on the wire.
			ctx.ClearRunningStatus()
			se, err := midi.DecodeSysEx(payload[:len(payload)-1], ctx)
			if err != nil {
				return Track{}, 0, shiftOffset(err, next-len(payload))
			}
			event = MidiEvent{Msg: se}
			i = next
		case 0xF7:
			payload, next, err := readLengthPrefixed(b, i+1, end)
			if err != nil {
				return Track{}, 0, err
			}
			msg, consumed, err := midi.DecodeWithContext(payload, ctx)
			if err != nil {
				return Track{}, 0, shiftOffset(err, next-len(payload))
			}
			if consumed != len(payload) {
				return Track{}, 0, &midi.ParseError{Kind: midi.KindMalformed, Offset: i, Msg: "escaped event length mismatch"}
			}
			event = MidiEvent{Msg: msg}
			i = next
		default:
			msg, consumed, err := midi.DecodeWithContext(b[i:end], ctx)
			if err != nil {
				return Track{}, 0, shiftOffset(err, i)
			}
			event = MidiEvent{Msg: msg}
			i += consumed
		}
		track.Events = append(track.Events, TrackEvent{Delta: delta, Event: event})
	}
	return track, 8 + length, nil
}

// readLengthPrefixed reads a VLQ length at b[pos] and returns the
// payload it covers and the offset just past it, bounded by end.
func readLengthPrefixed(b []byte, pos, end int) ([]byte, int, error) {
	length32, n, err := ReadVLQ(b, pos)
	if err != nil {
		return nil, 0, err
	}
	length := int(length32)
	if pos+n+length > end {
		return nil, 0, &midi.ParseError{Kind: midi.KindMalformed, Offset: pos, Msg: "event exceeds its track chunk"}
	}
	return b[pos+n : pos+n+length], pos + n + length, nil
}

func shiftOffset(err error, base int) error {
	var perr *midi.ParseError
	if errors.As(err, &perr) {
		perr.Offset += base
	}
	return err
}

// appendChunk appends the track as an MTrk chunk, applying running
// status across consecutive channel events.
func (t *Track) appendChunk(dst []byte) []byte {
	if t.Raw != nil {
		return append(dst, t.Raw...)
	}
	dst = append(dst, "MTrk"...)
	lenAt := len(dst)
	dst = append(dst, 0, 0, 0, 0)

	var enc midi.Encoder
	terminated := false
	for _, ev := range t.Events {
		dst = appendEvent(dst, ev, &enc)
		_, terminated = ev.Event.(EndOfTrack)
	}
	if !terminated {
		dst = append(dst, 0x00)
		dst = appendMeta(dst, EndOfTrack{})
	}
	binary.BigEndian.PutUint32(dst[lenAt:], uint32(len(dst)-lenAt-4))
	return dst
}

func appendEvent(dst []byte, ev TrackEvent, enc *midi.Encoder) []byte {
	dst = AppendVLQ(dst, ev.Delta)
	switch e := ev.Event.(type) {
	case MidiEvent:
		switch e.Msg.(type) {
		case midi.SystemExclusive:
			enc.Reset()
			raw := e.Msg.Append(nil)
			dst = append(dst, 0xF0)
			dst = AppendVLQ(dst, uint32(len(raw)-1))
			return append(dst, raw[1:]...)
		case midi.SystemCommon, midi.SystemRealTime:
			// Escaped form: a length-prefixed raw message.
			enc.Reset()
			raw := e.Msg.Append(nil)
			dst = append(dst, 0xF7)
			dst = AppendVLQ(dst, uint32(len(raw)))
			return append(dst, raw...)
		default:
			return enc.Append(dst, e.Msg)
		}
	case metaEvent:
		enc.Reset()
		return appendMeta(dst, e)
	default:
		return dst
	}
}

func appendMeta(dst []byte, m metaEvent) []byte {
	typ, payload := m.metaBytes()
	dst = append(dst, 0xFF, typ)
	dst = AppendVLQ(dst, uint32(len(payload)))
	return append(dst, payload...)
}
