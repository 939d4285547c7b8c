package smf

import (
	"math/bits"

	"github.com/pithecene-io/midiwire/midi"
)

// Meta events. Each type carries its payload decoded; unrecognized
// types round-trip opaquely as MetaUnknown.

// SequenceNumber identifies the track for cueing. It should be the
// first event of a track.
type SequenceNumber struct {
	Number uint16
}

func (SequenceNumber) isTrackEvent() {}

func (m SequenceNumber) metaBytes() (uint8, []byte) {
	return 0x00, []byte{uint8(m.Number >> 8), uint8(m.Number)}
}

// Text is free text describing anything.
type Text struct {
	Text string
}

func (Text) isTrackEvent() {}

func (m Text) metaBytes() (uint8, []byte) { return 0x01, []byte(m.Text) }

// Copyright is a copyright notice.
type Copyright struct {
	Text string
}

func (Copyright) isTrackEvent() {}

func (m Copyright) metaBytes() (uint8, []byte) { return 0x02, []byte(m.Text) }

// TrackName names the track.
type TrackName struct {
	Text string
}

func (TrackName) isTrackEvent() {}

func (m TrackName) metaBytes() (uint8, []byte) { return 0x03, []byte(m.Text) }

// InstrumentName names the instrument used in the track.
type InstrumentName struct {
	Text string
}

func (InstrumentName) isTrackEvent() {}

func (m InstrumentName) metaBytes() (uint8, []byte) { return 0x04, []byte(m.Text) }

// Lyric is a lyric fragment, usually one syllable per event.
type Lyric struct {
	Text string
}

func (Lyric) isTrackEvent() {}

func (m Lyric) metaBytes() (uint8, []byte) { return 0x05, []byte(m.Text) }

// Marker names a point in the sequence, such as a rehearsal letter.
type Marker struct {
	Text string
}

func (Marker) isTrackEvent() {}

func (m Marker) metaBytes() (uint8, []byte) { return 0x06, []byte(m.Text) }

// CuePoint describes something happening at this point in time.
type CuePoint struct {
	Text string
}

func (CuePoint) isTrackEvent() {}

func (m CuePoint) metaBytes() (uint8, []byte) { return 0x07, []byte(m.Text) }

// ChannelPrefix associates following meta events with a channel.
type ChannelPrefix struct {
	Channel midi.Channel
}

func (ChannelPrefix) isTrackEvent() {}

func (m ChannelPrefix) metaBytes() (uint8, []byte) {
	return 0x20, []byte{uint8(m.Channel) & 0x0F}
}

// EndOfTrack terminates a track. Encoding appends one automatically
// when the last event is anything else.
type EndOfTrack struct{}

func (EndOfTrack) isTrackEvent() {}

func (EndOfTrack) metaBytes() (uint8, []byte) { return 0x2F, []byte{} }

// Tempo sets the tempo as microseconds per quarter note.
type Tempo struct {
	MicrosPerQuarter uint32
}

func (Tempo) isTrackEvent() {}

func (m Tempo) metaBytes() (uint8, []byte) {
	v := m.MicrosPerQuarter
	if v > 0xFFFFFF {
		v = 0xFFFFFF
	}
	return 0x51, []byte{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// BPM returns the tempo in beats per minute.
func (m Tempo) BPM() float64 {
	if m.MicrosPerQuarter == 0 {
		return 0
	}
	return 60e6 / float64(m.MicrosPerQuarter)
}

// SMPTEOffset gives the SMPTE time at which the track starts. The
// frame rate travels in the top bits of the hour byte.
type SMPTEOffset struct {
	Code midi.TimeCode
	// FractionalFrames is in hundredths of a frame.
	FractionalFrames uint8
}

func (SMPTEOffset) isTrackEvent() {}

func (m SMPTEOffset) metaBytes() (uint8, []byte) {
	c := m.Code
	return 0x54, []byte{
		uint8(c.Rate&0x03)<<5 | minByte(c.Hours, 23),
		minByte(c.Minutes, 59),
		minByte(c.Seconds, 59),
		minByte(c.Frames, 29),
		m.FractionalFrames,
	}
}

// TimeSignature is a notated time signature. Denominator is the
// actual denominator; the file stores it as a power of two.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint16
	// ClocksPerMetronomeTick is MIDI clocks per metronome click.
	ClocksPerMetronomeTick uint8
	// ThirtySecondsPerQuarter is 32nd notes per quarter note,
	// usually eight.
	ThirtySecondsPerQuarter uint8
}

func (TimeSignature) isTrackEvent() {}

func (m TimeSignature) metaBytes() (uint8, []byte) {
	den := m.Denominator
	if den == 0 {
		den = 4
	}
	return 0x58, []byte{
		m.Numerator,
		uint8(bits.Len16(den) - 1),
		m.ClocksPerMetronomeTick,
		m.ThirtySecondsPerQuarter,
	}
}

// KeySignature is a notated key signature.
type KeySignature struct {
	// SharpsFlats is positive for sharps, negative for flats.
	SharpsFlats int8
	Minor       bool
}

func (KeySignature) isTrackEvent() {}

func (m KeySignature) metaBytes() (uint8, []byte) {
	scale := uint8(0)
	if m.Minor {
		scale = 1
	}
	return 0x59, []byte{uint8(m.SharpsFlats), scale}
}

// SequencerSpecific carries sequencer-defined data opaquely.
type SequencerSpecific struct {
	Data []byte
}

func (SequencerSpecific) isTrackEvent() {}

func (m SequencerSpecific) metaBytes() (uint8, []byte) { return 0x7F, m.Data }

// MetaUnknown is a meta event this package does not model. It
// re-encodes unchanged.
type MetaUnknown struct {
	Type uint8
	Data []byte
}

func (MetaUnknown) isTrackEvent() {}

func (m MetaUnknown) metaBytes() (uint8, []byte) { return m.Type, m.Data }

// decodeMeta decodes a meta event. pos points at the type byte, just
// past the 0xFF; the returned count covers the type byte, length and
// payload.
func decodeMeta(b []byte, pos, end int) (metaEvent, int, error) {
	if pos >= end {
		return nil, 0, &midi.ParseError{Kind: midi.KindTruncated, Offset: pos, Msg: "meta event without a type byte"}
	}
	typ := b[pos]
	data, next, err := readLengthPrefixed(b, pos+1, end)
	if err != nil {
		return nil, 0, err
	}
	consumed := next - pos

	short := func(n int) error {
		if len(data) < n {
			return &midi.ParseError{Kind: midi.KindMalformed, Offset: pos, Msg: "meta event payload too short"}
		}
		return nil
	}

	switch typ {
	case 0x00:
		if err := short(2); err != nil {
			return nil, 0, err
		}
		return SequenceNumber{Number: uint16(data[0])<<8 | uint16(data[1])}, consumed, nil
	case 0x01:
		return Text{Text: string(data)}, consumed, nil
	case 0x02:
		return Copyright{Text: string(data)}, consumed, nil
	case 0x03:
		return TrackName{Text: string(data)}, consumed, nil
	case 0x04:
		return InstrumentName{Text: string(data)}, consumed, nil
	case 0x05:
		return Lyric{Text: string(data)}, consumed, nil
	case 0x06:
		return Marker{Text: string(data)}, consumed, nil
	case 0x07:
		return CuePoint{Text: string(data)}, consumed, nil
	case 0x20:
		if err := short(1); err != nil {
			return nil, 0, err
		}
		return ChannelPrefix{Channel: midi.Channel(data[0] & 0x0F)}, consumed, nil
	case 0x2F:
		return EndOfTrack{}, consumed, nil
	case 0x51:
		if err := short(3); err != nil {
			return nil, 0, err
		}
		return Tempo{MicrosPerQuarter: uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])}, consumed, nil
	case 0x54:
		if err := short(5); err != nil {
			return nil, 0, err
		}
		return SMPTEOffset{
			Code: midi.TimeCode{
				Hours:   data[0] & 0x1F,
				Rate:    midi.TimeCodeType(data[0] >> 5 & 0x03),
				Minutes: data[1],
				Seconds: data[2],
				Frames:  data[3],
			},
			FractionalFrames: data[4],
		}, consumed, nil
	case 0x58:
		if err := short(4); err != nil {
			return nil, 0, err
		}
		return TimeSignature{
			Numerator:               data[0],
			Denominator:             1 << (data[1] & 0x0F),
			ClocksPerMetronomeTick:  data[2],
			ThirtySecondsPerQuarter: data[3],
		}, consumed, nil
	case 0x59:
		if err := short(2); err != nil {
			return nil, 0, err
		}
		return KeySignature{SharpsFlats: int8(data[0]), Minor: data[1] != 0}, consumed, nil
	case 0x7F:
		return SequencerSpecific{Data: cloneBytes(data)}, consumed, nil
	default:
		return MetaUnknown{Type: typ, Data: cloneBytes(data)}, consumed, nil
	}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func minByte(x, limit uint8) uint8 {
	if x > limit {
		return limit
	}
	return x
}
