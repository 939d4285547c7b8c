package smf

import (
	"encoding/binary"

	"github.com/pithecene-io/midiwire/midi"
)

// headerLen is the MThd chunk payload length, fixed at six bytes.
const headerLen = 6

// Format is the Standard MIDI File format word.
type Format uint16

const (
	// SingleTrack files hold one track.
	SingleTrack Format = 0
	// MultiTrack files hold tracks played simultaneously.
	MultiTrack Format = 1
	// MultiSong files hold independent single-track patterns.
	MultiSong Format = 2
)

func (f Format) String() string {
	switch f {
	case SingleTrack:
		return "single track"
	case MultiTrack:
		return "multi track"
	case MultiSong:
		return "multi song"
	default:
		return "unknown"
	}
}

// Division gives delta times their meaning: ticks per quarter note, or
// SMPTE frame subdivisions.
type Division interface {
	divisionBytes() [2]byte
}

// MetricalDivision is a tick count per quarter note. Values above
// 0x7FFF saturate; the top bit marks an SMPTE division on the wire.
type MetricalDivision uint16

func (d MetricalDivision) divisionBytes() [2]byte {
	v := uint16(d)
	if v > 0x7FFF {
		v = 0x7FFF
	}
	return [2]byte{uint8(v >> 8), uint8(v)}
}

// SMPTEDivision divides time into frames at a fixed rate, with a tick
// count per frame.
type SMPTEDivision struct {
	Rate          midi.TimeCodeType
	TicksPerFrame uint8
}

func (d SMPTEDivision) divisionBytes() [2]byte {
	return [2]byte{0x80 | uint8(d.Rate&0x03), d.TicksPerFrame}
}

// Header is the MThd chunk.
type Header struct {
	Format Format
	// NumTracks mirrors len(File.Tracks); Encode rewrites it.
	NumTracks uint16
	Division  Division
}

// File is a parsed Standard MIDI File.
type File struct {
	Header Header
	Tracks []Track
}

// Decode parses a Standard MIDI File. Bytes after the last declared
// track are ignored. Chunks other than MTrk are preserved opaquely as
// alien tracks.
func Decode(b []byte) (*File, error) {
	f := &File{}
	if len(b) < 8+headerLen {
		return nil, &midi.ParseError{Kind: midi.KindTruncated, Offset: len(b), Msg: "file shorter than a header chunk"}
	}
	if string(b[0:4]) != "MThd" {
		return nil, &midi.ParseError{Kind: midi.KindInvalidHeader, Offset: 0, Msg: "missing MThd chunk"}
	}
	if binary.BigEndian.Uint32(b[4:8]) != headerLen {
		return nil, &midi.ParseError{Kind: midi.KindInvalidHeader, Offset: 4, Msg: "header chunk length is not six"}
	}
	format := Format(binary.BigEndian.Uint16(b[8:10]))
	if format > MultiSong {
		return nil, &midi.ParseError{Kind: midi.KindInvalidHeader, Offset: 8, Msg: "unknown file format"}
	}
	f.Header.Format = format
	f.Header.NumTracks = binary.BigEndian.Uint16(b[10:12])
	if b[12]&0x80 == 0 {
		f.Header.Division = MetricalDivision(binary.BigEndian.Uint16(b[12:14]))
	} else {
		rate := b[12] & 0x7F
		if rate > 3 {
			return nil, &midi.ParseError{Kind: midi.KindInvalidHeader, Offset: 12, Msg: "unknown SMPTE frame rate"}
		}
		f.Header.Division = SMPTEDivision{Rate: midi.TimeCodeType(rate), TicksPerFrame: b[13]}
	}

	pos := 8 + headerLen
	for i := uint16(0); i < f.Header.NumTracks; i++ {
		track, n, err := decodeTrack(b, pos)
		if err != nil {
			return nil, err
		}
		f.Tracks = append(f.Tracks, track)
		pos += n
	}
	return f, nil
}

// Encode serializes the file. The header's track count is taken from
// the tracks actually present. Encoding cannot fail; out-of-range
// values saturate.
func (f *File) Encode() []byte {
	division := f.Header.Division
	if division == nil {
		division = MetricalDivision(96)
	}
	out := make([]byte, 0, 64)
	out = append(out, "MThd"...)
	out = binary.BigEndian.AppendUint32(out, headerLen)
	out = binary.BigEndian.AppendUint16(out, uint16(f.Header.Format))
	out = binary.BigEndian.AppendUint16(out, uint16(len(f.Tracks)))
	db := division.divisionBytes()
	out = append(out, db[0], db[1])
	for i := range f.Tracks {
		out = f.Tracks[i].appendChunk(out)
	}
	return out
}

// AddTrack appends a track and keeps the header's track count in step.
func (f *File) AddTrack(t Track) {
	f.Tracks = append(f.Tracks, t)
	f.Header.NumTracks = uint16(len(f.Tracks))
}
