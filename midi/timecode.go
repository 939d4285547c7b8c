package midi

// TimeCodeType is the SMPTE frame rate carried in a time code.
type TimeCodeType uint8

const (
	// FPS24 is 24 frames per second.
	FPS24 TimeCodeType = 0
	// FPS25 is 25 frames per second.
	FPS25 TimeCodeType = 1
	// DF30 is 30 frames per second, drop frame.
	DF30 TimeCodeType = 2
	// NDF30 is 30 frames per second, non-drop.
	NDF30 TimeCodeType = 3
)

func (t TimeCodeType) String() string {
	switch t {
	case FPS24:
		return "24fps"
	case FPS25:
		return "25fps"
	case DF30:
		return "30fps drop"
	case NDF30:
		return "30fps non-drop"
	default:
		return "unknown"
	}
}

// TimeCode is a full SMPTE time code position.
type TimeCode struct {
	// Frames is limited to [0, 29] on the wire.
	Frames uint8
	// Seconds is limited to [0, 59] on the wire.
	Seconds uint8
	// Minutes is limited to [0, 59] on the wire.
	Minutes uint8
	// Hours is limited to [0, 23] on the wire.
	Hours uint8
	Rate  TimeCodeType
}

// toBytes returns the clamped four byte representation:
// frames, seconds, minutes, rate<<5 | hours.
func (t TimeCode) toBytes() [4]uint8 {
	return [4]uint8{
		minU8(t.Frames, 29),
		minU8(t.Seconds, 59),
		minU8(t.Minutes, 59),
		minU8(t.Hours, 23) | uint8(t.Rate&0x03)<<5,
	}
}

// nibbles returns the eight quarter-frame data bytes. Each carries a
// piece index in bits 4-6 and one nibble of the time code, low nibbles
// on even pieces.
func (t TimeCode) nibbles() [8]uint8 {
	b := t.toBytes()
	var out [8]uint8
	for i := 0; i < 4; i++ {
		hi, lo := ToNibbles(b[i])
		out[i*2] = uint8(i*2)<<4 | lo
		out[i*2+1] = uint8(i*2+1)<<4 | hi
	}
	return out
}

// extend folds one quarter-frame data byte into the time code and
// returns the piece index it carried, in [0, 7].
func (t *TimeCode) extend(b uint8) uint8 {
	piece, nib := ToNibbles(b & 0x7F)
	switch piece {
	case 0:
		t.Frames = t.Frames&0xF0 | nib
	case 1:
		t.Frames = t.Frames&0x0F | nib<<4
	case 2:
		t.Seconds = t.Seconds&0xF0 | nib
	case 3:
		t.Seconds = t.Seconds&0x0F | nib<<4
	case 4:
		t.Minutes = t.Minutes&0xF0 | nib
	case 5:
		t.Minutes = t.Minutes&0x0F | nib<<4
	case 6:
		t.Hours = t.Hours&0xF0 | nib
	case 7:
		codehour := t.Hours&0x0F | nib<<4
		t.Hours = codehour & 0x1F
		t.Rate = TimeCodeType(codehour >> 5 & 0x03)
	}
	return piece
}

func minU8(x, limit uint8) uint8 {
	if x > limit {
		return limit
	}
	return x
}
