package midi

import "math"

// Wire-level primitive codec. MIDI data bytes carry 7 significant bits;
// wider values are split into 7-bit pieces, LSB first on the wire.
// Out-of-range inputs saturate rather than wrap or error.

// To7Bit clamps x to the 7-bit data byte range [0, 127].
func To7Bit(x uint8) uint8 {
	if x > 127 {
		return 127
	}
	return x
}

// To14Bit splits x into two 7-bit data bytes, returned LSB first.
// Values above 16383 saturate to (127, 127).
func To14Bit(x uint16) (lsb, msb uint8) {
	if x > 16383 {
		return 127, 127
	}
	return uint8(x & 0x7F), uint8(x >> 7)
}

// From14Bit reassembles a 14-bit value from its LSB and MSB data bytes.
func From14Bit(lsb, msb uint8) uint16 {
	return uint16(msb)<<7 | uint16(lsb&0x7F)
}

// Signed7ToWire maps x in [-64, 63] onto a data byte with 0x40 as zero.
// Out-of-range values saturate.
func Signed7ToWire(x int8) uint8 {
	if x < -64 {
		x = -64
	}
	return To7Bit(uint8(int16(x) + 64))
}

// Signed7FromWire maps a data byte back onto [-64, 63].
func Signed7FromWire(b uint8) int8 {
	return int8(b&0x7F) - 64
}

// Signed14ToWire maps x in [-8192, 8191] onto two data bytes, LSB first,
// with 0x2000 as zero. Out-of-range values saturate.
func Signed14ToWire(x int16) (lsb, msb uint8) {
	if x < -8192 {
		x = -8192
	}
	return To14Bit(uint16(int32(x) + 8192))
}

// Signed14FromWire maps two data bytes back onto [-8192, 8191].
func Signed14FromWire(lsb, msb uint8) int16 {
	return int16(From14Bit(lsb, msb)) - 8192
}

// ToNibbles splits a byte into its high and low 4-bit halves.
func ToNibbles(x uint8) (hi, lo uint8) {
	return x >> 4, x & 0x0F
}

// FreqToNote converts a frequency in Hertz to a fractional note number,
// where 1.0 equals 100 cents and A4 (440 Hz) is note 69.
func FreqToNote(freq float32) float32 {
	return float32(12.0*math.Log2(float64(freq)/440.0) + 69.0)
}

// NoteToFreq converts a fractional note number to a frequency in Hertz.
func NoteToFreq(note float32) float32 {
	return float32(math.Pow(2.0, (float64(note)-69.0)/12.0) * 440.0)
}

// NoteCentsToFreq converts a note number plus additional cents to a
// frequency in Hertz.
func NoteCentsToFreq(note uint8, cents float32) float32 {
	return NoteToFreq(float32(note) + cents/100.0)
}

// FreqToNoteCents converts a frequency in Hertz to a note number and the
// remaining offset from that note in cents.
func FreqToNoteCents(freq float32) (note uint8, cents float32) {
	n := FreqToNote(freq)
	whole := float32(math.Trunc(float64(n)))
	return uint8(whole), (n - whole) * 100.0
}
