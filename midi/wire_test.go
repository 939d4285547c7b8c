package midi

import (
	"math"
	"testing"
)

func TestTo7Bit_Saturates(t *testing.T) {
	cases := []struct {
		in   uint8
		want uint8
	}{
		{0xFF, 127},
		{0x77, 0x77},
		{0x00, 0x00},
		{0x7F, 127},
	}
	for _, c := range cases {
		if got := To7Bit(c.in); got != c.want {
			t.Errorf("To7Bit(%#x) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTo14Bit_Saturates(t *testing.T) {
	cases := []struct {
		in       uint16
		lsb, msb uint8
	}{
		{0xFF, 127, 1},
		{0xFF00, 127, 127},
		{0x00, 0, 0},
		{0xFFF, 127, 0x1F},
		{1000, 0x68, 0x07},
	}
	for _, c := range cases {
		lsb, msb := To14Bit(c.in)
		if lsb != c.lsb || msb != c.msb {
			t.Errorf("To14Bit(%d) = (%#x, %#x), want (%#x, %#x)", c.in, lsb, msb, c.lsb, c.msb)
		}
	}
}

func TestSigned7_WireMapping(t *testing.T) {
	if got := Signed7ToWire(63); got != 127 {
		t.Errorf("Signed7ToWire(63) = %d, want 127", got)
	}
	if got := Signed7ToWire(0); got != 64 {
		t.Errorf("Signed7ToWire(0) = %d, want 64", got)
	}
	if got := Signed7ToWire(-64); got != 0 {
		t.Errorf("Signed7ToWire(-64) = %d, want 0", got)
	}
	if got := Signed7FromWire(127); got != 63 {
		t.Errorf("Signed7FromWire(127) = %d, want 63", got)
	}
	if got := Signed7FromWire(64); got != 0 {
		t.Errorf("Signed7FromWire(64) = %d, want 0", got)
	}
	if got := Signed7FromWire(0); got != -64 {
		t.Errorf("Signed7FromWire(0) = %d, want -64", got)
	}
}

func TestSigned14_WireMapping(t *testing.T) {
	cases := []struct {
		value    int16
		lsb, msb uint8
	}{
		{0, 0x00, 0x40},
		{-8192, 0x00, 0x00},
		{8191, 0x7F, 0x7F},
	}
	for _, c := range cases {
		lsb, msb := Signed14ToWire(c.value)
		if lsb != c.lsb || msb != c.msb {
			t.Errorf("Signed14ToWire(%d) = (%#x, %#x), want (%#x, %#x)", c.value, lsb, msb, c.lsb, c.msb)
		}
		if got := Signed14FromWire(c.lsb, c.msb); got != c.value {
			t.Errorf("Signed14FromWire(%#x, %#x) = %d, want %d", c.lsb, c.msb, got, c.value)
		}
	}
}

func TestFrom14Bit_RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 127, 128, 8192, 16383} {
		lsb, msb := To14Bit(v)
		if got := From14Bit(lsb, msb); got != v {
			t.Errorf("From14Bit(To14Bit(%d)) = %d", v, got)
		}
	}
}

func TestNoteToFreq(t *testing.T) {
	if got := NoteToFreq(67); math.Abs(float64(got)-392.0) > 0.01 {
		t.Errorf("NoteToFreq(67) = %f, want 392.0", got)
	}
	if got := NoteToFreq(69); math.Abs(float64(got)-440.0) > 0.001 {
		t.Errorf("NoteToFreq(69) = %f, want 440.0", got)
	}
}

func TestFreqToNoteCents(t *testing.T) {
	note, cents := FreqToNoteCents(440.0)
	if note != 69 {
		t.Errorf("note = %d, want 69", note)
	}
	if math.Abs(float64(cents)) > 0.01 {
		t.Errorf("cents = %f, want 0", cents)
	}
}
