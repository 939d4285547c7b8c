// Package smf reads and writes Standard MIDI Files.
package smf

import "github.com/pithecene-io/midiwire/midi"

// MaxVLQ is the largest value a variable-length quantity can carry.
const MaxVLQ = 0x0FFFFFFF

// AppendVLQ appends x as a variable-length quantity: up to four bytes
// of seven bits each, most significant first, with the continuation
// bit set on all but the last. Values above MaxVLQ saturate.
func AppendVLQ(dst []byte, x uint32) []byte {
	if x > MaxVLQ {
		x = MaxVLQ
	}
	if x >= 1<<21 {
		dst = append(dst, uint8(x>>21)|0x80)
	}
	if x >= 1<<14 {
		dst = append(dst, uint8(x>>14)|0x80)
	}
	if x >= 1<<7 {
		dst = append(dst, uint8(x>>7)|0x80)
	}
	return append(dst, uint8(x&0x7F))
}

// ReadVLQ reads a variable-length quantity starting at b[offset] and
// returns its value and the number of bytes it occupied. A fifth
// continuation byte is malformed.
func ReadVLQ(b []byte, offset int) (uint32, int, error) {
	var x uint32
	for i := 0; i < 4; i++ {
		if offset+i >= len(b) {
			return 0, 0, &midi.ParseError{
				Kind:   midi.KindTruncated,
				Offset: offset + i,
				Msg:    "unterminated variable-length quantity",
			}
		}
		c := b[offset+i]
		x = x<<7 | uint32(c&0x7F)
		if c < 0x80 {
			return x, i + 1, nil
		}
	}
	return 0, 0, &midi.ParseError{
		Kind:   midi.KindMalformed,
		Offset: offset + 3,
		Msg:    "variable-length quantity longer than four bytes",
	}
}
