// Package midi serializes and deserializes MIDI 1.0 byte streams.
//
// Message is the top level of the message model. Every Message can be
// appended to a byte slice as a valid MIDI sequence, and Decode turns
// bytes back into Messages. Out-of-range field values saturate to the
// nearest legal wire value; encoding never fails.
package midi

// Version is the midiwire release version.
const Version = "0.3.0"

// Message is a complete MIDI message of any category.
type Message interface {
	// Append appends the wire representation of the message to dst and
	// returns the extended slice. No running status is applied; each
	// message carries its own status byte.
	Append(dst []byte) []byte

	isMessage()
}

// Channel is a MIDI channel in [0, 15]. Channel 0 is displayed to
// users as channel 1.
type Channel uint8

// Channel constants, named by their one-based display number.
const (
	Ch1 Channel = iota
	Ch2
	Ch3
	Ch4
	Ch5
	Ch6
	Ch7
	Ch8
	Ch9
	Ch10
	Ch11
	Ch12
	Ch13
	Ch14
	Ch15
	Ch16
)

func (c Channel) clamp() uint8 {
	return uint8(c) & 0x0F
}

// ReceiverContext carries the inter-message state a MIDI receiver
// must track: the running status byte and the time code accumulated
// from quarter-frame messages.
type ReceiverContext struct {
	status   uint8
	timeCode TimeCode
}

// NewReceiverContext returns a fresh context with no running status.
func NewReceiverContext() *ReceiverContext {
	return &ReceiverContext{}
}

// TimeCode returns the time code assembled so far from quarter-frame
// and full time code messages.
func (c *ReceiverContext) TimeCode() TimeCode {
	return c.timeCode
}

// ClearRunningStatus forgets the running status byte, as a system
// exclusive message does on the wire.
func (c *ReceiverContext) ClearRunningStatus() {
	c.status = 0
}

// Decode decodes a single message from the start of b. It returns the
// message and the number of bytes consumed. Real-time bytes interleaved
// inside the message are consumed and dropped; use Decoder to observe
// them. Decoding b[n:] afterwards yields the following message.
//
// A leading data byte is an error here: one-shot decoding has no
// running status to fall back on.
func Decode(b []byte) (Message, int, error) {
	return DecodeWithContext(b, NewReceiverContext())
}

// DecodeWithContext decodes a single message from the start of b,
// using and updating ctx. A leading data byte is decoded under the
// running status recorded in ctx from an earlier channel message.
func DecodeWithContext(b []byte, ctx *ReceiverContext) (Message, int, error) {
	s := &scanner{buf: b}
	m, err := decodeMessage(s, ctx)
	if err != nil {
		return nil, 0, err
	}
	return m, s.pos, nil
}
