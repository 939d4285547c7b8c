package midi

import (
	"errors"
	"io"
)

// scanner walks a byte buffer during decoding. Real-time status bytes
// are legal between the data bytes of any other message; the scanner
// consumes them wherever a data byte is expected and hands them to rt
// when one is installed.
type scanner struct {
	buf []byte
	pos int
	rt  func(SystemRealTime)
}

// dataByte consumes and returns the next data byte, skipping over any
// interleaved real-time bytes.
func (s *scanner) dataByte() (uint8, error) {
	for {
		if s.pos >= len(s.buf) {
			return 0, truncated(s.pos, "expected data byte")
		}
		b := s.buf[s.pos]
		if b < 0x80 {
			s.pos++
			return b, nil
		}
		if isRealTimeStatus(b) {
			if s.rt != nil {
				s.rt(SystemRealTime{Msg: RealTime(b)})
			}
			s.pos++
			continue
		}
		return 0, unexpectedStatus(s.pos, "status byte where data byte expected")
	}
}

// decodeMessage decodes one message starting at the scanner position,
// using ctx for running status and time code state.
func decodeMessage(s *scanner, ctx *ReceiverContext) (Message, error) {
	if s.pos >= len(s.buf) {
		return nil, truncated(s.pos, "empty input")
	}
	b := s.buf[s.pos]
	switch {
	case b < 0x80:
		// Running status: reuse the last channel status byte.
		if ctx.status == 0 {
			return nil, unexpectedStatus(s.pos, "data byte with no running status")
		}
		return decodeChannelVoice(s, ctx.status)
	case b < 0xF0:
		s.pos++
		ctx.status = b
		return decodeChannelVoice(s, b)
	case b == 0xF0:
		s.pos++
		ctx.status = 0
		return decodeSysExStream(s, ctx)
	case b == 0xF7:
		return nil, malformed(s.pos, "end of exclusive with no system exclusive open")
	case b < 0xF8:
		s.pos++
		ctx.status = 0
		return decodeSystemCommon(s, b, ctx)
	default:
		if !isRealTimeStatus(b) {
			return nil, malformed(s.pos, "undefined real-time status byte")
		}
		s.pos++
		return SystemRealTime{Msg: RealTime(b)}, nil
	}
}

// decodeSysExStream collects a sysex body after the F0. The message
// ends at an F7, or implicitly at any other non-real-time status byte,
// which is left for the next message.
func decodeSysExStream(s *scanner, ctx *ReceiverContext) (Message, error) {
	start := s.pos
	var body []byte
	for {
		if s.pos >= len(s.buf) {
			return nil, truncated(s.pos, "unterminated system exclusive")
		}
		b := s.buf[s.pos]
		if b < 0x80 {
			body = append(body, b)
			s.pos++
			continue
		}
		if isRealTimeStatus(b) {
			if s.rt != nil {
				s.rt(SystemRealTime{Msg: RealTime(b)})
			}
			s.pos++
			continue
		}
		if b == 0xF7 {
			s.pos++
		}
		break
	}
	m, err := DecodeSysEx(body, ctx)
	if err != nil {
		// Body offsets are relative; report against the input buffer.
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Offset += start
		}
		return nil, err
	}
	return m, nil
}

// Encoder appends messages to a stream, eliding status bytes under
// running status. Consecutive channel messages with the same status
// byte share it; system common and exclusive messages clear the
// running status, and real-time messages leave it untouched.
type Encoder struct {
	status uint8
}

// Append appends m to dst and returns the extended slice.
func (e *Encoder) Append(dst []byte, m Message) []byte {
	switch msg := m.(type) {
	case ChannelVoice:
		status := msg.Msg.status() | msg.Channel.clamp()
		if status == e.status {
			return msg.Msg.appendData(dst)
		}
		e.status = status
		return m.Append(dst)
	case ChannelMode:
		status := uint8(0xB0) | msg.Channel.clamp()
		control, value := msg.Msg.modeBytes()
		if status == e.status {
			return append(dst, control, value)
		}
		e.status = status
		return append(dst, status, control, value)
	case SystemRealTime:
		return m.Append(dst)
	default:
		e.status = 0
		return m.Append(dst)
	}
}

// Reset clears the running status, forcing the next channel message to
// carry its status byte.
func (e *Encoder) Reset() {
	e.status = 0
}

// EncodeMessages encodes msgs as one stream with running status
// applied across them.
func EncodeMessages(msgs []Message) []byte {
	var enc Encoder
	var out []byte
	for _, m := range msgs {
		out = enc.Append(out, m)
	}
	return out
}

// Decoder decodes a buffer message by message. Unlike the one-shot
// Decode, real-time messages interleaved inside other messages are
// surfaced in stream order, before the message they interrupted.
type Decoder struct {
	buf   []byte
	pos   int
	ctx   *ReceiverContext
	queue []Message
	err   error
}

// NewDecoder returns a Decoder over b with a fresh receiver context.
func NewDecoder(b []byte) *Decoder {
	return NewDecoderWithContext(b, NewReceiverContext())
}

// NewDecoderWithContext returns a Decoder over b that shares ctx.
func NewDecoderWithContext(b []byte, ctx *ReceiverContext) *Decoder {
	return &Decoder{buf: b, ctx: ctx}
}

// Next returns the next message in the stream. It returns io.EOF at a
// clean end of input. Decoding errors are sticky: once one is
// returned, every later call returns it again.
func (d *Decoder) Next() (Message, error) {
	for {
		if len(d.queue) > 0 {
			m := d.queue[0]
			d.queue = d.queue[1:]
			return m, nil
		}
		if d.err != nil {
			return nil, d.err
		}
		if d.pos >= len(d.buf) {
			return nil, io.EOF
		}
		s := &scanner{buf: d.buf, pos: d.pos, rt: func(m SystemRealTime) {
			d.queue = append(d.queue, m)
		}}
		m, err := decodeMessage(s, d.ctx)
		d.pos = s.pos
		if err != nil {
			// Real-time messages seen before the failure drain first.
			d.err = err
			continue
		}
		d.queue = append(d.queue, m)
	}
}

// Offset returns the byte offset the decoder has consumed up to.
func (d *Decoder) Offset() int {
	return d.pos
}

// DecodeMessages decodes every message in b. On error it returns the
// messages decoded so far along with the error.
func DecodeMessages(b []byte) ([]Message, error) {
	dec := NewDecoder(b)
	var msgs []Message
	for {
		m, err := dec.Next()
		if err == io.EOF {
			return msgs, nil
		}
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, m)
	}
}
