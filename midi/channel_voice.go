package midi

// ChannelVoice is a channel voice message: a performance event
// addressed to one of the sixteen channels.
type ChannelVoice struct {
	Channel Channel
	Msg     VoiceMessage
}

func (ChannelVoice) isMessage() {}

// Append appends the message to dst with its status byte.
func (m ChannelVoice) Append(dst []byte) []byte {
	dst = append(dst, m.Msg.status()|m.Channel.clamp())
	return m.Msg.appendData(dst)
}

// VoiceMessage is the payload of a ChannelVoice message.
type VoiceMessage interface {
	// status returns the status byte with channel bits zero.
	status() uint8
	appendData(dst []byte) []byte
}

// NoteOff releases a note.
type NoteOff struct {
	Note     uint8
	Velocity uint8
}

func (NoteOff) status() uint8 { return 0x80 }

func (m NoteOff) appendData(dst []byte) []byte {
	return append(dst, To7Bit(m.Note), To7Bit(m.Velocity))
}

// NoteOn starts a note. Velocity 0 is conventionally a note off, but
// it is decoded and re-encoded as the NoteOn that appeared on the wire.
type NoteOn struct {
	Note     uint8
	Velocity uint8
}

func (NoteOn) status() uint8 { return 0x90 }

func (m NoteOn) appendData(dst []byte) []byte {
	return append(dst, To7Bit(m.Note), To7Bit(m.Velocity))
}

// PolyPressure is per-note aftertouch.
type PolyPressure struct {
	Note     uint8
	Pressure uint8
}

func (PolyPressure) status() uint8 { return 0xA0 }

func (m PolyPressure) appendData(dst []byte) []byte {
	return append(dst, To7Bit(m.Note), To7Bit(m.Pressure))
}

// ControlChange sets a controller to a value. Control numbers 120-127
// are channel mode messages and decode as ChannelMode instead; a
// ControlChange with such a control encodes clamped to 119.
type ControlChange struct {
	Control Controller
	Value   uint8
}

func (ControlChange) status() uint8 { return 0xB0 }

func (m ControlChange) appendData(dst []byte) []byte {
	c := uint8(m.Control)
	if c > 119 {
		c = 119
	}
	return append(dst, c, To7Bit(m.Value))
}

// ProgramChange selects a program (patch).
type ProgramChange struct {
	Program uint8
}

func (ProgramChange) status() uint8 { return 0xC0 }

func (m ProgramChange) appendData(dst []byte) []byte {
	return append(dst, To7Bit(m.Program))
}

// ChannelPressure is channel-wide aftertouch.
type ChannelPressure struct {
	Pressure uint8
}

func (ChannelPressure) status() uint8 { return 0xD0 }

func (m ChannelPressure) appendData(dst []byte) []byte {
	return append(dst, To7Bit(m.Pressure))
}

// PitchBend is the pitch wheel position as a signed offset from
// center, in [-8192, 8191].
type PitchBend struct {
	Bend int16
}

func (PitchBend) status() uint8 { return 0xE0 }

func (m PitchBend) appendData(dst []byte) []byte {
	lsb, msb := Signed14ToWire(m.Bend)
	return append(dst, lsb, msb)
}

// decodeChannelVoice decodes the data bytes of a channel voice or
// channel mode message. The status byte has already been consumed.
func decodeChannelVoice(s *scanner, status uint8) (Message, error) {
	ch := Channel(status & 0x0F)
	switch status & 0xF0 {
	case 0x80:
		note, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		vel, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: NoteOff{Note: note, Velocity: vel}}, nil
	case 0x90:
		note, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		vel, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: NoteOn{Note: note, Velocity: vel}}, nil
	case 0xA0:
		note, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		p, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: PolyPressure{Note: note, Pressure: p}}, nil
	case 0xB0:
		control, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		value, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		if control >= 120 {
			return decodeChannelMode(ch, control, value, s.pos-1)
		}
		return ChannelVoice{Channel: ch, Msg: ControlChange{Control: Controller(control), Value: value}}, nil
	case 0xC0:
		prog, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: ProgramChange{Program: prog}}, nil
	case 0xD0:
		p, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: ChannelPressure{Pressure: p}}, nil
	case 0xE0:
		lsb, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		msb, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return ChannelVoice{Channel: ch, Msg: PitchBend{Bend: Signed14FromWire(lsb, msb)}}, nil
	default:
		return nil, malformed(s.pos-1, "not a channel status byte")
	}
}
