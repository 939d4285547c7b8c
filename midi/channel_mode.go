package midi

// ChannelMode is a channel mode message: control numbers 120-127,
// which configure the channel rather than drive a voice.
type ChannelMode struct {
	Channel Channel
	Msg     ModeMessage
}

func (ChannelMode) isMessage() {}

// Append appends the message to dst as a control change on the
// reserved mode control numbers.
func (m ChannelMode) Append(dst []byte) []byte {
	control, value := m.Msg.modeBytes()
	return append(dst, 0xB0|m.Channel.clamp(), control, value)
}

// ModeMessage is the payload of a ChannelMode message.
type ModeMessage interface {
	modeBytes() (control, value uint8)
}

// AllSoundOff silences the channel immediately, ignoring release
// envelopes and the hold pedal.
type AllSoundOff struct{}

func (AllSoundOff) modeBytes() (uint8, uint8) { return 120, 0 }

// ResetAllControllers returns all controllers to their default state.
type ResetAllControllers struct{}

func (ResetAllControllers) modeBytes() (uint8, uint8) { return 121, 0 }

// LocalControl connects or disconnects the local keyboard from the
// sound generator.
type LocalControl struct {
	On bool
}

func (m LocalControl) modeBytes() (uint8, uint8) {
	if m.On {
		return 122, 127
	}
	return 122, 0
}

// AllNotesOff releases all sounding notes, honoring release envelopes.
type AllNotesOff struct{}

func (AllNotesOff) modeBytes() (uint8, uint8) { return 123, 0 }

// OmniMode switches omni reception off (control 124) or on (125).
type OmniMode struct {
	On bool
}

func (m OmniMode) modeBytes() (uint8, uint8) {
	if m.On {
		return 125, 0
	}
	return 124, 0
}

// MonoMode switches the channel to mono operation. Channels is the
// number of channels to use, or 0 to match the number of voices.
type MonoMode struct {
	Channels uint8
}

func (m MonoMode) modeBytes() (uint8, uint8) { return 126, To7Bit(m.Channels) }

// PolyMode switches the channel to polyphonic operation.
type PolyMode struct{}

func (PolyMode) modeBytes() (uint8, uint8) { return 127, 0 }

func decodeChannelMode(ch Channel, control, value uint8, offset int) (Message, error) {
	var msg ModeMessage
	switch control {
	case 120:
		msg = AllSoundOff{}
	case 121:
		msg = ResetAllControllers{}
	case 122:
		msg = LocalControl{On: value >= 0x40}
	case 123:
		msg = AllNotesOff{}
	case 124:
		msg = OmniMode{On: false}
	case 125:
		msg = OmniMode{On: true}
	case 126:
		msg = MonoMode{Channels: value}
	case 127:
		msg = PolyMode{}
	default:
		return nil, malformed(offset, "not a channel mode control")
	}
	return ChannelMode{Channel: ch, Msg: msg}, nil
}
