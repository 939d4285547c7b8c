package midi

// Registered and non-registered parameters (RPN/NRPN) are not wire
// messages of their own: they are spelled as a sequence of control
// changes selecting a 14-bit parameter number and then entering a
// 14-bit value. RPN, NRPN, DataIncrement and DataDecrement encode to
// that sequence, and ParameterDecoder folds the sequence back into
// single events.

// ParameterEvent is a complete parameter operation assembled from a
// control change sequence.
type ParameterEvent interface {
	// Messages returns the control change sequence that spells the
	// event on the wire.
	Messages() []Message

	isParameterEvent()
}

// RPN sets a registered parameter to a value.
type RPN struct {
	Channel Channel
	Number  uint16
	Value   uint16
}

func (RPN) isParameterEvent() {}

// Messages returns the selector and data entry control changes. The
// data entry LSB is omitted when the low seven value bits are zero.
func (p RPN) Messages() []Message {
	return parameterMessages(p.Channel, true, p.Number, p.Value)
}

// NRPN sets a non-registered (manufacturer-specific) parameter to a
// value.
type NRPN struct {
	Channel Channel
	Number  uint16
	Value   uint16
}

func (NRPN) isParameterEvent() {}

// Messages returns the selector and data entry control changes.
func (p NRPN) Messages() []Message {
	return parameterMessages(p.Channel, false, p.Number, p.Value)
}

// DataIncrement steps the selected parameter up. Number records which
// parameter was selected when the step arrived.
type DataIncrement struct {
	Channel    Channel
	Registered bool
	Number     uint16
	Amount     uint8
}

func (DataIncrement) isParameterEvent() {}

// Messages returns the selector followed by a data increment control.
func (p DataIncrement) Messages() []Message {
	return append(selectorMessages(p.Channel, p.Registered, p.Number),
		ChannelVoice{Channel: p.Channel, Msg: ControlChange{Control: DataIncrementCC, Value: p.Amount}})
}

// DataDecrement steps the selected parameter down.
type DataDecrement struct {
	Channel    Channel
	Registered bool
	Number     uint16
	Amount     uint8
}

func (DataDecrement) isParameterEvent() {}

// Messages returns the selector followed by a data decrement control.
func (p DataDecrement) Messages() []Message {
	return append(selectorMessages(p.Channel, p.Registered, p.Number),
		ChannelVoice{Channel: p.Channel, Msg: ControlChange{Control: DataDecrementCC, Value: p.Amount}})
}

// NullParameter deselects the current parameter on a channel, spelled
// as selector 127/127. Subsequent data entries are discarded until a
// new parameter is selected.
type NullParameter struct {
	Channel    Channel
	Registered bool
}

func (NullParameter) isParameterEvent() {}

// Messages returns the two null selector control changes.
func (p NullParameter) Messages() []Message {
	return selectorMessages(p.Channel, p.Registered, 0x3FFF)
}

func selectorMessages(ch Channel, registered bool, number uint16) []Message {
	lsb, msb := To14Bit(number)
	msbCC, lsbCC := NRPNSelectMSB, NRPNSelectLSB
	if registered {
		msbCC, lsbCC = RPNSelectMSB, RPNSelectLSB
	}
	return []Message{
		ChannelVoice{Channel: ch, Msg: ControlChange{Control: msbCC, Value: msb}},
		ChannelVoice{Channel: ch, Msg: ControlChange{Control: lsbCC, Value: lsb}},
	}
}

func parameterMessages(ch Channel, registered bool, number, value uint16) []Message {
	vlsb, vmsb := To14Bit(value)
	msgs := selectorMessages(ch, registered, number)
	msgs = append(msgs, ChannelVoice{Channel: ch, Msg: ControlChange{Control: DataEntry, Value: vmsb}})
	if vlsb != 0 {
		msgs = append(msgs, ChannelVoice{Channel: ch, Msg: ControlChange{Control: DataEntryLSB, Value: vlsb}})
	}
	return msgs
}

const unset = -1

// paramState is the per-channel parameter protocol state.
type paramState struct {
	registered bool
	numMSB     int16
	numLSB     int16
	// pending holds a data entry MSB awaiting an optional LSB.
	pending int16
}

func newParamState() paramState {
	return paramState{numMSB: unset, numLSB: unset, pending: unset}
}

func (s *paramState) selected() bool {
	return s.numMSB != unset && s.numLSB != unset && s.number() != 0x3FFF
}

func (s *paramState) number() uint16 {
	return From14Bit(uint8(s.numLSB), uint8(s.numMSB))
}

// ParameterDecoder assembles RPN/NRPN control change sequences into
// ParameterEvents. Feed it every decoded message in order; control
// changes that belong to the parameter protocol are absorbed and other
// messages pass through untouched.
type ParameterDecoder struct {
	chans [16]paramState
}

// NewParameterDecoder returns a decoder with no parameter selected on
// any channel.
func NewParameterDecoder() *ParameterDecoder {
	d := &ParameterDecoder{}
	for i := range d.chans {
		d.chans[i] = newParamState()
	}
	return d
}

// Feed advances the decoder with one message and returns the events it
// completes, in order. A data entry MSB is held back until the next
// message shows whether an LSB follows; anything other than a data
// entry LSB flushes it as a complete event.
func (d *ParameterDecoder) Feed(m Message) []ParameterEvent {
	cv, ok := m.(ChannelVoice)
	if !ok {
		return d.Flush()
	}
	cc, ok := cv.Msg.(ControlChange)
	if !ok {
		return d.flushChannel(cv.Channel)
	}

	s := &d.chans[cv.Channel.clamp()]
	switch cc.Control {
	case RPNSelectMSB, RPNSelectLSB, NRPNSelectMSB, NRPNSelectLSB:
		events := d.flushChannel(cv.Channel)
		registered := cc.Control == RPNSelectMSB || cc.Control == RPNSelectLSB
		if s.registered != registered {
			s.numMSB, s.numLSB = unset, unset
			s.registered = registered
		}
		if cc.Control == RPNSelectMSB || cc.Control == NRPNSelectMSB {
			s.numMSB = int16(cc.Value)
		} else {
			s.numLSB = int16(cc.Value)
		}
		if s.numMSB == 0x7F && s.numLSB == 0x7F {
			// Null selector: deselect without emitting an event.
			s.numMSB, s.numLSB = unset, unset
		}
		return events
	case DataEntry:
		events := d.flushChannel(cv.Channel)
		if s.selected() {
			s.pending = int16(cc.Value)
		}
		return events
	case DataEntryLSB:
		if s.pending == unset {
			// An LSB with no MSB in flight updates nothing.
			return nil
		}
		value := From14Bit(cc.Value, uint8(s.pending))
		s.pending = unset
		return []ParameterEvent{d.entryEvent(cv.Channel, s, value)}
	case DataIncrementCC:
		events := d.flushChannel(cv.Channel)
		if s.selected() {
			events = append(events, DataIncrement{
				Channel:    cv.Channel,
				Registered: s.registered,
				Number:     s.number(),
				Amount:     cc.Value,
			})
		}
		return events
	case DataDecrementCC:
		events := d.flushChannel(cv.Channel)
		if s.selected() {
			events = append(events, DataDecrement{
				Channel:    cv.Channel,
				Registered: s.registered,
				Number:     s.number(),
				Amount:     cc.Value,
			})
		}
		return events
	default:
		return d.flushChannel(cv.Channel)
	}
}

// Flush emits any data entries still held back on any channel. Call it
// when the stream ends.
func (d *ParameterDecoder) Flush() []ParameterEvent {
	var events []ParameterEvent
	for i := range d.chans {
		events = append(events, d.flushChannel(Channel(i))...)
	}
	return events
}

func (d *ParameterDecoder) flushChannel(ch Channel) []ParameterEvent {
	s := &d.chans[ch.clamp()]
	if s.pending == unset {
		return nil
	}
	value := uint16(s.pending) << 7
	s.pending = unset
	return []ParameterEvent{d.entryEvent(ch, s, value)}
}

func (d *ParameterDecoder) entryEvent(ch Channel, s *paramState, value uint16) ParameterEvent {
	if s.registered {
		return RPN{Channel: ch, Number: s.number(), Value: value}
	}
	return NRPN{Channel: ch, Number: s.number(), Value: value}
}
