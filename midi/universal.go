package midi

// Universal sysex sub-messages. Real-time messages live under ID 0x7F,
// non-real-time under 0x7E, with one or two sub-ID bytes selecting the
// sub-protocol. Unknown sub-IDs decode as UniversalUnknown and
// round-trip byte for byte.

// FullTimeCode transmits a complete time code at once, for locating
// and cueing where continuous quarter frames would be excessive.
// Decoding one replaces the receiver context's accumulated time code.
type FullTimeCode struct {
	Code TimeCode
}

func (m FullTimeCode) appendSub(dst []byte) []byte {
	b := m.Code.toBytes()
	return append(dst, 0x01, 0x01, b[3], b[2], b[1], b[0])
}

// UserBits carries the application-specific SMPTE user bits.
type UserBits struct {
	Data [4]uint8
	// Flags is the two SMPTE flag bits.
	Flags uint8
}

func (m UserBits) appendSub(dst []byte) []byte {
	dst = append(dst, 0x01, 0x02)
	for _, b := range m.Data {
		hi, lo := ToNibbles(b)
		dst = append(dst, hi, lo)
	}
	return append(dst, m.Flags&0x03)
}

// ShowControl is a MIDI Show Control message. The command payload is
// carried opaquely.
type ShowControl struct {
	Data []byte
}

func (m ShowControl) appendSub(dst []byte) []byte {
	dst = append(dst, 0x02)
	return appendData7(dst, m.Data)
}

// MasterVolume sets the volume of all sound, from 0 (off) to 16383.
type MasterVolume struct {
	Volume uint16
}

func (m MasterVolume) appendSub(dst []byte) []byte {
	lsb, msb := To14Bit(m.Volume)
	return append(dst, 0x04, 0x01, lsb, msb)
}

// MasterBalance sets the balance of all sound, from 0 (hard left)
// through 8192 (center) to 16383 (hard right).
type MasterBalance struct {
	Balance uint16
}

func (m MasterBalance) appendSub(dst []byte) []byte {
	lsb, msb := To14Bit(m.Balance)
	return append(dst, 0x04, 0x02, lsb, msb)
}

// MachineControlCommand is an MMC command, carried opaquely.
type MachineControlCommand struct {
	Data []byte
}

func (m MachineControlCommand) appendSub(dst []byte) []byte {
	dst = append(dst, 0x06)
	return appendData7(dst, m.Data)
}

// MachineControlResponse is an MMC response, carried opaquely.
type MachineControlResponse struct {
	Data []byte
}

func (m MachineControlResponse) appendSub(dst []byte) []byte {
	dst = append(dst, 0x07)
	return appendData7(dst, m.Data)
}

// NoteTuning is the target frequency of a single note, as a semitone
// plus a 14-bit fraction in 0.0061-cent units.
type NoteTuning struct {
	Note     uint8
	Semitone uint8
	Fraction uint16
	// NoChange leaves the note's tuning untouched, encoded 7F 7F 7F.
	NoChange bool
}

// TuningNoteChange retunes one or more notes, effective the next time
// each note sounds. Usable in both real-time and non-real-time form.
type TuningNoteChange struct {
	Program uint8
	Bank    uint8
	// HasBank selects the bank-qualified form of the message.
	HasBank bool
	Changes []NoteTuning
}

func (m TuningNoteChange) appendSub(dst []byte) []byte {
	dst = append(dst, 0x08)
	if m.HasBank {
		dst = append(dst, 0x07, To7Bit(m.Bank))
	} else {
		dst = append(dst, 0x02)
	}
	dst = append(dst, To7Bit(m.Program), To7Bit(uint8(len(m.Changes))))
	for _, t := range m.Changes {
		dst = append(dst, To7Bit(t.Note))
		if t.NoChange {
			dst = append(dst, 0x7F, 0x7F, 0x7F)
			continue
		}
		lsb, msb := To14Bit(t.Fraction)
		// Tuning fractions are the one place MSB precedes LSB.
		dst = append(dst, To7Bit(t.Semitone), msb, lsb)
	}
	return dst
}

// SampleDumpHeader announces a sample dump: its number, word size,
// period in nanoseconds, length in words, and loop points.
type SampleDumpHeader struct {
	Sample    uint16
	Format    uint8
	Period    uint32
	Length    uint32
	LoopStart uint32
	LoopEnd   uint32
	LoopType  uint8
}

func (m SampleDumpHeader) appendSub(dst []byte) []byte {
	dst = append(dst, 0x01)
	lsb, msb := To14Bit(m.Sample)
	dst = append(dst, lsb, msb, To7Bit(m.Format))
	dst = append21(dst, m.Period)
	dst = append21(dst, m.Length)
	dst = append21(dst, m.LoopStart)
	dst = append21(dst, m.LoopEnd)
	return append(dst, To7Bit(m.LoopType))
}

// SampleDumpPacket carries one packet of sample words. The trailing
// checksum byte is computed on encode and verified nowhere; receivers
// answer with DumpACK or DumpNAK.
type SampleDumpPacket struct {
	Packet uint8
	Data   []byte
}

func (m SampleDumpPacket) appendSub(dst []byte) []byte {
	dst = append(dst, 0x02, To7Bit(m.Packet))
	dst = appendData7(dst, m.Data)
	// Checksum placeholder, overwritten by UniversalNonRealTime.
	return append(dst, 0x00)
}

// SampleDumpRequest asks the receiver to dump a sample.
type SampleDumpRequest struct {
	Sample uint16
}

func (m SampleDumpRequest) appendSub(dst []byte) []byte {
	lsb, msb := To14Bit(m.Sample)
	return append(dst, 0x03, lsb, msb)
}

// IdentityRequest asks the targeted device to identify itself.
type IdentityRequest struct{}

func (IdentityRequest) appendSub(dst []byte) []byte {
	return append(dst, 0x06, 0x01)
}

// IdentityReply is the answer to an IdentityRequest.
type IdentityReply struct {
	ID           ManufacturerID
	Family       uint16
	FamilyMember uint16
	// SoftwareRevision is four values in [0, 127], sent in order.
	SoftwareRevision [4]uint8
}

func (m IdentityReply) appendSub(dst []byte) []byte {
	dst = append(dst, 0x06, 0x02)
	dst = m.ID.appendID(dst)
	lsb, msb := To14Bit(m.Family)
	dst = append(dst, lsb, msb)
	lsb, msb = To14Bit(m.FamilyMember)
	dst = append(dst, lsb, msb)
	for _, r := range m.SoftwareRevision {
		dst = append(dst, To7Bit(r))
	}
	return dst
}

// GeneralMidiMode switches General MIDI on or off.
type GeneralMidiMode uint8

const (
	// GM1 enables General MIDI 1.
	GM1 GeneralMidiMode = 1
	// GMOff disables General MIDI.
	GMOff GeneralMidiMode = 2
	// GM2 enables General MIDI 2.
	GM2 GeneralMidiMode = 3
)

func (m GeneralMidiMode) appendSub(dst []byte) []byte {
	return append(dst, 0x09, uint8(m))
}

func (m GeneralMidiMode) String() string {
	switch m {
	case GM1:
		return "general midi 1"
	case GMOff:
		return "general midi off"
	case GM2:
		return "general midi 2"
	default:
		return "unknown"
	}
}

// DumpEOF signals that all dump packets have been sent.
type DumpEOF struct{}

func (DumpEOF) appendSub(dst []byte) []byte { return append(dst, 0x7B, 0x00) }

// DumpWait asks the sender to pause until an ACK or NAK follows.
type DumpWait struct{}

func (DumpWait) appendSub(dst []byte) []byte { return append(dst, 0x7C, 0x00) }

// DumpCancel aborts an ongoing dump.
type DumpCancel struct{}

func (DumpCancel) appendSub(dst []byte) []byte { return append(dst, 0x7D, 0x00) }

// DumpNAK reports that the numbered packet was received incorrectly.
type DumpNAK struct {
	Packet uint8
}

func (m DumpNAK) appendSub(dst []byte) []byte {
	return append(dst, 0x7E, To7Bit(m.Packet))
}

// DumpACK reports that the numbered packet was received correctly.
type DumpACK struct {
	Packet uint8
}

func (m DumpACK) appendSub(dst []byte) []byte {
	return append(dst, 0x7F, To7Bit(m.Packet))
}

// UniversalUnknown is a universal sub-message this package does not
// model. SubID is the first sub-ID byte; Data is everything after it.
// It satisfies both sub-message interfaces and re-encodes unchanged.
type UniversalUnknown struct {
	SubID uint8
	Data  []byte
}

func (m UniversalUnknown) appendSub(dst []byte) []byte {
	dst = append(dst, m.SubID)
	return append(dst, m.Data...)
}

func decodeRealTimeSysEx(sub []byte, ctx *ReceiverContext) (RealTimeSysEx, error) {
	switch sub[0] {
	case 0x01:
		if len(sub) < 2 {
			return nil, truncated(len(sub), "time code sysex needs a second sub-id")
		}
		switch sub[1] {
		case 0x01:
			if len(sub) < 6 {
				return nil, truncated(len(sub), "full time code needs four data bytes")
			}
			codehour := sub[2]
			tc := TimeCode{
				Frames:  sub[5],
				Seconds: sub[4],
				Minutes: sub[3],
				Hours:   codehour & 0x1F,
				Rate:    TimeCodeType(codehour >> 5 & 0x03),
			}
			ctx.timeCode = tc
			return FullTimeCode{Code: tc}, nil
		case 0x02:
			if len(sub) < 11 {
				return nil, truncated(len(sub), "user bits need nine data bytes")
			}
			var ub UserBits
			for i := 0; i < 4; i++ {
				ub.Data[i] = sub[2+i*2]<<4 | sub[3+i*2]&0x0F
			}
			ub.Flags = sub[10] & 0x03
			return ub, nil
		}
	case 0x02:
		return ShowControl{Data: cloneBytes(sub[1:])}, nil
	case 0x04:
		if len(sub) < 4 {
			return nil, truncated(len(sub), "device control needs sub-id and two data bytes")
		}
		switch sub[1] {
		case 0x01:
			return MasterVolume{Volume: From14Bit(sub[2], sub[3])}, nil
		case 0x02:
			return MasterBalance{Balance: From14Bit(sub[2], sub[3])}, nil
		}
	case 0x06:
		return MachineControlCommand{Data: cloneBytes(sub[1:])}, nil
	case 0x07:
		return MachineControlResponse{Data: cloneBytes(sub[1:])}, nil
	case 0x08:
		if len(sub) >= 2 && (sub[1] == 0x02 || sub[1] == 0x07) {
			return decodeTuningNoteChange(sub)
		}
	}
	return UniversalUnknown{SubID: sub[0], Data: cloneBytes(sub[1:])}, nil
}

func decodeNonRealTimeSysEx(sub []byte) (NonRealTimeSysEx, error) {
	switch sub[0] {
	case 0x01:
		if len(sub) < 17 {
			return nil, truncated(len(sub), "sample dump header needs sixteen data bytes")
		}
		return SampleDumpHeader{
			Sample:    From14Bit(sub[1], sub[2]),
			Format:    sub[3],
			Period:    from21(sub[4:]),
			Length:    from21(sub[7:]),
			LoopStart: from21(sub[10:]),
			LoopEnd:   from21(sub[13:]),
			LoopType:  sub[16],
		}, nil
	case 0x02:
		if len(sub) < 3 {
			return nil, truncated(len(sub), "sample dump packet needs a number and checksum")
		}
		return SampleDumpPacket{Packet: sub[1], Data: cloneBytes(sub[2 : len(sub)-1])}, nil
	case 0x03:
		if len(sub) < 3 {
			return nil, truncated(len(sub), "sample dump request needs two data bytes")
		}
		return SampleDumpRequest{Sample: From14Bit(sub[1], sub[2])}, nil
	case 0x06:
		if len(sub) < 2 {
			return nil, truncated(len(sub), "general information needs a second sub-id")
		}
		switch sub[1] {
		case 0x01:
			return IdentityRequest{}, nil
		case 0x02:
			return decodeIdentityReply(sub[2:])
		}
	case 0x08:
		if len(sub) >= 2 && (sub[1] == 0x02 || sub[1] == 0x07) {
			return decodeTuningNoteChange(sub)
		}
	case 0x09:
		if len(sub) < 2 {
			return nil, truncated(len(sub), "general midi message needs a mode byte")
		}
		if m := GeneralMidiMode(sub[1]); m == GM1 || m == GMOff || m == GM2 {
			return m, nil
		}
	case 0x7B:
		return DumpEOF{}, nil
	case 0x7C:
		return DumpWait{}, nil
	case 0x7D:
		return DumpCancel{}, nil
	case 0x7E:
		if len(sub) < 2 {
			return nil, truncated(len(sub), "dump nak needs a packet number")
		}
		return DumpNAK{Packet: sub[1]}, nil
	case 0x7F:
		if len(sub) < 2 {
			return nil, truncated(len(sub), "dump ack needs a packet number")
		}
		return DumpACK{Packet: sub[1]}, nil
	}
	return UniversalUnknown{SubID: sub[0], Data: cloneBytes(sub[1:])}, nil
}

func decodeIdentityReply(b []byte) (IdentityReply, error) {
	if len(b) == 0 {
		return IdentityReply{}, truncated(0, "identity reply needs a manufacturer id")
	}
	id, n, err := decodeManufacturerID(b)
	if err != nil {
		return IdentityReply{}, err
	}
	if len(b) < n+8 {
		return IdentityReply{}, truncated(len(b), "identity reply needs eight bytes after the id")
	}
	return IdentityReply{
		ID:               id,
		Family:           From14Bit(b[n], b[n+1]),
		FamilyMember:     From14Bit(b[n+2], b[n+3]),
		SoftwareRevision: [4]uint8{b[n+4], b[n+5], b[n+6], b[n+7]},
	}, nil
}

func decodeTuningNoteChange(sub []byte) (TuningNoteChange, error) {
	m := TuningNoteChange{HasBank: sub[1] == 0x07}
	i := 2
	if m.HasBank {
		if len(sub) < 3 {
			return m, truncated(len(sub), "tuning note change needs a bank byte")
		}
		m.Bank = sub[2]
		i = 3
	}
	if len(sub) < i+2 {
		return m, truncated(len(sub), "tuning note change needs a program and count")
	}
	m.Program = sub[i]
	count := int(sub[i+1])
	i += 2
	if len(sub) < i+count*4 {
		return m, truncated(len(sub), "tuning note change shorter than its count")
	}
	for k := 0; k < count; k++ {
		entry := sub[i+k*4 : i+k*4+4]
		t := NoteTuning{Note: entry[0]}
		if entry[1] == 0x7F && entry[2] == 0x7F && entry[3] == 0x7F {
			t.NoChange = true
		} else {
			t.Semitone = entry[1]
			t.Fraction = From14Bit(entry[3], entry[2])
		}
		m.Changes = append(m.Changes, t)
	}
	return m, nil
}

// append21 appends a 21-bit value as three 7-bit bytes, LSB first.
// Values above 0x1FFFFF saturate.
func append21(dst []byte, x uint32) []byte {
	if x > 0x1FFFFF {
		x = 0x1FFFFF
	}
	return append(dst, uint8(x&0x7F), uint8(x>>7&0x7F), uint8(x>>14&0x7F))
}

func from21(b []byte) uint32 {
	return uint32(b[0]&0x7F) | uint32(b[1]&0x7F)<<7 | uint32(b[2]&0x7F)<<14
}
