package midi

// SystemCommon is a system common message: channel-less messages with
// status bytes 0xF1-0xF6.
type SystemCommon struct {
	Msg CommonMessage
}

func (SystemCommon) isMessage() {}

// Append appends the message to dst.
func (m SystemCommon) Append(dst []byte) []byte {
	return m.Msg.appendCommon(dst)
}

// CommonMessage is the payload of a SystemCommon message.
type CommonMessage interface {
	appendCommon(dst []byte) []byte
}

// TimeCodeQuarterFrame carries one of the eight pieces of a time code.
// Piece selects which nibble of Code is sent; a full time code takes
// eight quarter frames, sent four per frame.
type TimeCodeQuarterFrame struct {
	// Piece is the quarter-frame index in [0, 7].
	Piece uint8
	Code  TimeCode
}

func (m TimeCodeQuarterFrame) appendCommon(dst []byte) []byte {
	nib := m.Code.nibbles()
	return append(dst, 0xF1, nib[m.Piece&0x07])
}

// SongPosition sets the playback position in MIDI beats, one beat
// being six timing clocks.
type SongPosition struct {
	Beats uint16
}

func (m SongPosition) appendCommon(dst []byte) []byte {
	lsb, msb := To14Bit(m.Beats)
	return append(dst, 0xF2, lsb, msb)
}

// SongSelect selects a song or sequence by number.
type SongSelect struct {
	Song uint8
}

func (m SongSelect) appendCommon(dst []byte) []byte {
	return append(dst, 0xF3, To7Bit(m.Song))
}

// TuneRequest asks analog synthesizers to tune their oscillators.
type TuneRequest struct{}

func (TuneRequest) appendCommon(dst []byte) []byte {
	return append(dst, 0xF6)
}

// decodeSystemCommon decodes the data bytes of a system common
// message. The status byte has already been consumed.
func decodeSystemCommon(s *scanner, status uint8, ctx *ReceiverContext) (Message, error) {
	switch status {
	case 0xF1:
		b, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		piece := ctx.timeCode.extend(b)
		return SystemCommon{Msg: TimeCodeQuarterFrame{Piece: piece, Code: ctx.timeCode}}, nil
	case 0xF2:
		lsb, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		msb, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return SystemCommon{Msg: SongPosition{Beats: From14Bit(lsb, msb)}}, nil
	case 0xF3:
		song, err := s.dataByte()
		if err != nil {
			return nil, err
		}
		return SystemCommon{Msg: SongSelect{Song: song}}, nil
	case 0xF6:
		return SystemCommon{Msg: TuneRequest{}}, nil
	default:
		return nil, malformed(s.pos-1, "undefined system common status byte")
	}
}
