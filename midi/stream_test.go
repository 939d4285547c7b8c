package midi

import (
	"bytes"
	"io"
	"testing"
)

func collect(t *testing.T, dec *Decoder) []Message {
	t.Helper()
	var msgs []Message
	for {
		m, err := dec.Next()
		if err == io.EOF {
			return msgs
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		msgs = append(msgs, m)
	}
}

func TestDecoder_RunningStatus(t *testing.T) {
	stream := []byte{0x93, 0x66, 0x70, 0x55, 0x60}
	msgs := collect(t, NewDecoder(stream))
	want := []Message{
		ChannelVoice{Channel: Ch4, Msg: NoteOn{Note: 0x66, Velocity: 0x70}},
		ChannelVoice{Channel: Ch4, Msg: NoteOn{Note: 0x55, Velocity: 0x60}},
	}
	if len(msgs) != len(want) {
		t.Fatalf("len(msgs) = %d, want %d", len(msgs), len(want))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("msgs[%d] = %#v, want %#v", i, msgs[i], want[i])
		}
	}
}

func TestDecode_RunningStatusWithoutContext(t *testing.T) {
	_, _, err := Decode([]byte{0x55, 0x60})
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err type = %T, want *ParseError", err)
	}
	if perr.Kind != KindUnexpectedStatusByte {
		t.Errorf("kind = %v, want unexpected status byte", perr.Kind)
	}
}

func TestDecoder_InterleavedRealTime(t *testing.T) {
	stream := []byte{0x93, 0x66, 0xF8, 0x70}
	msgs := collect(t, NewDecoder(stream))
	want := []Message{
		SystemRealTime{Msg: TimingClock},
		ChannelVoice{Channel: Ch4, Msg: NoteOn{Note: 0x66, Velocity: 0x70}},
	}
	if len(msgs) != len(want) {
		t.Fatalf("len(msgs) = %d, want %d", len(msgs), len(want))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("msgs[%d] = %#v, want %#v", i, msgs[i], want[i])
		}
	}
}

func TestDecoder_RealTimeInsideSysEx(t *testing.T) {
	stream := []byte{0xF0, 0x01, 0xFE, 0x02, 0xF7}
	msgs := collect(t, NewDecoder(stream))
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0] != (SystemRealTime{Msg: ActiveSensing}) {
		t.Errorf("msgs[0] = %#v, want active sensing", msgs[0])
	}
	se := msgs[1].(SystemExclusive).Msg.(ManufacturerSysEx)
	if !bytes.Equal(se.Data, []byte{0x02}) {
		t.Errorf("sysex data = %#v, want [0x02]", se.Data)
	}
}

func TestDecoder_StickyError(t *testing.T) {
	dec := NewDecoder([]byte{0x93, 0x66}) // truncated
	_, err := dec.Next()
	if !IsTruncated(err) {
		t.Fatalf("err = %v, want truncated", err)
	}
	_, err2 := dec.Next()
	if err2 != err {
		t.Errorf("second err = %v, want the same error", err2)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	if _, err := NewDecoder(nil).Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestEncoder_RunningStatus(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}},
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 64, Velocity: 100}},
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 67, Velocity: 100}},
	}
	got := EncodeMessages(msgs)
	want := []byte{0x90, 60, 100, 64, 100, 67, 100}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeMessages = %#v, want %#v", got, want)
	}

	back, err := DecodeMessages(got)
	if err != nil {
		t.Fatalf("DecodeMessages failed: %v", err)
	}
	if len(back) != len(msgs) {
		t.Fatalf("len(back) = %d, want %d", len(back), len(msgs))
	}
	for i := range msgs {
		if back[i] != msgs[i] {
			t.Errorf("back[%d] = %#v, want %#v", i, back[i], msgs[i])
		}
	}
}

func TestEncoder_StatusChangeReemits(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}},
		ChannelVoice{Channel: Ch2, Msg: NoteOn{Note: 60, Velocity: 100}},
	}
	got := EncodeMessages(msgs)
	want := []byte{0x90, 60, 100, 0x91, 60, 100}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMessages = %#v, want %#v", got, want)
	}
}

func TestEncoder_SystemCommonClearsRunningStatus(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}},
		SystemCommon{Msg: TuneRequest{}},
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 64, Velocity: 100}},
	}
	got := EncodeMessages(msgs)
	want := []byte{0x90, 60, 100, 0xF6, 0x90, 64, 100}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMessages = %#v, want %#v", got, want)
	}
}

func TestEncoder_RealTimeKeepsRunningStatus(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}},
		SystemRealTime{Msg: TimingClock},
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 64, Velocity: 100}},
	}
	got := EncodeMessages(msgs)
	want := []byte{0x90, 60, 100, 0xF8, 64, 100}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMessages = %#v, want %#v", got, want)
	}
}

func TestEncoder_ChannelModeSharesRunningStatus(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch3, Msg: ControlChange{Control: Volume, Value: 90}},
		ChannelMode{Channel: Ch3, Msg: AllNotesOff{}},
	}
	got := EncodeMessages(msgs)
	want := []byte{0xB2, 7, 90, 123, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMessages = %#v, want %#v", got, want)
	}
}

func TestDecodeMessages_MixedStream(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch1, Msg: ProgramChange{Program: 5}},
		ChannelMode{Channel: Ch1, Msg: AllSoundOff{}},
		SystemCommon{Msg: SongPosition{Beats: 96}},
		SystemExclusive{Msg: NonCommercialSysEx{Data: []byte{9}}},
		SystemRealTime{Msg: Start},
		ChannelVoice{Channel: Ch16, Msg: PitchBend{Bend: 100}},
	}
	raw := EncodeMessages(msgs)
	back, err := DecodeMessages(raw)
	if err != nil {
		t.Fatalf("DecodeMessages failed: %v", err)
	}
	if len(back) != len(msgs) {
		t.Fatalf("len(back) = %d, want %d", len(back), len(msgs))
	}
	for i, m := range msgs {
		switch wantMsg := m.(type) {
		case SystemExclusive:
			gotSE := back[i].(SystemExclusive).Msg.(NonCommercialSysEx)
			if !bytes.Equal(gotSE.Data, wantMsg.Msg.(NonCommercialSysEx).Data) {
				t.Errorf("back[%d] sysex data = %#v", i, gotSE.Data)
			}
		default:
			if back[i] != m {
				t.Errorf("back[%d] = %#v, want %#v", i, back[i], m)
			}
		}
	}
}
