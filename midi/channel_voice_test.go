package midi

import (
	"bytes"
	"testing"
)

func TestChannelVoice_Encode(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want []byte
	}{
		{"note on", ChannelVoice{Channel: Ch4, Msg: NoteOn{Note: 0x66, Velocity: 0x70}}, []byte{0x93, 0x66, 0x70}},
		{"note off", ChannelVoice{Channel: Ch1, Msg: NoteOff{Note: 60, Velocity: 0x40}}, []byte{0x80, 60, 0x40}},
		{"poly pressure", ChannelVoice{Channel: Ch16, Msg: PolyPressure{Note: 60, Pressure: 53}}, []byte{0xAF, 60, 53}},
		{"control change", ChannelVoice{Channel: Ch2, Msg: ControlChange{Control: Volume, Value: 100}}, []byte{0xB1, 7, 100}},
		{"program change", ChannelVoice{Channel: Ch1, Msg: ProgramChange{Program: 42}}, []byte{0xC0, 42}},
		{"channel pressure", ChannelVoice{Channel: Ch3, Msg: ChannelPressure{Pressure: 9}}, []byte{0xD2, 9}},
		{"pitch bend center", ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: 0}}, []byte{0xE0, 0x00, 0x40}},
		{"pitch bend min", ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: -8192}}, []byte{0xE0, 0x00, 0x00}},
		{"pitch bend max", ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: 8191}}, []byte{0xE0, 0x7F, 0x7F}},
	}
	for _, c := range cases {
		if got := c.msg.Append(nil); !bytes.Equal(got, c.want) {
			t.Errorf("%s: Append = %#v, want %#v", c.name, got, c.want)
		}
	}
}

func TestChannelVoice_EncodeSaturates(t *testing.T) {
	got := ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 0xFF, Velocity: 0x90}}.Append(nil)
	want := []byte{0x90, 127, 127}
	if !bytes.Equal(got, want) {
		t.Errorf("Append = %#v, want %#v", got, want)
	}
}

func TestChannelVoice_Decode(t *testing.T) {
	m, n, err := Decode([]byte{0x93, 0x66, 0x70})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 3 {
		t.Errorf("consumed = %d, want 3", n)
	}
	cv, ok := m.(ChannelVoice)
	if !ok {
		t.Fatalf("message type = %T, want ChannelVoice", m)
	}
	if cv.Channel != Ch4 {
		t.Errorf("channel = %d, want %d", cv.Channel, Ch4)
	}
	on, ok := cv.Msg.(NoteOn)
	if !ok {
		t.Fatalf("payload type = %T, want NoteOn", cv.Msg)
	}
	if on.Note != 0x66 || on.Velocity != 0x70 {
		t.Errorf("NoteOn = %+v, want note 0x66 velocity 0x70", on)
	}
}

func TestChannelVoice_DecodeTruncated(t *testing.T) {
	_, _, err := Decode([]byte{0x93, 0x66})
	if !IsTruncated(err) {
		t.Fatalf("err = %v, want truncated", err)
	}
}

func TestChannelVoice_DecodeStatusInData(t *testing.T) {
	_, _, err := Decode([]byte{0x93, 0x93, 0x70})
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err type = %T, want *ParseError", err)
	}
	if perr.Kind != KindUnexpectedStatusByte {
		t.Errorf("kind = %v, want unexpected status byte", perr.Kind)
	}
	if perr.Offset != 1 {
		t.Errorf("offset = %d, want 1", perr.Offset)
	}
}

func TestChannelVoice_RoundTrip(t *testing.T) {
	msgs := []Message{
		ChannelVoice{Channel: Ch7, Msg: NoteOff{Note: 12, Velocity: 64}},
		ChannelVoice{Channel: Ch10, Msg: PitchBend{Bend: -1234}},
		ChannelVoice{Channel: Ch1, Msg: ControlChange{Control: ModWheel, Value: 99}},
	}
	for _, want := range msgs {
		raw := want.Append(nil)
		got, n, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%#v) failed: %v", raw, err)
		}
		if n != len(raw) {
			t.Errorf("consumed = %d, want %d", n, len(raw))
		}
		if got != want {
			t.Errorf("round trip = %#v, want %#v", got, want)
		}
	}
}

func TestChannelMode_Encode(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want []byte
	}{
		{"all sound off", ChannelMode{Channel: Ch3, Msg: AllSoundOff{}}, []byte{0xB2, 120, 0}},
		{"reset all controllers", ChannelMode{Channel: Ch3, Msg: ResetAllControllers{}}, []byte{0xB2, 121, 0}},
		{"local control on", ChannelMode{Channel: Ch3, Msg: LocalControl{On: true}}, []byte{0xB2, 122, 127}},
		{"local control off", ChannelMode{Channel: Ch3, Msg: LocalControl{On: false}}, []byte{0xB2, 122, 0}},
		{"all notes off", ChannelMode{Channel: Ch3, Msg: AllNotesOff{}}, []byte{0xB2, 123, 0}},
		{"omni off", ChannelMode{Channel: Ch3, Msg: OmniMode{On: false}}, []byte{0xB2, 124, 0}},
		{"omni on", ChannelMode{Channel: Ch3, Msg: OmniMode{On: true}}, []byte{0xB2, 125, 0}},
		{"mono mode", ChannelMode{Channel: Ch3, Msg: MonoMode{Channels: 4}}, []byte{0xB2, 126, 4}},
		{"poly mode", ChannelMode{Channel: Ch3, Msg: PolyMode{}}, []byte{0xB2, 127, 0}},
	}
	for _, c := range cases {
		got := c.msg.Append(nil)
		if !bytes.Equal(got, c.want) {
			t.Errorf("%s: Append = %#v, want %#v", c.name, got, c.want)
		}
		back, _, err := Decode(got)
		if err != nil {
			t.Fatalf("%s: Decode failed: %v", c.name, err)
		}
		if back != c.msg {
			t.Errorf("%s: round trip = %#v, want %#v", c.name, back, c.msg)
		}
	}
}

func TestControlChange_ModeControlClamps(t *testing.T) {
	got := ChannelVoice{Channel: Ch1, Msg: ControlChange{Control: 125, Value: 1}}.Append(nil)
	want := []byte{0xB0, 119, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("Append = %#v, want %#v", got, want)
	}
}
