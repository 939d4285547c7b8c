package midi

import (
	"bytes"
	"testing"
)

func TestSysEx_Manufacturer(t *testing.T) {
	msg := SystemExclusive{Msg: ManufacturerSysEx{
		ID:   ManufacturerID{First: 1},
		Data: []byte{0x7F, 0x77, 0x00},
	}}
	want := []byte{0xF0, 0x01, 0x7F, 0x77, 0x00, 0xF7}
	got := msg.Append(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}

	back, n, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != len(want) {
		t.Errorf("consumed = %d, want %d", n, len(want))
	}
	se := back.(SystemExclusive).Msg.(ManufacturerSysEx)
	if se.ID != (ManufacturerID{First: 1}) {
		t.Errorf("id = %+v", se.ID)
	}
	if !bytes.Equal(se.Data, []byte{0x7F, 0x77, 0x00}) {
		t.Errorf("data = %#v", se.Data)
	}
}

func TestSysEx_ExtendedManufacturerID(t *testing.T) {
	msg := SystemExclusive{Msg: ManufacturerSysEx{
		ID:   ManufacturerID{First: 0x01, Second: 0x32, Extended: true},
		Data: []byte{0x33},
	}}
	want := []byte{0xF0, 0x00, 0x01, 0x32, 0x33, 0xF7}
	got := msg.Append(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
	back, _, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	se := back.(SystemExclusive).Msg.(ManufacturerSysEx)
	if !se.ID.Extended || se.ID.First != 0x01 || se.ID.Second != 0x32 {
		t.Errorf("id = %+v", se.ID)
	}
}

func TestSysEx_NonCommercial(t *testing.T) {
	msg := SystemExclusive{Msg: NonCommercialSysEx{Data: []byte{1, 2, 3}}}
	want := []byte{0xF0, 0x7D, 1, 2, 3, 0xF7}
	got := msg.Append(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
}

func TestSysEx_MasterVolume(t *testing.T) {
	msg := SystemExclusive{Msg: UniversalRealTime{Device: DeviceID(3), Msg: MasterVolume{Volume: 1000}}}
	want := []byte{0xF0, 0x7F, 0x03, 0x04, 0x01, 0x68, 0x07, 0xF7}
	got := msg.Append(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
	back, _, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	urt := back.(SystemExclusive).Msg.(UniversalRealTime)
	if urt.Device != 3 {
		t.Errorf("device = %d, want 3", urt.Device)
	}
	if mv := urt.Msg.(MasterVolume); mv.Volume != 1000 {
		t.Errorf("volume = %d, want 1000", mv.Volume)
	}
}

func TestSysEx_DumpEOF(t *testing.T) {
	msg := SystemExclusive{Msg: UniversalNonRealTime{Device: DeviceAllCall, Msg: DumpEOF{}}}
	want := []byte{0xF0, 0x7E, 0x7F, 0x7B, 0x00, 0xF7}
	if got := msg.Append(nil); !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
}

func TestSysEx_SampleDumpPacketChecksum(t *testing.T) {
	msg := SystemExclusive{Msg: UniversalNonRealTime{
		Device: DeviceID(0),
		Msg:    SampleDumpPacket{Packet: 5, Data: []byte{1, 2, 3}},
	}}
	got := msg.Append(nil)
	want := []byte{0xF0, 0x7E, 0x00, 0x02, 0x05, 0x01, 0x02, 0x03, 0x79, 0xF7}
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
	back, _, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	pkt := back.(SystemExclusive).Msg.(UniversalNonRealTime).Msg.(SampleDumpPacket)
	if pkt.Packet != 5 || !bytes.Equal(pkt.Data, []byte{1, 2, 3}) {
		t.Errorf("packet = %+v", pkt)
	}
}

func TestSysEx_IdentityReplyRoundTrip(t *testing.T) {
	reply := IdentityReply{
		ID:               ManufacturerID{First: 0x42},
		Family:           517,
		FamilyMember:     9,
		SoftwareRevision: [4]uint8{1, 0, 3, 7},
	}
	msg := SystemExclusive{Msg: UniversalNonRealTime{Device: DeviceAllCall, Msg: reply}}
	raw := msg.Append(nil)
	back, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := back.(SystemExclusive).Msg.(UniversalNonRealTime).Msg.(IdentityReply)
	if got != reply {
		t.Errorf("round trip = %+v, want %+v", got, reply)
	}
}

func TestSysEx_TuningNoteChange(t *testing.T) {
	msg := SystemExclusive{Msg: UniversalRealTime{
		Device: DeviceAllCall,
		Msg: TuningNoteChange{
			Program: 5,
			Changes: []NoteTuning{
				{Note: 0x01, Semitone: 0x01, Fraction: 255},
				{Note: 0x33, Semitone: 0x33, Fraction: 511},
				{Note: 0x45, NoChange: true},
			},
		},
	}}
	want := []byte{
		0xF0, 0x7F, 0x7F, 0x08, 0x02, 0x05, 3,
		0x01, 0x01, 0x01, 0x7F,
		0x33, 0x33, 0x03, 0x7F,
		0x45, 0x7F, 0x7F, 0x7F,
		0xF7,
	}
	got := msg.Append(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("Append = %#v, want %#v", got, want)
	}
	back, _, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	tc := back.(SystemExclusive).Msg.(UniversalRealTime).Msg.(TuningNoteChange)
	if len(tc.Changes) != 3 || tc.Changes[1].Fraction != 511 || !tc.Changes[2].NoChange {
		t.Errorf("decoded = %+v", tc)
	}
}

func TestSysEx_FullTimeCodeUpdatesContext(t *testing.T) {
	code := TimeCode{Frames: 10, Seconds: 30, Minutes: 45, Hours: 12, Rate: FPS25}
	msg := SystemExclusive{Msg: UniversalRealTime{Device: DeviceAllCall, Msg: FullTimeCode{Code: code}}}
	raw := msg.Append(nil)

	ctx := NewReceiverContext()
	back, _, err := DecodeWithContext(raw, ctx)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := back.(SystemExclusive).Msg.(UniversalRealTime).Msg.(FullTimeCode)
	if got.Code != code {
		t.Errorf("code = %+v, want %+v", got.Code, code)
	}
	if ctx.TimeCode() != code {
		t.Errorf("context time code = %+v, want %+v", ctx.TimeCode(), code)
	}
}

func TestSysEx_UnknownSubIDRoundTrips(t *testing.T) {
	raw := []byte{0xF0, 0x7E, 0x00, 0x42, 0x01, 0x02, 0xF7}
	m, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	unk := m.(SystemExclusive).Msg.(UniversalNonRealTime).Msg.(UniversalUnknown)
	if unk.SubID != 0x42 || !bytes.Equal(unk.Data, []byte{0x01, 0x02}) {
		t.Errorf("unknown = %+v", unk)
	}
	if got := m.Append(nil); !bytes.Equal(got, raw) {
		t.Errorf("re-encode = %#v, want %#v", got, raw)
	}
}

func TestSysEx_ImplicitTermination(t *testing.T) {
	stream := []byte{0xF0, 0x01, 0x02, 0x90, 0x3C, 0x40}
	m, n, err := Decode(stream)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 3 {
		t.Errorf("consumed = %d, want 3", n)
	}
	se := m.(SystemExclusive).Msg.(ManufacturerSysEx)
	if !bytes.Equal(se.Data, []byte{0x02}) {
		t.Errorf("data = %#v", se.Data)
	}

	next, _, err := Decode(stream[n:])
	if err != nil {
		t.Fatalf("Decode of following message failed: %v", err)
	}
	if next != (ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 0x3C, Velocity: 0x40}}) {
		t.Errorf("following message = %#v", next)
	}
}

func TestSysEx_Unterminated(t *testing.T) {
	_, _, err := Decode([]byte{0xF0, 0x01, 0x02})
	if !IsTruncated(err) {
		t.Fatalf("err = %v, want truncated", err)
	}
}
