package reader

import (
	"fmt"

	"github.com/pithecene-io/midiwire/midi"
	"github.com/pithecene-io/midiwire/smf"
)

// Describe renders a track event as a stable kind label plus a
// human-readable detail string. Kind labels are snake_case and feed
// both the events listing and the stats tallies.
func Describe(ev smf.Event) (kind, detail string) {
	switch e := ev.(type) {
	case smf.MidiEvent:
		return DescribeMessage(e.Msg)
	case smf.SequenceNumber:
		return "sequence_number", fmt.Sprintf("%d", e.Number)
	case smf.Text:
		return "text", e.Text
	case smf.Copyright:
		return "copyright", e.Text
	case smf.TrackName:
		return "track_name", e.Text
	case smf.InstrumentName:
		return "instrument_name", e.Text
	case smf.Lyric:
		return "lyric", e.Text
	case smf.Marker:
		return "marker", e.Text
	case smf.CuePoint:
		return "cue_point", e.Text
	case smf.ChannelPrefix:
		return "channel_prefix", fmt.Sprintf("ch %d", int(e.Channel)+1)
	case smf.EndOfTrack:
		return "end_of_track", ""
	case smf.Tempo:
		return "tempo", fmt.Sprintf("%.2f bpm", e.BPM())
	case smf.SMPTEOffset:
		c := e.Code
		return "smpte_offset", fmt.Sprintf("%02d:%02d:%02d:%02d.%02d %s",
			c.Hours, c.Minutes, c.Seconds, c.Frames, e.FractionalFrames, c.Rate)
	case smf.TimeSignature:
		return "time_signature", fmt.Sprintf("%d/%d", e.Numerator, e.Denominator)
	case smf.KeySignature:
		return "key_signature", keySignatureDetail(e)
	case smf.SequencerSpecific:
		return "sequencer_specific", fmt.Sprintf("%d bytes", len(e.Data))
	case smf.MetaUnknown:
		return "meta_unknown", fmt.Sprintf("type 0x%02X, %d bytes", e.Type, len(e.Data))
	default:
		return "unknown", ""
	}
}

// DescribeMessage renders a wire message as a kind label plus detail.
func DescribeMessage(m midi.Message) (kind, detail string) {
	switch msg := m.(type) {
	case midi.ChannelVoice:
		kind, detail = describeVoice(msg.Msg)
		return kind, fmt.Sprintf("ch %d, %s", int(msg.Channel)+1, detail)
	case midi.ChannelMode:
		kind = describeMode(msg.Msg)
		return kind, fmt.Sprintf("ch %d", int(msg.Channel)+1)
	case midi.SystemCommon:
		return describeCommon(msg.Msg)
	case midi.SystemRealTime:
		return "realtime", msg.Msg.String()
	case midi.SystemExclusive:
		return describeSysEx(msg)
	default:
		return "unknown", ""
	}
}

func describeVoice(v midi.VoiceMessage) (kind, detail string) {
	switch msg := v.(type) {
	case midi.NoteOff:
		return "note_off", fmt.Sprintf("note %d, vel %d", msg.Note, msg.Velocity)
	case midi.NoteOn:
		return "note_on", fmt.Sprintf("note %d, vel %d", msg.Note, msg.Velocity)
	case midi.PolyPressure:
		return "poly_pressure", fmt.Sprintf("note %d, pressure %d", msg.Note, msg.Pressure)
	case midi.ControlChange:
		return "control_change", fmt.Sprintf("%s = %d", msg.Control, msg.Value)
	case midi.ProgramChange:
		return "program_change", fmt.Sprintf("program %d", msg.Program)
	case midi.ChannelPressure:
		return "channel_pressure", fmt.Sprintf("pressure %d", msg.Pressure)
	case midi.PitchBend:
		return "pitch_bend", fmt.Sprintf("%+d", msg.Bend)
	default:
		return "channel_voice", ""
	}
}

func describeMode(v midi.ModeMessage) string {
	switch v.(type) {
	case midi.AllSoundOff:
		return "all_sound_off"
	case midi.ResetAllControllers:
		return "reset_all_controllers"
	case midi.LocalControl:
		return "local_control"
	case midi.AllNotesOff:
		return "all_notes_off"
	case midi.OmniMode:
		return "omni_mode"
	case midi.MonoMode:
		return "mono_mode"
	case midi.PolyMode:
		return "poly_mode"
	default:
		return "channel_mode"
	}
}

func describeCommon(v midi.CommonMessage) (kind, detail string) {
	switch msg := v.(type) {
	case midi.TimeCodeQuarterFrame:
		return "quarter_frame", fmt.Sprintf("piece %d", msg.Piece)
	case midi.SongPosition:
		return "song_position", fmt.Sprintf("beat %d", msg.Beats)
	case midi.SongSelect:
		return "song_select", fmt.Sprintf("song %d", msg.Song)
	case midi.TuneRequest:
		return "tune_request", ""
	default:
		return "system_common", ""
	}
}

func describeSysEx(m midi.SystemExclusive) (kind, detail string) {
	// Body length excludes the F0/F7 frame.
	bodyLen := len(m.Append(nil)) - 2

	switch msg := m.Msg.(type) {
	case midi.UniversalRealTime:
		return "sysex_universal_rt", fmt.Sprintf("device %d, %d bytes", msg.Device, bodyLen)
	case midi.UniversalNonRealTime:
		return "sysex_universal", fmt.Sprintf("device %d, %d bytes", msg.Device, bodyLen)
	case midi.NonCommercialSysEx:
		return "sysex_noncommercial", fmt.Sprintf("%d bytes", bodyLen)
	case midi.ManufacturerSysEx:
		return "sysex", fmt.Sprintf("manufacturer %s, %d bytes", manufacturerString(msg.ID), bodyLen)
	default:
		return "sysex", fmt.Sprintf("%d bytes", bodyLen)
	}
}

func manufacturerString(id midi.ManufacturerID) string {
	if id.Extended {
		return fmt.Sprintf("00 %02X %02X", id.First, id.Second)
	}
	return fmt.Sprintf("%02X", id.First)
}

func keySignatureDetail(k smf.KeySignature) string {
	mode := "major"
	if k.Minor {
		mode = "minor"
	}
	switch {
	case k.SharpsFlats > 0:
		return fmt.Sprintf("%d sharps, %s", k.SharpsFlats, mode)
	case k.SharpsFlats < 0:
		return fmt.Sprintf("%d flats, %s", -k.SharpsFlats, mode)
	default:
		return fmt.Sprintf("no accidentals, %s", mode)
	}
}
