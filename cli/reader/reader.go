package reader

import (
	"fmt"
	"os"
	"sort"

	"github.com/pithecene-io/midiwire/metrics"
	"github.com/pithecene-io/midiwire/midi"
	"github.com/pithecene-io/midiwire/smf"
)

// ReadFile loads and decodes a Standard MIDI File from disk.
// Returns the decoded file and the raw input size in bytes.
func ReadFile(path string) (*smf.File, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read %q: %w", path, err)
	}

	f, err := smf.Decode(data)
	if err != nil {
		return nil, len(data), fmt.Errorf("decoding %q: %w", path, err)
	}

	return f, len(data), nil
}

// Summarize builds a FileResponse from a decoded file.
func Summarize(path string, f *smf.File, size int) *FileResponse {
	resp := &FileResponse{
		Path:     path,
		Size:     size,
		Format:   f.Header.Format.String(),
		Division: DivisionString(f.Header.Division),
		Tracks:   make([]TrackSummary, 0, len(f.Tracks)),
	}

	for i := range f.Tracks {
		resp.Tracks = append(resp.Tracks, summarizeTrack(i, &f.Tracks[i]))
	}

	return resp
}

func summarizeTrack(index int, t *smf.Track) TrackSummary {
	if t.Alien() {
		return TrackSummary{Index: index, Alien: true, RawBytes: len(t.Raw)}
	}

	s := TrackSummary{Index: index, Events: len(t.Events)}
	channels := map[int]bool{}
	for _, ev := range t.Events {
		switch e := ev.Event.(type) {
		case smf.TrackName:
			if s.Name == "" {
				s.Name = e.Text
			}
		case smf.MidiEvent:
			switch m := e.Msg.(type) {
			case midi.ChannelVoice:
				channels[int(m.Channel)+1] = true
			case midi.ChannelMode:
				channels[int(m.Channel)+1] = true
			}
		}
	}
	for ch := range channels {
		s.Channels = append(s.Channels, ch)
	}
	sort.Ints(s.Channels)
	return s
}

// DivisionString renders a timing division for display.
func DivisionString(d smf.Division) string {
	switch div := d.(type) {
	case smf.MetricalDivision:
		return fmt.Sprintf("%d ticks/quarter", uint16(div))
	case smf.SMPTEDivision:
		return fmt.Sprintf("SMPTE %s, %d ticks/frame", div.Rate, div.TicksPerFrame)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Events flattens decoded track events into records.
// track selects a single track index, or all tracks when negative.
// Alien chunks contribute no records.
func Events(f *smf.File, track int) []EventRecord {
	var records []EventRecord
	for i := range f.Tracks {
		if track >= 0 && i != track {
			continue
		}
		t := &f.Tracks[i]
		if t.Alien() {
			continue
		}

		var tick uint64
		for _, ev := range t.Events {
			tick += uint64(ev.Delta)
			kind, detail := Describe(ev.Event)
			records = append(records, EventRecord{
				Track:  i,
				Delta:  ev.Delta,
				Tick:   tick,
				Kind:   kind,
				Detail: detail,
			})
		}
	}
	return records
}

// Collect walks a decoded file and records its shape into c.
func Collect(f *smf.File, c *metrics.Collector) {
	for i := range f.Tracks {
		t := &f.Tracks[i]
		if t.Alien() {
			c.IncAlienChunk()
			continue
		}
		c.IncTrackDecoded()

		for _, ev := range t.Events {
			kind, _ := Describe(ev.Event)
			c.ObserveEvent(kind)

			if me, ok := ev.Event.(smf.MidiEvent); ok {
				if sx, ok := me.Msg.(midi.SystemExclusive); ok {
					// Full wire length minus the F0/F7 frame.
					c.AddSysExBytes(len(sx.Append(nil)) - 2)
				}
			}
		}
	}
}
