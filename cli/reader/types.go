// Package reader provides the read-side data access layer for the midiwire CLI.
//
// This package isolates file loading and event flattening from command
// plumbing. All read-only commands use this wrapper exclusively.
package reader

// FileResponse is a deep view of a Standard MIDI File.
type FileResponse struct {
	Path     string         `json:"path"`
	Size     int            `json:"size"`
	Format   string         `json:"format"`
	Division string         `json:"division"`
	Tracks   []TrackSummary `json:"tracks"`
}

// TrackSummary is a per-chunk summary within a FileResponse.
type TrackSummary struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Events   int    `json:"events"`
	Channels []int  `json:"channels,omitempty"`
	Alien    bool   `json:"alien,omitempty"`
	RawBytes int    `json:"raw_bytes,omitempty"`
}

// EventRecord is one decoded track event flattened for listing and export.
// Tick is the absolute time in division units, accumulated from deltas.
type EventRecord struct {
	Track  int    `json:"track" msgpack:"track"`
	Delta  uint32 `json:"delta" msgpack:"delta"`
	Tick   uint64 `json:"tick" msgpack:"tick"`
	Kind   string `json:"kind" msgpack:"kind"`
	Detail string `json:"detail,omitempty" msgpack:"detail,omitempty"`
}
