// Package metrics provides per-invocation metrics collection for the codec.
//
// The Collector accumulates counters while a file or stream is decoded. It is
// a leaf package with no internal dependencies. Event kind tallies are
// recorded live as the reader walks decoded tracks; byte totals are set once
// after encode, avoiding double-counting on round trips.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all collected metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Container
	TracksDecoded int64
	AlienChunks   int64

	// Events
	EventsDecoded int64
	EventsByKind  map[string]int64
	SysExBytes    int64

	// Errors
	ParseErrors       int64
	ParseErrorsByKind map[string]int64

	// Byte totals. BytesOut is the re-encoded size, so the delta against
	// BytesIn shows running-status and header normalization savings.
	BytesIn  int64
	BytesOut int64

	// Dimensions (informational, set at construction)
	Source  string
	Command string
}

// Collector accumulates metrics during a single CLI invocation.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	tracksDecoded int64
	alienChunks   int64

	eventsDecoded int64
	eventsByKind  map[string]int64
	sysexBytes    int64

	parseErrors       int64
	parseErrorsByKind map[string]int64

	bytesIn  int64
	bytesOut int64

	// Dimensions
	source  string
	command string
}

// NewCollector creates a Collector with dimension labels.
// source is the input path or "-" for stdin; command is the CLI command name.
func NewCollector(source, command string) *Collector {
	return &Collector{
		eventsByKind:      make(map[string]int64),
		parseErrorsByKind: make(map[string]int64),
		source:            source,
		command:           command,
	}
}

// IncTrackDecoded records a successfully decoded MTrk chunk.
func (c *Collector) IncTrackDecoded() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tracksDecoded++
	c.mu.Unlock()
}

// IncAlienChunk records a non-MTrk chunk carried through verbatim.
func (c *Collector) IncAlienChunk() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.alienChunks++
	c.mu.Unlock()
}

// ObserveEvent records one decoded event under its kind label.
func (c *Collector) ObserveEvent(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.eventsDecoded++
	c.eventsByKind[kind]++
	c.mu.Unlock()
}

// AddSysExBytes records system exclusive payload bytes.
func (c *Collector) AddSysExBytes(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.sysexBytes += int64(n)
	c.mu.Unlock()
}

// IncParseError records a decode failure under its kind label.
func (c *Collector) IncParseError(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.parseErrors++
	c.parseErrorsByKind[kind]++
	c.mu.Unlock()
}

// AddBytesIn records input bytes consumed.
func (c *Collector) AddBytesIn(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bytesIn += int64(n)
	c.mu.Unlock()
}

// AddBytesOut records re-encoded output bytes.
func (c *Collector) AddBytesOut(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bytesOut += int64(n)
	c.mu.Unlock()
}

// Snapshot returns an immutable copy of all counters.
// Map fields are deep-copied so later increments do not leak into the snapshot.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{
			EventsByKind:      map[string]int64{},
			ParseErrorsByKind: map[string]int64{},
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byKind := make(map[string]int64, len(c.eventsByKind))
	for k, v := range c.eventsByKind {
		byKind[k] = v
	}
	errByKind := make(map[string]int64, len(c.parseErrorsByKind))
	for k, v := range c.parseErrorsByKind {
		errByKind[k] = v
	}

	return Snapshot{
		TracksDecoded:     c.tracksDecoded,
		AlienChunks:       c.alienChunks,
		EventsDecoded:     c.eventsDecoded,
		EventsByKind:      byKind,
		SysExBytes:        c.sysexBytes,
		ParseErrors:       c.parseErrors,
		ParseErrorsByKind: errByKind,
		BytesIn:           c.bytesIn,
		BytesOut:          c.bytesOut,
		Source:            c.source,
		Command:           c.command,
	}
}
