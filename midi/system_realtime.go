package midi

// SystemRealTime is a single-byte system real-time message. These may
// appear anywhere in a stream, including between the bytes of another
// message.
type SystemRealTime struct {
	Msg RealTime
}

func (SystemRealTime) isMessage() {}

// Append appends the message to dst.
func (m SystemRealTime) Append(dst []byte) []byte {
	return append(dst, uint8(m.Msg))
}

// RealTime is a real-time status byte.
type RealTime uint8

const (
	// TimingClock is sent 24 times per quarter note.
	TimingClock RealTime = 0xF8
	// Start begins playback from the top of the song.
	Start RealTime = 0xFA
	// Continue resumes playback from the current song position.
	Continue RealTime = 0xFB
	// Stop pauses playback.
	Stop RealTime = 0xFC
	// ActiveSensing is a keep-alive, sent at most 300 ms apart.
	ActiveSensing RealTime = 0xFE
	// SystemReset returns the receiver to its power-up state.
	SystemReset RealTime = 0xFF
)

func (r RealTime) String() string {
	switch r {
	case TimingClock:
		return "timing clock"
	case Start:
		return "start"
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	case ActiveSensing:
		return "active sensing"
	case SystemReset:
		return "system reset"
	default:
		return "undefined real-time"
	}
}

// isRealTimeStatus reports whether b is a defined real-time status
// byte. 0xF9 and 0xFD are undefined and rejected by the decoder.
func isRealTimeStatus(b uint8) bool {
	switch RealTime(b) {
	case TimingClock, Start, Continue, Stop, ActiveSensing, SystemReset:
		return true
	}
	return false
}
