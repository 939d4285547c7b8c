package midi

// SystemExclusive is a system exclusive message: an arbitrary-length
// payload bracketed by 0xF0 and 0xF7 and addressed by a manufacturer
// or universal ID.
type SystemExclusive struct {
	Msg SysExMessage
}

func (SystemExclusive) isMessage() {}

// Append appends the full F0 ... F7 sequence to dst.
func (m SystemExclusive) Append(dst []byte) []byte {
	dst = append(dst, 0xF0)
	dst = m.Msg.appendBody(dst)
	return append(dst, 0xF7)
}

// SysExMessage is the payload of a SystemExclusive message.
type SysExMessage interface {
	// appendBody appends the bytes between F0 and F7.
	appendBody(dst []byte) []byte
}

// ManufacturerID identifies the manufacturer a commercial sysex
// message belongs to. One-byte IDs use First alone; extended IDs are
// sent as a 0x00 prefix followed by First and Second.
type ManufacturerID struct {
	First    uint8
	Second   uint8
	Extended bool
}

// appendID appends the one or three byte wire form. One-byte IDs are
// clamped to 0x7C; 0x7D-0x7F are reserved.
func (id ManufacturerID) appendID(dst []byte) []byte {
	if id.Extended {
		return append(dst, 0x00, To7Bit(id.First), To7Bit(id.Second))
	}
	return append(dst, minU8(id.First, 0x7C))
}

func decodeManufacturerID(body []byte) (ManufacturerID, int, error) {
	if body[0] != 0x00 {
		return ManufacturerID{First: body[0]}, 1, nil
	}
	if len(body) < 3 {
		return ManufacturerID{}, 0, truncated(len(body), "extended manufacturer id needs three bytes")
	}
	return ManufacturerID{First: body[1], Second: body[2], Extended: true}, 3, nil
}

// DeviceID addresses a device within a universal sysex message.
type DeviceID uint8

// DeviceAllCall addresses every device on the bus.
const DeviceAllCall DeviceID = 0x7F

func (d DeviceID) clamp() uint8 {
	return To7Bit(uint8(d))
}

// ManufacturerSysEx is a commercial message whose payload is defined
// by the identified manufacturer. Data is carried opaquely, each byte
// clamped to 7 bits on encode.
type ManufacturerSysEx struct {
	ID   ManufacturerID
	Data []byte
}

func (m ManufacturerSysEx) appendBody(dst []byte) []byte {
	dst = m.ID.appendID(dst)
	return appendData7(dst, m.Data)
}

// NonCommercialSysEx is a message under the 0x7D ID reserved for
// non-commercial use, such as schools and research.
type NonCommercialSysEx struct {
	Data []byte
}

func (m NonCommercialSysEx) appendBody(dst []byte) []byte {
	dst = append(dst, 0x7D)
	return appendData7(dst, m.Data)
}

// UniversalRealTime is a universal real-time message (ID 0x7F),
// targeted at a device.
type UniversalRealTime struct {
	Device DeviceID
	Msg    RealTimeSysEx
}

func (m UniversalRealTime) appendBody(dst []byte) []byte {
	dst = append(dst, 0x7F, m.Device.clamp())
	return m.Msg.appendSub(dst)
}

// UniversalNonRealTime is a universal non-real-time message (ID 0x7E),
// targeted at a device.
type UniversalNonRealTime struct {
	Device DeviceID
	Msg    NonRealTimeSysEx
}

func (m UniversalNonRealTime) appendBody(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, 0x7E, m.Device.clamp())
	dst = m.Msg.appendSub(dst)
	// Sample dump packets end in a checksum over all bytes after F0.
	if _, ok := m.Msg.(SampleDumpPacket); ok {
		dst[len(dst)-1] = xorChecksum(dst[start : len(dst)-1])
	}
	return dst
}

// RealTimeSysEx is a universal real-time sub-message.
type RealTimeSysEx interface {
	appendSub(dst []byte) []byte
}

// NonRealTimeSysEx is a universal non-real-time sub-message.
type NonRealTimeSysEx interface {
	appendSub(dst []byte) []byte
}

// DecodeSysEx decodes a sysex body: the bytes between the F0 and the
// terminating F7, exclusive of both. Unknown manufacturer payloads and
// unknown universal sub-IDs decode opaquely and round-trip unchanged.
func DecodeSysEx(body []byte, ctx *ReceiverContext) (SystemExclusive, error) {
	if len(body) == 0 {
		return SystemExclusive{}, truncated(0, "empty system exclusive body")
	}
	switch body[0] {
	case 0x7D:
		return SystemExclusive{Msg: NonCommercialSysEx{Data: cloneBytes(body[1:])}}, nil
	case 0x7E:
		if len(body) < 3 {
			return SystemExclusive{}, truncated(len(body), "universal sysex needs device and sub-id")
		}
		msg, err := decodeNonRealTimeSysEx(body[2:])
		if err != nil {
			return SystemExclusive{}, err
		}
		return SystemExclusive{Msg: UniversalNonRealTime{Device: DeviceID(body[1]), Msg: msg}}, nil
	case 0x7F:
		if len(body) < 3 {
			return SystemExclusive{}, truncated(len(body), "universal sysex needs device and sub-id")
		}
		msg, err := decodeRealTimeSysEx(body[2:], ctx)
		if err != nil {
			return SystemExclusive{}, err
		}
		return SystemExclusive{Msg: UniversalRealTime{Device: DeviceID(body[1]), Msg: msg}}, nil
	default:
		id, n, err := decodeManufacturerID(body)
		if err != nil {
			return SystemExclusive{}, err
		}
		return SystemExclusive{Msg: ManufacturerSysEx{ID: id, Data: cloneBytes(body[n:])}}, nil
	}
}

func appendData7(dst, data []byte) []byte {
	for _, b := range data {
		dst = append(dst, To7Bit(b))
	}
	return dst
}

func xorChecksum(b []byte) uint8 {
	var sum uint8
	for _, x := range b {
		sum ^= x
	}
	return sum & 0x7F
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
