package midi

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies stream decoding errors.
type ParseErrorKind int

const (
	// KindTruncated indicates input that ended before a complete message.
	KindTruncated ParseErrorKind = iota
	// KindUnexpectedStatusByte indicates a status byte where a data byte
	// was required, or vice versa.
	KindUnexpectedStatusByte
	// KindInvalidHeader indicates a structurally invalid container header.
	KindInvalidHeader
	// KindMalformed indicates bytes that cannot form any valid message.
	KindMalformed
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindUnexpectedStatusByte:
		return "unexpected status byte"
	case KindInvalidHeader:
		return "invalid header"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ParseError represents a decoding error at a byte offset within the input.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsTruncated returns true if the error indicates input ended mid-message.
// Callers feeding a growing buffer can retry with more bytes.
func IsTruncated(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind == KindTruncated
	}
	return false
}

func truncated(offset int, msg string) *ParseError {
	return &ParseError{Kind: KindTruncated, Offset: offset, Msg: msg}
}

func unexpectedStatus(offset int, msg string) *ParseError {
	return &ParseError{Kind: KindUnexpectedStatusByte, Offset: offset, Msg: msg}
}

func malformed(offset int, msg string) *ParseError {
	return &ParseError{Kind: KindMalformed, Offset: offset, Msg: msg}
}
