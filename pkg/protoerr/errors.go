// Package protoerr provides the structured error taxonomy shared by the
// h1, p2, and s5 codecs.
package protoerr

import (
	"fmt"
	"strings"
)

// Kind categorizes an error per the recovery policy each subsystem follows:
// nothing is retried inside the core, and the caller decides what to do
// with the stream based on Kind.
type Kind string

const (
	// KindProtocolViolation means the bytes on the wire were malformed.
	// The caller typically closes the stream.
	KindProtocolViolation Kind = "protocol_violation"
	// KindSemanticRejection means the message was well-formed but
	// disallowed (unsupported version, auth failure). The stream may
	// still be reusable for a rejection reply.
	KindSemanticRejection Kind = "semantic_rejection"
	// KindResourceLimit means a size limit was exceeded (header too
	// large, domain name too long). Reported as a protocol violation
	// per spec, kept distinct here for callers that want to log it
	// differently.
	KindResourceLimit Kind = "resource_limit"
	// KindIO means the underlying stream returned an error; it is
	// propagated verbatim via Cause.
	KindIO Kind = "io"
	// KindTimeout is used only by the SOCKS5 handshake deadline.
	KindTimeout Kind = "timeout"
)

// Error is the single structured error type for all three codecs.
type Error struct {
	Subsystem string // "h1", "p2", "s5"
	Kind      Kind
	Code      string // stable short identifier, e.g. "invalid_signature"
	Op        string // operation that failed: "parse", "read", "write", ...
	Message   string
	Cause     error
}

// New constructs an Error. Cause may be nil.
func New(subsystem string, kind Kind, code, op, message string, cause error) *Error {
	return &Error{
		Subsystem: subsystem,
		Kind:      kind,
		Code:      code,
		Op:        op,
		Message:   message,
		Cause:     cause,
	}
}

// Error implements the error interface.
// Format: [subsystem:kind] op code: message: cause
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s:%s]", e.Subsystem, e.Kind))
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	msg := strings.Join(parts, " ")
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Subsystem and Code, so callers can do
// errors.Is(err, p2.ErrInvalidSignature) without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Subsystem == t.Subsystem && e.Code == t.Code
}

// KindOf returns the Kind of err if it is (or wraps) a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !asError(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// IsTimeout reports whether err is a timeout error from the core.
func IsTimeout(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindTimeout
}

// asError is a small local errors.As to avoid importing errors just for
// this one call site in multiple packages.
func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
