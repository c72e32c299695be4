package h1

import "github.com/go-wireproxy/protocore/pkg/protoerr"

func newErr(kind protoerr.Kind, code, op, message string, cause error) *protoerr.Error {
	return protoerr.New("h1", kind, code, op, message, cause)
}

// Sentinel errors, matched via errors.Is against the Code/Subsystem pair.
var (
	ErrInvalidRequest   = newErr(protoerr.KindProtocolViolation, "invalid_request", "parse", "malformed request line", nil)
	ErrInvalidResponse  = newErr(protoerr.KindProtocolViolation, "invalid_response", "parse", "malformed status line", nil)
	ErrInvalidURI       = newErr(protoerr.KindProtocolViolation, "invalid_uri", "parse", "malformed request-target", nil)
	ErrInvalidHeader    = newErr(protoerr.KindProtocolViolation, "invalid_header", "parse", "malformed header field", nil)
	ErrIncomplete       = newErr(protoerr.KindProtocolViolation, "incomplete", "parse", "input ends before header terminator", nil)
	ErrTooManyHeaders   = newErr(protoerr.KindResourceLimit, "too_many_headers", "parse", "more than 64 headers", nil)
	ErrHeaderTooLarge   = newErr(protoerr.KindResourceLimit, "header_too_large", "read", "header block exceeds 32 KiB", nil)
	ErrConnectionClosed = newErr(protoerr.KindIO, "connection_closed", "read", "stream closed before header terminator arrived", nil)
	ErrAuth             = newErr(protoerr.KindSemanticRejection, "auth_error", "auth", "invalid Proxy-Authorization value", nil)
)

func wrap(base *protoerr.Error, cause error) *protoerr.Error {
	e := *base
	e.Cause = cause
	return &e
}

func wrapMsg(base *protoerr.Error, message string) *protoerr.Error {
	e := *base
	e.Message = message
	return &e
}
