package p2

import "github.com/go-wireproxy/protocore/pkg/protoerr"

func newErr(kind protoerr.Kind, code, op, message string, cause error) *protoerr.Error {
	return protoerr.New("p2", kind, code, op, message, cause)
}

var (
	ErrInvalidSignature     = newErr(protoerr.KindProtocolViolation, "invalid_signature", "read", "first 12 bytes do not match the PROXY v2 signature", nil)
	ErrUnsupportedVersion   = newErr(protoerr.KindSemanticRejection, "unsupported_version", "read", "header version is not 2", nil)
	ErrInvalidCommand       = newErr(protoerr.KindProtocolViolation, "invalid_command", "read", "unknown command nibble", nil)
	ErrInvalidAddressFamily = newErr(protoerr.KindProtocolViolation, "invalid_address_family", "read", "unsupported address family", nil)
	ErrAddressLengthMismatch = newErr(protoerr.KindProtocolViolation, "address_length_mismatch", "read", "address block shorter than the family requires", nil)
	ErrIO                   = newErr(protoerr.KindIO, "io", "read", "underlying stream error", nil)
)

func wrap(base *protoerr.Error, cause error) *protoerr.Error {
	e := *base
	e.Cause = cause
	return &e
}
