// Package s5proto implements the wire types of the SOCKS5 protocol
// (RFC 1928) and its username/password sub-negotiation (RFC 1929):
// versions, auth methods, commands, reply codes, addresses, and the
// UDP relay header. It has no notion of a session; pkg/s5 builds the
// phased state machine on top of these types.
package s5proto

import "github.com/go-wireproxy/protocore/pkg/protoerr"

func newErr(kind protoerr.Kind, code, op, message string, cause error) *protoerr.Error {
	return protoerr.New("s5", kind, code, op, message, cause)
}

var (
	ErrUnsupportedVersion  = newErr(protoerr.KindSemanticRejection, "unsupported_version", "read", "version byte is not 5", nil)
	ErrInvalidCommand      = newErr(protoerr.KindProtocolViolation, "invalid_command", "read", "unknown command code", nil)
	ErrInvalidReserved     = newErr(protoerr.KindProtocolViolation, "invalid_reserved", "read", "RSV byte is not zero", nil)
	ErrInvalidAddressType  = newErr(protoerr.KindProtocolViolation, "invalid_address_type", "read", "unknown address type code", nil)
	ErrEmptyDomain         = newErr(protoerr.KindProtocolViolation, "empty_domain", "read", "domain address length is 0", nil)
	ErrInvalidDomain       = newErr(protoerr.KindProtocolViolation, "invalid_domain", "read", "domain address is not valid UTF-8", nil)
	ErrDomainTooLong       = newErr(protoerr.KindResourceLimit, "domain_too_long", "read", "domain address exceeds 255 bytes", nil)
	ErrNoAcceptableMethods = newErr(protoerr.KindSemanticRejection, "no_acceptable_methods", "handshake", "client offered no method the server accepts", nil)
	ErrAuthFailed          = newErr(protoerr.KindSemanticRejection, "auth_failed", "auth", "username/password authentication rejected", nil)
	ErrIO                  = newErr(protoerr.KindIO, "io", "read", "underlying stream error", nil)
)

func wrap(base *protoerr.Error, cause error) *protoerr.Error {
	e := *base
	e.Cause = cause
	return &e
}
