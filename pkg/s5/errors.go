// Package s5 implements the SOCKS5 server session state machine:
// IncomingConnection -> Authenticated -> {Connect, Bind, UdpAssociate}.
// Each phase is a handle over a shared netstream.Stream; transitioning
// a phase consumes its handle, enforced at runtime since Go cannot
// express compile-time move semantics the way the reference
// implementation's typed phase markers do.
package s5

import "github.com/go-wireproxy/protocore/pkg/protoerr"

func newErr(kind protoerr.Kind, code, op, message string, cause error) *protoerr.Error {
	return protoerr.New("s5", kind, code, op, message, cause)
}

var (
	ErrStaleHandle         = newErr(protoerr.KindProtocolViolation, "stale_handle", "transition", "phase handle was already consumed", nil)
	ErrNoAcceptableMethods = newErr(protoerr.KindSemanticRejection, "no_acceptable_methods", "handshake", "no auth method offered by the client is acceptable", nil)
	ErrAuthRejected        = newErr(protoerr.KindSemanticRejection, "auth_rejected", "auth", "username/password credentials were rejected", nil)
	ErrHandshakeTimeout    = newErr(protoerr.KindTimeout, "handshake_timeout", "handshake", "handshake did not complete before the deadline", nil)
)

func wrap(base *protoerr.Error, cause error) *protoerr.Error {
	e := *base
	e.Cause = cause
	return &e
}
