package s5

import (
	"errors"
	"net"
	"time"

	"github.com/go-wireproxy/protocore/pkg/netstream"
	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// IncomingConnection is a TCP connection that may or may not be a
// valid SOCKS5 session. Call Authenticate to run the handshake phase.
type IncomingConnection struct {
	phase
	conn   net.Conn
	config Config
}

// NewIncomingConnection wraps conn for the SOCKS5 handshake.
func NewIncomingConnection(conn net.Conn, config Config) *IncomingConnection {
	return &IncomingConnection{conn: conn, config: config}
}

// Authenticate runs the method-selection handshake and, if Method is
// AuthUserPass, the RFC 1929 sub-negotiation. On success it returns an
// Authenticated handle over the same connection. IncomingConnection is
// consumed either way: calling Authenticate again returns
// ErrStaleHandle.
//
// If config.Timeout is nonzero, it bounds both phases together: the
// deadline is set once before the handshake begins and cleared once
// Authenticate returns, so it never constrains the Authenticated
// session that follows. A deadline expiry surfaces as
// ErrHandshakeTimeout rather than a raw I/O timeout.
func (c *IncomingConnection) Authenticate() (*Authenticated, error) {
	if !c.consume() {
		return nil, ErrStaleHandle
	}

	if c.config.Timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.config.Timeout)); err != nil {
			return nil, err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	req, err := s5proto.ReadHandshakeRequest(c.conn)
	if err != nil {
		return nil, asTimeout(err)
	}

	method, ok := c.config.selectMethod(req.Methods)
	if !ok {
		_ = s5proto.WriteHandshakeResponse(c.conn, s5proto.HandshakeResponse{Method: s5proto.AuthNoAcceptableMethods})
		return nil, ErrNoAcceptableMethods
	}
	if err := s5proto.WriteHandshakeResponse(c.conn, s5proto.HandshakeResponse{Method: method}); err != nil {
		return nil, asTimeout(err)
	}

	if method == s5proto.AuthUserPass {
		upReq, err := s5proto.ReadUserPassRequest(c.conn)
		if err != nil {
			return nil, asTimeout(err)
		}
		ok := c.config.Validate != nil && c.config.Validate(upReq.Username, upReq.Password)
		if werr := s5proto.WriteUserPassResponse(c.conn, s5proto.UserPassResponse{Success: ok}); werr != nil {
			return nil, asTimeout(werr)
		}
		if !ok {
			return nil, ErrAuthRejected
		}
	}

	return &Authenticated{stream: netstream.New(c.conn)}, nil
}

// asTimeout rewrites a deadline-expiry I/O error into ErrHandshakeTimeout,
// leaving any other error untouched.
func asTimeout(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return wrap(ErrHandshakeTimeout, err)
	}
	return err
}

// Stream releases the underlying net.Conn, for callers that want to
// abandon the SOCKS5 handshake (e.g. after peeking and discovering the
// connection isn't SOCKS5 at all).
func (c *IncomingConnection) Stream() net.Conn {
	return c.conn
}
