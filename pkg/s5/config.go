package s5

import (
	"time"

	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// UserPassValidator checks a username/password pair submitted during
// RFC 1929 sub-negotiation.
type UserPassValidator func(username, password string) bool

// Config selects the server's authentication policy for the handshake
// phase. The reference contract treats the configured method as a
// single preferred value, not a general multi-method policy; AllowNoAuth
// is the one pluggable escape hatch spec.md's phase-1 logic names
// ("use NoAuth if policy allows it").
type Config struct {
	// Method is the auth method this server prefers. If the client
	// doesn't offer it and AllowNoAuth is false, the handshake fails
	// with NoAcceptableMethods.
	Method s5proto.AuthMethod
	// AllowNoAuth lets the handshake fall back to AuthNoAuth when the
	// client doesn't offer Method.
	AllowNoAuth bool
	// Validate checks credentials when Method is AuthUserPass. Required
	// in that case; ignored otherwise.
	Validate UserPassValidator
	// Timeout bounds the method-selection handshake and, when
	// applicable, the RFC 1929 sub-negotiation that follows it. Zero
	// means no deadline. On expiry Authenticate returns
	// ErrHandshakeTimeout and the connection should be closed.
	Timeout time.Duration
}

func (c Config) selectMethod(offered []s5proto.AuthMethod) (s5proto.AuthMethod, bool) {
	for _, m := range offered {
		if m == c.Method {
			return c.Method, true
		}
	}
	if c.AllowNoAuth {
		for _, m := range offered {
			if m == s5proto.AuthNoAuth {
				return s5proto.AuthNoAuth, true
			}
		}
	}
	return s5proto.AuthNoAcceptableMethods, false
}
