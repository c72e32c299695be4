package s5proto

import "io"

// HandshakeRequest is the client's initial method-selection message:
// VER, NMETHODS, METHODS.
type HandshakeRequest struct {
	Methods []AuthMethod
}

// Offers reports whether m is among the methods the client listed.
func (r HandshakeRequest) Offers(m AuthMethod) bool {
	for _, offered := range r.Methods {
		if offered == m {
			return true
		}
	}
	return false
}

// ReadHandshakeRequest reads and validates a client method-selection
// message. A version byte other than 5 is a semantic rejection, not a
// protocol violation: the caller should close without writing a reply,
// since SOCKS4 and SOCKS5 share no further framing to reply within.
func ReadHandshakeRequest(r io.Reader) (HandshakeRequest, error) {
	var ver [1]byte
	if _, err := io.ReadFull(r, ver[:]); err != nil {
		return HandshakeRequest{}, wrap(ErrIO, err)
	}
	if Version(ver[0]) != Version5 {
		return HandshakeRequest{}, ErrUnsupportedVersion
	}

	var nmethods [1]byte
	if _, err := io.ReadFull(r, nmethods[:]); err != nil {
		return HandshakeRequest{}, wrap(ErrIO, err)
	}
	buf := make([]byte, nmethods[0])
	if len(buf) > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return HandshakeRequest{}, wrap(ErrIO, err)
		}
	}
	methods := make([]AuthMethod, len(buf))
	for i, b := range buf {
		methods[i] = AuthMethod(b)
	}
	return HandshakeRequest{Methods: methods}, nil
}

// HandshakeResponse is the server's method-selection reply: VER,
// METHOD.
type HandshakeResponse struct {
	Method AuthMethod
}

// WriteHandshakeResponse writes resp to w.
func WriteHandshakeResponse(w io.Writer, resp HandshakeResponse) error {
	buf := [2]byte{byte(Version5), byte(resp.Method)}
	if _, err := w.Write(buf[:]); err != nil {
		return wrap(ErrIO, err)
	}
	return nil
}

// UserPassRequest is the RFC 1929 username/password sub-negotiation
// request: VER, ULEN, UNAME, PLEN, PASSWD.
type UserPassRequest struct {
	Username string
	Password string
}

// ReadUserPassRequest reads a username/password sub-negotiation
// request. The sub-negotiation version byte is 0x01, distinct from the
// SOCKS version.
func ReadUserPassRequest(r io.Reader) (UserPassRequest, error) {
	var ver [1]byte
	if _, err := io.ReadFull(r, ver[:]); err != nil {
		return UserPassRequest{}, wrap(ErrIO, err)
	}
	if ver[0] != 0x01 {
		return UserPassRequest{}, ErrUnsupportedVersion
	}

	uname, err := readLengthPrefixed(r)
	if err != nil {
		return UserPassRequest{}, err
	}
	passwd, err := readLengthPrefixed(r)
	if err != nil {
		return UserPassRequest{}, err
	}
	return UserPassRequest{Username: string(uname), Password: string(passwd)}, nil
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	var lenBuf [1]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, wrap(ErrIO, err)
	}
	buf := make([]byte, lenBuf[0])
	if len(buf) > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, wrap(ErrIO, err)
		}
	}
	return buf, nil
}

// UserPassResponse is the RFC 1929 sub-negotiation reply: VER, STATUS.
// STATUS 0x00 means success; any other value means failure.
type UserPassResponse struct {
	Success bool
}

// WriteUserPassResponse writes resp to w.
func WriteUserPassResponse(w io.Writer, resp UserPassResponse) error {
	status := byte(0x01)
	if resp.Success {
		status = 0x00
	}
	buf := [2]byte{0x01, status}
	if _, err := w.Write(buf[:]); err != nil {
		return wrap(ErrIO, err)
	}
	return nil
}
