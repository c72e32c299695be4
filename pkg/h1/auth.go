package h1

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// BasicAuth holds credentials decoded from a Proxy-Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// utf8Validator is reused across calls as a second pass over credential
// bytes that utf8.Valid has already accepted (utf8.Valid itself rejects
// overlong encodings and surrogate code points).
var utf8Validator = unicode.UTF8.NewDecoder()

// ParseBasicAuth extracts and decodes the Proxy-Authorization header
// from r, if present. It returns (nil, nil) when the header is absent,
// and an auth_error when present but malformed.
func (r *Request) ParseBasicAuth() (*BasicAuth, error) {
	return parseBasicAuth(r.Header)
}

// ParseBasicAuth extracts and decodes the Proxy-Authorization header
// from resp's headers, used when acting as a client revalidating an
// upstream challenge response.
func (resp *Response) ParseBasicAuth() (*BasicAuth, error) {
	return parseBasicAuth(resp.Header)
}

func parseBasicAuth(h *Header) (*BasicAuth, error) {
	value, ok := h.Get("Proxy-Authorization")
	if !ok {
		return nil, nil
	}
	const prefix = "Basic "
	if !strings.HasPrefix(value, prefix) {
		return nil, wrapMsg(ErrAuth, "invalid authorization scheme")
	}
	encoded := value[len(prefix):]

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, wrap(wrapMsg(ErrAuth, "invalid base64"), err)
	}
	if !utf8.Valid(decoded) {
		return nil, wrapMsg(ErrAuth, "invalid UTF-8")
	}
	if _, err := utf8Validator.Bytes(decoded); err != nil {
		return nil, wrap(wrapMsg(ErrAuth, "invalid UTF-8"), err)
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return nil, wrapMsg(ErrAuth, "invalid credentials format")
	}
	return &BasicAuth{Username: parts[0], Password: parts[1]}, nil
}

// EncodeBasicAuth renders the Proxy-Authorization header value for
// username/password.
func EncodeBasicAuth(username, password string) string {
	raw := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}
