package h1

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// Request is a parsed HTTP/1.1 request line plus headers. It never
// contains a body: body-framing (Content-Length, chunked) is out of
// scope, and bytes after the terminating CRLFCRLF are not exposed on
// the Request.
type Request struct {
	Method  string
	Target  string
	Header  *Header
	raw     []byte // the exact bytes this Request was parsed from
}

// RawBytes returns the exact header-block bytes this Request was
// parsed from, including the trailing CRLFCRLF.
func (r *Request) RawBytes() []byte { return r.raw }

// Parse parses data as an HTTP/1.1 request. It defensively copies data
// before slicing into it, so the caller may reuse or mutate the
// original buffer afterward.
func Parse(data []byte) (*Request, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return ParseBytes(cp)
}

// ParseBytes parses data as an HTTP/1.1 request without copying it.
// The caller must not mutate data afterward: the returned Request's
// RawBytes slices directly into it (Target and Header values are
// copied into strings).
func ParseBytes(data []byte) (*Request, error) {
	end := findHeaderEnd(data)
	if end < 0 {
		return nil, ErrIncomplete
	}
	block := data[:end]
	lines := splitLines(block)
	if len(lines) == 0 {
		return nil, wrapMsg(ErrInvalidRequest, "empty request")
	}

	method, target, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	header, err := parseHeaderLines(lines[1:])
	if err != nil {
		return nil, err
	}

	return &Request{
		Method: method,
		Target: target,
		Header: header,
		raw:    data[:end],
	}, nil
}

// parseRequestLine splits "METHOD SP request-target SP HTTP-version".
func parseRequestLine(line string) (method, target string, err error) {
	first := strings.IndexByte(line, ' ')
	if first < 0 {
		return "", "", wrapMsg(ErrInvalidRequest, "missing request-target")
	}
	rest := line[first+1:]
	second := strings.IndexByte(rest, ' ')
	if second < 0 {
		return "", "", wrapMsg(ErrInvalidRequest, "missing HTTP-version")
	}
	method = line[:first]
	target = rest[:second]
	version := rest[second+1:]

	if !isToken(method) {
		return "", "", wrapMsg(ErrInvalidRequest, "invalid method token")
	}
	if target == "" {
		return "", "", wrapMsg(ErrInvalidURI, "empty request-target")
	}
	if !isValidRequestTarget(target) {
		return "", "", wrapMsg(ErrInvalidURI, "invalid request-target")
	}
	if method == "CONNECT" && !isValidConnectTarget(target) {
		return "", "", wrapMsg(ErrInvalidURI, "invalid CONNECT authority")
	}
	if !isSupportedVersion(version) {
		return "", "", wrapMsg(ErrInvalidRequest, "unsupported HTTP-version")
	}
	return method, target, nil
}

// isValidConnectTarget validates a CONNECT request-target, which RFC
// 7230 §5.3.3 requires to be in authority-form ("host:port"). A
// non-IP-literal host must be a well-formed domain name; it is checked
// but never rewritten, through the same golang.org/x/net/idna profile
// pkg/s5proto uses for SOCKS5 domain addresses.
func isValidConnectTarget(target string) bool {
	host, port, err := net.SplitHostPort(target)
	if err != nil || host == "" || port == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	_, err = idna.Lookup.ToASCII(host)
	return err == nil
}

func isSupportedVersion(v string) bool {
	return v == "HTTP/1.1" || v == "HTTP/1.0"
}

// isValidRequestTarget rejects control characters and whitespace but
// otherwise leaves scheme/path interpretation to the caller; this
// codec deals in raw bytes, not a decoded URI model.
func isValidRequestTarget(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
