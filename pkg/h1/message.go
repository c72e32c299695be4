package h1

import "strings"

// MaxHeaders bounds the number of header fields accepted in a single
// message. Exceeding it is a resource_limit, not a protocol_violation,
// since the bytes themselves are well-formed.
const MaxHeaders = 64

// MaxHeaderBytes bounds the size of the header block (everything up to
// and including the terminating CRLFCRLF) that ReadRequest/ReadResponse
// will accumulate before giving up.
const MaxHeaderBytes = 32 * 1024

// field is a single header line, keeping the wire-cased name alongside
// its lowercase lookup key.
type field struct {
	name  string // as it appeared on the wire
	lower string
	value string
}

// Header is an ordered, case-insensitive collection of header fields.
// Lookups are case-insensitive; the first-seen casing of a name is
// preserved for output. Setting a name that already exists replaces its
// value in place rather than appending, matching the replace semantics
// of Rust's http::HeaderMap::insert used by the original implementation.
type Header struct {
	fields []field
}

// NewHeader returns an empty Header.
func NewHeader() *Header {
	return &Header{}
}

func (h *Header) indexOf(lower string) int {
	for i := range h.fields {
		if h.fields[i].lower == lower {
			return i
		}
	}
	return -1
}

// Set inserts name/value, replacing any existing field with the same
// case-insensitive name. The wire casing of the first insertion is kept.
func (h *Header) Set(name, value string) {
	lower := strings.ToLower(name)
	if i := h.indexOf(lower); i >= 0 {
		h.fields[i].value = value
		return
	}
	h.fields = append(h.fields, field{name: name, lower: lower, value: value})
}

// Get returns the value of name and whether it was present.
func (h *Header) Get(name string) (string, bool) {
	i := h.indexOf(strings.ToLower(name))
	if i < 0 {
		return "", false
	}
	return h.fields[i].value, true
}

// Del removes name, if present.
func (h *Header) Del(name string) {
	lower := strings.ToLower(name)
	i := h.indexOf(lower)
	if i < 0 {
		return
	}
	h.fields = append(h.fields[:i], h.fields[i+1:]...)
}

// Len returns the number of fields currently stored.
func (h *Header) Len() int { return len(h.fields) }

// Range calls fn for each field in insertion order.
func (h *Header) Range(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// isToken reports whether s is a valid RFC 7230 "token": one or more
// tchar, used for both header field-names and HTTP methods.
func isToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// isFieldValue reports whether s is a valid RFC 7230 field-value: VCHAR,
// obs-text (0x80-0xFF) and SP/HTAB, explicitly excluding obs-fold (CR or
// LF anywhere) and other control bytes.
func isFieldValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c < 0x21 || c == 0x7f {
			return false
		}
	}
	return true
}

// trimOWS strips leading/trailing optional whitespace (SP / HTAB) per
// RFC 7230 field-value grammar.
func trimOWS(s string) string {
	return strings.Trim(s, " \t")
}
