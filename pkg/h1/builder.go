package h1

import "strconv"

// RequestBuilder assembles a request line and headers into raw bytes,
// mirroring the fluent builders of the original implementation without
// the intermediate Request/Response structures: callers that build a
// message only want the bytes to send, not a parsed-form round trip.
type RequestBuilder struct {
	method string
	target string
	header *Header
	body   []byte
}

// NewRequestBuilder starts a builder for method and target.
func NewRequestBuilder(method, target string) *RequestBuilder {
	return &RequestBuilder{method: method, target: target, header: NewHeader()}
}

// Header sets name to value, replacing any prior value.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	b.header.Set(name, value)
	return b
}

// Body sets the bytes appended after the header block's terminating
// CRLFCRLF. The builder does not compute or set Content-Length; callers
// that want it set it themselves via Header.
func (b *RequestBuilder) Body(data []byte) *RequestBuilder {
	b.body = data
	return b
}

// Build renders the request line, headers, terminator, and body, in
// that order: exactly what would be written on the wire.
func (b *RequestBuilder) Build() []byte {
	method := b.method
	if method == "" {
		method = "GET"
	}
	target := b.target
	if target == "" {
		target = "/"
	}
	var out []byte
	out = append(out, method...)
	out = append(out, ' ')
	out = append(out, target...)
	out = append(out, " HTTP/1.1\r\n"...)
	out = appendHeaders(out, b.header)
	out = append(out, "\r\n"...)
	out = append(out, b.body...)
	return out
}

// ResponseBuilder assembles a status line and headers into raw bytes.
type ResponseBuilder struct {
	statusCode int
	reason     string
	header     *Header
	body       []byte
}

// NewResponseBuilder starts a builder for the given status code and
// reason phrase.
func NewResponseBuilder(statusCode int, reason string) *ResponseBuilder {
	return &ResponseBuilder{statusCode: statusCode, reason: reason, header: NewHeader()}
}

// Header sets name to value, replacing any prior value.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.header.Set(name, value)
	return b
}

// Body sets the bytes appended after the header block's terminating
// CRLFCRLF. The builder does not compute or set Content-Length; callers
// that want it set it themselves via Header.
func (b *ResponseBuilder) Body(data []byte) *ResponseBuilder {
	b.body = data
	return b
}

// Build renders the status line, headers, terminator, and body, in
// that order: exactly what would be written on the wire.
func (b *ResponseBuilder) Build() []byte {
	code := b.statusCode
	if code == 0 {
		code = 200
	}
	var out []byte
	out = append(out, "HTTP/1.1 "...)
	out = append(out, strconv.Itoa(code)...)
	out = append(out, ' ')
	out = append(out, b.reason...)
	out = append(out, "\r\n"...)
	out = appendHeaders(out, b.header)
	out = append(out, "\r\n"...)
	out = append(out, b.body...)
	return out
}

func appendHeaders(out []byte, h *Header) []byte {
	h.Range(func(name, value string) {
		out = append(out, name...)
		out = append(out, ':', ' ')
		out = append(out, value...)
		out = append(out, "\r\n"...)
	})
	return out
}
