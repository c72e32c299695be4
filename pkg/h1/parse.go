package h1

import "strings"

const crlf2 = "\r\n\r\n"

// findHeaderEnd returns the index just past the terminating CRLFCRLF in
// data, or -1 if it is not present yet.
func findHeaderEnd(data []byte) int {
	i := strings.Index(string(data), crlf2)
	if i < 0 {
		return -1
	}
	return i + len(crlf2)
}

// splitLines splits a header block (request-line/status-line plus
// header fields, terminated by CRLFCRLF) on CRLF, dropping the final
// two empty elements produced by the trailing blank line.
func splitLines(block []byte) []string {
	s := string(block)
	s = strings.TrimSuffix(s, crlf2)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\r\n")
}

// parseHeaderLines validates and collects header fields. A line
// starting with SP or HTAB is obs-fold continuation, which this codec
// rejects outright rather than joining, to preserve raw-bytes fidelity
// when forwarding.
func parseHeaderLines(lines []string) (*Header, error) {
	if len(lines) > MaxHeaders {
		return nil, ErrTooManyHeaders
	}
	h := NewHeader()
	for _, line := range lines {
		if line == "" {
			return nil, wrapMsg(ErrInvalidHeader, "empty header line")
		}
		if line[0] == ' ' || line[0] == '\t' {
			return nil, wrapMsg(ErrInvalidHeader, "obs-fold line continuation is not supported")
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, wrapMsg(ErrInvalidHeader, "missing colon in header field")
		}
		name := line[:colon]
		if strings.ContainsAny(name, " \t") {
			return nil, wrapMsg(ErrInvalidHeader, "whitespace before colon in header field name")
		}
		if !isToken(name) {
			return nil, wrapMsg(ErrInvalidHeader, "invalid header field name")
		}
		value := trimOWS(line[colon+1:])
		if !isFieldValue(value) {
			return nil, wrapMsg(ErrInvalidHeader, "invalid header field value")
		}
		h.Set(name, value)
	}
	return h, nil
}
