package h1

import (
	"strconv"
	"strings"
)

// Response is a parsed HTTP/1.1 status line plus headers.
type Response struct {
	StatusCode int
	Reason     string
	Header     *Header
	raw        []byte
}

// RawBytes returns the exact header-block bytes this Response was
// parsed from, including the trailing CRLFCRLF.
func (r *Response) RawBytes() []byte { return r.raw }

// ParseResponse parses data as an HTTP/1.1 response, copying data
// defensively first.
func ParseResponse(data []byte) (*Response, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return ParseResponseBytes(cp)
}

// ParseResponseBytes parses data as an HTTP/1.1 response without
// copying it. The caller must not mutate data afterward.
func ParseResponseBytes(data []byte) (*Response, error) {
	end := findHeaderEnd(data)
	if end < 0 {
		return nil, ErrIncomplete
	}
	block := data[:end]
	lines := splitLines(block)
	if len(lines) == 0 {
		return nil, wrapMsg(ErrInvalidResponse, "empty response")
	}

	code, reason, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}

	header, err := parseHeaderLines(lines[1:])
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: code,
		Reason:     reason,
		Header:     header,
		raw:        data[:end],
	}, nil
}

// ParseStatusLine parses a single status line (without its CRLF),
// without requiring the full header block to be present yet. It is a cheap
// probe used by callers that only need the status code.
func ParseStatusLine(line string) (code int, reason string, err error) {
	return parseStatusLine(line)
}

func parseStatusLine(line string) (code int, reason string, err error) {
	if !strings.HasPrefix(line, "HTTP/1.") {
		return 0, "", wrapMsg(ErrInvalidResponse, "missing HTTP-version")
	}
	rest := line[len("HTTP/1."):]
	if len(rest) < 2 || (rest[0] != '0' && rest[0] != '1') || rest[1] != ' ' {
		return 0, "", wrapMsg(ErrInvalidResponse, "malformed HTTP-version")
	}
	rest = rest[2:]

	sp := strings.IndexByte(rest, ' ')
	var codeStr string
	if sp < 0 {
		codeStr = rest
		rest = ""
	} else {
		codeStr = rest[:sp]
		rest = rest[sp+1:]
	}
	if len(codeStr) != 3 {
		return 0, "", wrapMsg(ErrInvalidResponse, "status code must be 3 digits")
	}
	n, convErr := strconv.Atoi(codeStr)
	if convErr != nil || n < 100 || n > 599 {
		return 0, "", wrapMsg(ErrInvalidResponse, "invalid status code")
	}
	return n, rest, nil
}
