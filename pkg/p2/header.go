// Package p2 implements a reader for PROXY Protocol v2 headers (the
// HAProxy PROXY protocol, version 2, binary framing).
package p2

import (
	"encoding/binary"
	"io"
	"net"
)

const (
	signatureLength = 12
	headerSize      = 16 // signature(12) + ver_cmd(1) + fam_proto(1) + len(2)
)

var signature = [signatureLength]byte{'\r', '\n', '\r', '\n', 0x00, '\r', '\n', 'Q', 'U', 'I', 'T', '\n'}

// Command distinguishes a health-check LOCAL frame from a PROXY frame
// carrying real addressing information.
type Command uint8

const (
	CommandLocal Command = iota
	CommandProxy
)

// Address family nibble values, as they appear on the wire.
const (
	AFUnspec = 0x00
	AFInet   = 0x10
	AFInet6  = 0x20
	AFUnix   = 0x30
)

// Transport protocol nibble values, as they appear on the wire.
const (
	ProtoUnspec = 0x00
	ProtoStream = 0x01
	ProtoDgram  = 0x02
)

// Addresses holds the real client and destination endpoints carried by
// a PROXY command frame.
type Addresses struct {
	Source      net.TCPAddr
	Destination net.TCPAddr
}

// Header is a parsed PROXY Protocol v2 header.
type Header struct {
	Command       Command
	AddressFamily uint8
	Protocol      uint8
	// Addresses is non-nil only for a PROXY command carrying AFInet or
	// AFInet6 addressing.
	Addresses *Addresses
}

// peeker is satisfied by connections that can inspect upcoming bytes
// without consuming them, such as *net.TCPConn wrapped for peeking.
// ReadHeader falls back to a direct, destructive read when r does not
// implement it.
type peeker interface {
	Peek(n int) ([]byte, error)
}

// ReadHeader reads and parses a PROXY Protocol v2 header from r. If r
// implements peeker, the signature is checked with a zero-copy peek
// before committing to a full read, so non-PROXY traffic can be
// rejected without consuming bytes the caller may want to re-dispatch
// elsewhere. Otherwise ReadHeader reads the fixed header directly,
// which is destructive on mismatch; callers needing non-destructive
// detection should wrap r in a buffered peeker first.
func ReadHeader(r io.Reader) (*Header, error) {
	var fixed [headerSize]byte

	if pk, ok := r.(peeker); ok {
		peeked, err := pk.Peek(headerSize)
		if err != nil {
			return nil, wrap(ErrInvalidSignature, err)
		}
		copy(fixed[:], peeked)
		if !matchesSignature(fixed[:]) {
			return nil, ErrInvalidSignature
		}
		if _, err := io.ReadFull(r, fixed[:]); err != nil {
			return nil, wrap(ErrIO, err)
		}
	} else {
		if _, err := io.ReadFull(r, fixed[:]); err != nil {
			return nil, wrap(ErrInvalidSignature, err)
		}
		if !matchesSignature(fixed[:]) {
			return nil, ErrInvalidSignature
		}
	}

	versionCmd := fixed[signatureLength]
	version := versionCmd >> 4
	commandNibble := versionCmd & 0x0f
	if version != 2 {
		return nil, ErrUnsupportedVersion
	}

	var command Command
	switch commandNibble {
	case 0x00:
		command = CommandLocal
	case 0x01:
		command = CommandProxy
	default:
		return nil, ErrInvalidCommand
	}

	familyProto := fixed[signatureLength+1]
	family := familyProto & 0xf0
	protocol := familyProto & 0x0f

	addrLen := binary.BigEndian.Uint16(fixed[signatureLength+2 : signatureLength+4])

	addrBuf := make([]byte, addrLen)
	if addrLen > 0 {
		if _, err := io.ReadFull(r, addrBuf); err != nil {
			return nil, wrap(ErrIO, err)
		}
	}

	h := &Header{Command: command, AddressFamily: family, Protocol: protocol}

	if command == CommandProxy && addrLen > 0 {
		addrs, err := parseAddresses(addrBuf, family)
		if err != nil {
			return nil, err
		}
		h.Addresses = addrs
	}

	return h, nil
}

func matchesSignature(buf []byte) bool {
	for i := 0; i < signatureLength; i++ {
		if buf[i] != signature[i] {
			return false
		}
	}
	return true
}

func parseAddresses(buf []byte, family uint8) (*Addresses, error) {
	switch family {
	case AFInet:
		const size = 12
		if len(buf) < size {
			return nil, wrap(ErrAddressLengthMismatch, nil)
		}
		src := net.TCPAddr{
			IP:   net.IPv4(buf[0], buf[1], buf[2], buf[3]),
			Port: int(binary.BigEndian.Uint16(buf[8:10])),
		}
		dst := net.TCPAddr{
			IP:   net.IPv4(buf[4], buf[5], buf[6], buf[7]),
			Port: int(binary.BigEndian.Uint16(buf[10:12])),
		}
		return &Addresses{Source: src, Destination: dst}, nil

	case AFInet6:
		const size = 36
		if len(buf) < size {
			return nil, wrap(ErrAddressLengthMismatch, nil)
		}
		src := net.TCPAddr{
			IP:   append(net.IP(nil), buf[0:16]...),
			Port: int(binary.BigEndian.Uint16(buf[32:34])),
		}
		dst := net.TCPAddr{
			IP:   append(net.IP(nil), buf[16:32]...),
			Port: int(binary.BigEndian.Uint16(buf[34:36])),
		}
		return &Addresses{Source: src, Destination: dst}, nil

	default:
		return nil, ErrInvalidAddressFamily
	}
}
