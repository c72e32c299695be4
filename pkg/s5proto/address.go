package s5proto

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// AddressType identifies how an Address's host is encoded on the wire.
type AddressType uint8

const (
	AddressTypeIPv4   AddressType = 0x01
	AddressTypeDomain AddressType = 0x03
	AddressTypeIPv6   AddressType = 0x04
)

func (t AddressType) valid() bool {
	switch t {
	case AddressTypeIPv4, AddressTypeDomain, AddressTypeIPv6:
		return true
	}
	return false
}

// MaxDomainLength is the largest domain name a SOCKS5 address can
// carry: the length prefix is a single byte.
const MaxDomainLength = 255

// Address is a SOCKS5 destination or bind address: either a resolved
// IP endpoint or a domain name paired with a port, resolved by
// whichever peer makes the outbound connection.
type Address struct {
	IP     net.IP // nil when Domain is set
	Domain string // empty when IP is set
	Port   uint16
}

// Type returns the wire address type this Address would serialize as.
func (a Address) Type() AddressType {
	switch {
	case a.Domain != "":
		return AddressTypeDomain
	case a.IP.To4() != nil:
		return AddressTypeIPv4
	default:
		return AddressTypeIPv6
	}
}

// String renders host:port, matching net.JoinHostPort's formatting.
func (a Address) String() string {
	host := a.Domain
	if host == "" {
		host = a.IP.String()
	}
	return net.JoinHostPort(host, fmt.Sprintf("%d", a.Port))
}

// UnspecifiedAddress returns 0.0.0.0:0, used as a placeholder
// destination in replies that carry no real address.
func UnspecifiedAddress() Address {
	return Address{IP: net.IPv4zero, Port: 0}
}

// ReadAddress decodes a SOCKS5 address from r: ATYP, the host encoding
// for that type, and a big-endian port. A domain address with length 0
// or non-UTF-8 bytes is rejected. decode(encode(A)) == A must hold for
// every Address, so the domain bytes the client sent are kept verbatim;
// IDNA is used only to validate that the domain is well-formed, never
// to rewrite it.
func ReadAddress(r io.Reader) (Address, error) {
	var typeBuf [1]byte
	if _, err := io.ReadFull(r, typeBuf[:]); err != nil {
		return Address{}, wrap(ErrIO, err)
	}
	atyp := AddressType(typeBuf[0])
	if !atyp.valid() {
		return Address{}, ErrInvalidAddressType
	}

	switch atyp {
	case AddressTypeIPv4:
		var buf [6]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Address{}, wrap(ErrIO, err)
		}
		ip := net.IPv4(buf[0], buf[1], buf[2], buf[3])
		port := binary.BigEndian.Uint16(buf[4:6])
		return Address{IP: ip, Port: port}, nil

	case AddressTypeIPv6:
		var buf [18]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Address{}, wrap(ErrIO, err)
		}
		ip := append(net.IP(nil), buf[0:16]...)
		port := binary.BigEndian.Uint16(buf[16:18])
		return Address{IP: ip, Port: port}, nil

	default: // AddressTypeDomain
		var lenBuf [1]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return Address{}, wrap(ErrIO, err)
		}
		length := int(lenBuf[0])
		if length == 0 {
			return Address{}, ErrEmptyDomain
		}
		domainBuf := make([]byte, length)
		if _, err := io.ReadFull(r, domainBuf); err != nil {
			return Address{}, wrap(ErrIO, err)
		}
		var portBuf [2]byte
		if _, err := io.ReadFull(r, portBuf[:]); err != nil {
			return Address{}, wrap(ErrIO, err)
		}
		if !utf8.Valid(domainBuf) {
			return Address{}, ErrInvalidDomain
		}
		domain := string(domainBuf)
		if _, err := idna.Lookup.ToASCII(domain); err != nil {
			return Address{}, ErrInvalidDomain
		}
		port := binary.BigEndian.Uint16(portBuf[:])
		return Address{Domain: domain, Port: port}, nil
	}
}

// WriteAddress encodes a into w in SOCKS5 wire form.
func WriteAddress(w io.Writer, a Address) error {
	buf := AppendAddress(nil, a)
	_, err := w.Write(buf)
	if err != nil {
		return wrap(ErrIO, err)
	}
	return nil
}

// AppendAddress appends a's wire encoding to buf and returns the
// extended slice, allocating only when buf's capacity is insufficient.
func AppendAddress(buf []byte, a Address) []byte {
	switch a.Type() {
	case AddressTypeIPv4:
		ip4 := a.IP.To4()
		buf = append(buf, byte(AddressTypeIPv4))
		buf = append(buf, ip4...)
	case AddressTypeIPv6:
		ip6 := a.IP.To16()
		buf = append(buf, byte(AddressTypeIPv6))
		buf = append(buf, ip6...)
	case AddressTypeDomain:
		buf = append(buf, byte(AddressTypeDomain))
		buf = append(buf, byte(len(a.Domain)))
		buf = append(buf, a.Domain...)
	}
	var portBuf [2]byte
	binary.BigEndian.PutUint16(portBuf[:], a.Port)
	buf = append(buf, portBuf[:]...)
	return buf
}

// Len returns the number of bytes AppendAddress would add for a.
func Len(a Address) int {
	switch a.Type() {
	case AddressTypeIPv4:
		return 1 + 4 + 2
	case AddressTypeIPv6:
		return 1 + 16 + 2
	default:
		return 1 + 1 + len(a.Domain) + 2
	}
}
