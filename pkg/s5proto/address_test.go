package s5proto

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"
)

func roundTripAddress(t *testing.T, a Address) Address {
	t.Helper()
	buf := AppendAddress(nil, a)
	got, err := ReadAddress(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadAddress: %v", err)
	}
	return got
}

func TestAddressRoundTripIPv4(t *testing.T) {
	a := Address{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
	got := roundTripAddress(t, a)
	if !got.IP.Equal(a.IP) || got.Port != a.Port {
		t.Errorf("got %+v, want %+v", got, a)
	}
}

func TestAddressRoundTripIPv6(t *testing.T) {
	ip := net.ParseIP("::1")
	a := Address{IP: ip, Port: 443}
	got := roundTripAddress(t, a)
	if !got.IP.Equal(a.IP) || got.Port != a.Port {
		t.Errorf("got %+v, want %+v", got, a)
	}
}

func TestAddressRoundTripDomain(t *testing.T) {
	a := Address{Domain: "example.com", Port: 80}
	got := roundTripAddress(t, a)
	if got.Domain != a.Domain || got.Port != a.Port {
		t.Errorf("got %+v, want %+v", got, a)
	}
}

func TestReadAddressRejectsEmptyDomain(t *testing.T) {
	buf := []byte{byte(AddressTypeDomain), 0x00, 0x00, 0x50}
	_, err := ReadAddress(bytes.NewReader(buf))
	if !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("err = %v, want ErrEmptyDomain", err)
	}
}

func TestReadAddressRejectsNonUTF8Domain(t *testing.T) {
	buf := []byte{byte(AddressTypeDomain), 0x02, 0xff, 0xfe, 0x00, 0x50}
	_, err := ReadAddress(bytes.NewReader(buf))
	if !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("err = %v, want ErrInvalidDomain", err)
	}
}

func TestReadAddressRejectsUnknownType(t *testing.T) {
	buf := []byte{0x09, 0x00, 0x00}
	_, err := ReadAddress(bytes.NewReader(buf))
	if !errors.Is(err, ErrInvalidAddressType) {
		t.Fatalf("err = %v, want ErrInvalidAddressType", err)
	}
}

func TestAddressString(t *testing.T) {
	a := Address{Domain: "example.com", Port: 80}
	if got := a.String(); got != "example.com:80" {
		t.Errorf("String() = %q", got)
	}
}

func TestAddressMaxDomainLength(t *testing.T) {
	longest := strings.Repeat("a", MaxDomainLength)
	a := Address{Domain: longest, Port: 1}
	buf := AppendAddress(nil, a)
	if buf[1] != 0xff {
		t.Fatalf("length byte = %d, want 255", buf[1])
	}
}
