package s5proto

import (
	"bytes"
	"net"
	"testing"
)

func TestUDPHeaderRoundTripWithPayload(t *testing.T) {
	h := UDPHeader{Frag: 0, Address: Address{IP: net.IPv4(1, 2, 3, 4), Port: 53}}
	payload := []byte("hello")

	buf := AppendUDPHeader(nil, h)
	buf = append(buf, payload...)

	r := bytes.NewReader(buf)
	got, err := ReadUDPHeader(r)
	if err != nil {
		t.Fatalf("ReadUDPHeader: %v", err)
	}
	if got.Frag != h.Frag || !got.Address.IP.Equal(h.Address.IP) || got.Address.Port != h.Address.Port {
		t.Errorf("got %+v, want %+v", got, h)
	}
	rest := make([]byte, len(payload))
	if _, err := r.Read(rest); err != nil {
		t.Fatalf("reading payload: %v", err)
	}
	if !bytes.Equal(rest, payload) {
		t.Errorf("payload = %q, want %q", rest, payload)
	}
}

func TestUDPHeaderLen(t *testing.T) {
	h := UDPHeader{Frag: 0, Address: Address{IP: net.IPv4(1, 2, 3, 4), Port: 53}}
	if got := h.Len(); got != 3+7 {
		t.Errorf("Len() = %d, want %d", got, 3+7)
	}
}
