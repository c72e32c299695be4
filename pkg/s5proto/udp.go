package s5proto

import "io"

// UDPHeader is the per-datagram header a SOCKS5 UDP-associate client
// and server prepend to every relayed packet: RSV(2), FRAG(1), and a
// destination Address, per RFC 1928 §7.
type UDPHeader struct {
	Frag    uint8
	Address Address
}

// ReadUDPHeader decodes a UDPHeader from the front of r. Callers
// relaying datagrams read from a raw UDP packet should wrap the
// packet bytes in a bytes.Reader first; a header that fails to parse
// should cause the datagram to be silently discarded, not the
// receive loop to stop, since SOCKS5 UDP relaying treats each
// datagram independently.
func ReadUDPHeader(r io.Reader) (UDPHeader, error) {
	var head [3]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return UDPHeader{}, wrap(ErrIO, err)
	}
	// head[0:2] is RSV, always 0x0000 and ignored on read.
	frag := head[2]

	addr, err := ReadAddress(r)
	if err != nil {
		return UDPHeader{}, err
	}
	return UDPHeader{Frag: frag, Address: addr}, nil
}

// AppendUDPHeader appends h's wire encoding to buf.
func AppendUDPHeader(buf []byte, h UDPHeader) []byte {
	buf = append(buf, 0x00, 0x00, h.Frag)
	return AppendAddress(buf, h.Address)
}

// Len returns the number of bytes AppendUDPHeader would add for h.
func (h UDPHeader) Len() int {
	return 3 + Len(h.Address)
}
