package s5

import (
	"bytes"
	"errors"
	"net"
	"sync/atomic"

	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

var errNotConnected = errors.New("s5: AssociatedUDPConn.Send called before Connect")

// AssociatedUDPConn wraps a net.PacketConn (normally a *net.UDPConn)
// for a UDP-ASSOCIATE session, prepending and stripping the SOCKS5 UDP
// relay header on every datagram. Malformed datagrams are silently
// discarded by Recv/RecvFrom rather than returned as errors: SOCKS5
// UDP relaying treats each packet independently, so one bad packet
// must not interrupt the receive loop.
//
// maxPacketSize is accessed concurrently with ordinary send/receive
// traffic from other goroutines. It is followed by 56 bytes of padding
// so that whatever follows the struct in memory does not sit on its
// cache line; the struct itself is not aligned to a 64-byte boundary,
// so maxPacketSize can share a cache line with conn and peer.
type AssociatedUDPConn struct {
	conn          net.PacketConn
	peer          net.Addr // set by Connect; nil until then
	maxPacketSize atomic.Int64
	_             [56]byte // pad to a 64-byte cache line
}

// NewAssociatedUDPConn wraps conn, sizing the receive buffer to
// maxPacketSize bytes (SOCKS5 header included).
func NewAssociatedUDPConn(conn net.PacketConn, maxPacketSize int) *AssociatedUDPConn {
	a := &AssociatedUDPConn{conn: conn}
	a.maxPacketSize.Store(int64(maxPacketSize))
	return a
}

// MaxPacketSize returns the current receive buffer size.
func (a *AssociatedUDPConn) MaxPacketSize() int {
	return int(a.maxPacketSize.Load())
}

// SetMaxPacketSize adjusts the receive buffer size used by future
// Recv/RecvFrom calls.
func (a *AssociatedUDPConn) SetMaxPacketSize(size int) {
	a.maxPacketSize.Store(int64(size))
}

// Connect fixes the peer Send/Recv use implicitly, as opposed to
// SendTo/RecvFrom which take an explicit peer on every call. Unlike a
// dialed *net.UDPConn, this does not restrict which peers the kernel
// delivers datagrams from; Recv filters by comparing the source
// address itself, while RecvFrom returns datagrams from any peer.
func (a *AssociatedUDPConn) Connect(addr net.Addr) {
	a.peer = addr
}

// RecvFrom reads one datagram, strips and parses its SOCKS5 UDP
// header, and returns the payload, fragment id, embedded target
// address, and the UDP peer that sent it. A datagram with no valid
// header is discarded and RecvFrom tries again.
func (a *AssociatedUDPConn) RecvFrom() (payload []byte, frag uint8, target s5proto.Address, peer net.Addr, err error) {
	buf := make([]byte, a.MaxPacketSize())
	for {
		n, src, readErr := a.conn.ReadFrom(buf)
		if readErr != nil {
			return nil, 0, s5proto.Address{}, nil, readErr
		}
		pkt := buf[:n]
		header, herr := s5proto.ReadUDPHeader(bytes.NewReader(pkt))
		if herr != nil {
			continue
		}
		return pkt[header.Len():], header.Frag, header.Address, src, nil
	}
}

// SendTo writes payload to peer, prefixed with a SOCKS5 UDP header
// naming from as the originating target address.
func (a *AssociatedUDPConn) SendTo(payload []byte, frag uint8, from s5proto.Address, peer net.Addr) (int, error) {
	header := s5proto.UDPHeader{Frag: frag, Address: from}
	buf := make([]byte, 0, header.Len()+len(payload))
	buf = s5proto.AppendUDPHeader(buf, header)
	buf = append(buf, payload...)

	n, err := a.conn.WriteTo(buf, peer)
	if err != nil {
		return 0, err
	}
	return n - header.Len(), nil
}

// Recv reads one datagram from the peer fixed by Connect. Like
// RecvFrom, a datagram with no valid SOCKS5 UDP header is discarded
// and Recv tries again.
func (a *AssociatedUDPConn) Recv() (payload []byte, frag uint8, target s5proto.Address, err error) {
	for {
		p, f, t, src, err := a.RecvFrom()
		if err != nil {
			return nil, 0, s5proto.Address{}, err
		}
		if a.peer != nil && src.String() != a.peer.String() {
			continue
		}
		return p, f, t, nil
	}
}

// Send writes payload to the peer fixed by Connect, prefixed with a
// SOCKS5 UDP header naming from as the originating target address.
func (a *AssociatedUDPConn) Send(payload []byte, frag uint8, from s5proto.Address) (int, error) {
	if a.peer == nil {
		return 0, errNotConnected
	}
	return a.SendTo(payload, frag, from, a.peer)
}
