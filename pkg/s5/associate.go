package s5

import (
	"io"

	"github.com/go-wireproxy/protocore/pkg/netstream"
	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// UdpAssociate is a session that has requested the UDP-ASSOCIATE
// command. After Reply, the TCP connection carries no further SOCKS5
// framing; per RFC 1928 §7, the server must release the associated UDP
// socket once this TCP connection closes, so WaitUntilClosed is
// provided to drive that teardown.
type UdpAssociate struct {
	phase
	stream *netstream.Stream
}

// UdpAssociateReady is a UDP-ASSOCIATE session that has sent its
// reply. Its only remaining purpose is to detect the client closing
// the control connection.
type UdpAssociateReady struct {
	stream *netstream.Stream
}

// Reply sends the UDP-ASSOCIATE reply, carrying the address and port
// the client should send UDP datagrams to. UdpAssociate is consumed:
// calling Reply again returns ErrStaleHandle.
func (u *UdpAssociate) Reply(reply s5proto.Reply, relay s5proto.Address) (*UdpAssociateReady, error) {
	if !u.consume() {
		return nil, ErrStaleHandle
	}
	if err := s5proto.WriteResponse(u.stream, s5proto.Response{Reply: reply, Address: relay}); err != nil {
		return nil, err
	}
	return &UdpAssociateReady{stream: u.stream}, nil
}

// WaitUntilClosed blocks until the client closes the control
// connection, per RFC 1928 §7's requirement that the server release
// the associated UDP socket at that point. It discards any bytes the
// client sends, since the control connection carries no further
// framing once UDP-ASSOCIATE is active.
func (r *UdpAssociateReady) WaitUntilClosed() error {
	var discard [256]byte
	for {
		_, err := r.stream.Read(discard[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
