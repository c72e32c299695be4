package s5

import (
	"net"

	"github.com/go-wireproxy/protocore/pkg/netstream"
	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// Bind is a session that has requested the BIND command. BIND needs
// two replies: the first announces the address the server is
// listening on, the second announces the peer that connected to it.
// Bind.Reply returns a BindAwaitingSecondReply handle; only after its
// Reply does the connection become a plain stream.
type Bind struct {
	phase
	stream *netstream.Stream
}

// Reply sends the first BIND reply (the server's listening address)
// and returns a handle for the second. Bind is consumed: calling
// Reply again returns ErrStaleHandle.
func (b *Bind) Reply(reply s5proto.Reply, listening s5proto.Address) (*BindAwaitingSecondReply, error) {
	if !b.consume() {
		return nil, ErrStaleHandle
	}
	if err := s5proto.WriteResponse(b.stream, s5proto.Response{Reply: reply, Address: listening}); err != nil {
		return nil, err
	}
	return &BindAwaitingSecondReply{stream: b.stream}, nil
}

// BindAwaitingSecondReply is a BIND session that has sent its first
// reply and is waiting to announce the peer that connected.
type BindAwaitingSecondReply struct {
	phase
	stream *netstream.Stream
}

// Reply sends the second BIND reply (the address of the peer that
// connected to the bound listener) and returns the underlying
// connection, now a plain byte stream. Consumed the same way as the
// first reply.
func (b *BindAwaitingSecondReply) Reply(reply s5proto.Reply, peer s5proto.Address) (net.Conn, error) {
	if !b.consume() {
		return nil, ErrStaleHandle
	}
	if err := s5proto.WriteResponse(b.stream, s5proto.Response{Reply: reply, Address: peer}); err != nil {
		return nil, err
	}
	return b.stream.Extract(), nil
}
