package s5

import (
	"net"

	"github.com/go-wireproxy/protocore/pkg/netstream"
	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// Connect is a session that has requested the CONNECT command. After
// Reply, the connection is a regular byte stream the caller can splice
// with the upstream connection.
type Connect struct {
	phase
	stream *netstream.Stream
}

// Reply sends the single CONNECT reply and returns the underlying
// connection. Connect is consumed: calling Reply again returns
// ErrStaleHandle.
func (c *Connect) Reply(reply s5proto.Reply, bound s5proto.Address) (net.Conn, error) {
	if !c.consume() {
		return nil, ErrStaleHandle
	}
	if err := s5proto.WriteResponse(c.stream, s5proto.Response{Reply: reply, Address: bound}); err != nil {
		return nil, err
	}
	return c.stream.Extract(), nil
}
