package s5

import (
	"github.com/go-wireproxy/protocore/pkg/netstream"
	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// Authenticated is a SOCKS5 connection that has completed the
// handshake phase. Call WaitRequest to learn which command the client
// wants to run.
type Authenticated struct {
	phase
	stream *netstream.Stream
}

// ClientConnection is the result of WaitRequest: exactly one of
// Connect, Bind, or UdpAssociate is non-nil, matching the command the
// client requested.
type ClientConnection struct {
	Target s5proto.Address

	Connect      *Connect
	Bind         *Bind
	UdpAssociate *UdpAssociate
}

// WaitRequest reads the client's post-handshake command request and
// returns a phase handle for whichever command it named. Authenticated
// is consumed: calling WaitRequest again returns ErrStaleHandle.
func (a *Authenticated) WaitRequest() (*ClientConnection, error) {
	if !a.consume() {
		return nil, ErrStaleHandle
	}

	req, err := s5proto.ReadRequest(a.stream)
	if err != nil {
		return nil, err
	}
	target := req.Address

	switch req.Command {
	case s5proto.CommandConnect:
		return &ClientConnection{Target: target, Connect: &Connect{stream: a.stream}}, nil
	case s5proto.CommandBind:
		return &ClientConnection{Target: target, Bind: &Bind{stream: a.stream}}, nil
	case s5proto.CommandUDPAssociate:
		return &ClientConnection{Target: target, UdpAssociate: &UdpAssociate{stream: a.stream}}, nil
	default:
		// s5proto.ReadRequest already rejects unknown commands; this
		// branch exists only to satisfy exhaustiveness.
		return nil, ErrStaleHandle
	}
}
