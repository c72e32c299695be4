package s5

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/go-wireproxy/protocore/pkg/s5proto"
)

// pipeConn returns two connected in-memory net.Conn endpoints, one
// playing the client and one the server, for exercising the session
// state machine without a real socket.
func pipeConn(t *testing.T) (client, server net.Conn) {
	t.Helper()
	client, server = net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestConnectHandshakeScenario(t *testing.T) {
	client, server := pipeConn(t)

	done := make(chan error, 1)
	go func() {
		inc := NewIncomingConnection(server, Config{Method: s5proto.AuthNoAuth, AllowNoAuth: true})
		auth, err := inc.Authenticate()
		if err != nil {
			done <- err
			return
		}
		cc, err := auth.WaitRequest()
		if err != nil {
			done <- err
			return
		}
		if cc.Connect == nil {
			done <- errors.New("expected Connect command")
			return
		}
		if cc.Target.String() != "127.0.0.1:80" {
			done <- errors.New("unexpected target: " + cc.Target.String())
			return
		}
		_, err = cc.Connect.Reply(s5proto.ReplySucceeded, s5proto.UnspecifiedAddress())
		done <- err
	}()

	client.SetDeadline(time.Now().Add(2 * time.Second))

	if _, err := client.Write([]byte{0x05, 0x01, 0x00}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}
	hsResp := make([]byte, 2)
	if _, err := readFull(client, hsResp); err != nil {
		t.Fatalf("read handshake response: %v", err)
	}
	if hsResp[0] != 0x05 || hsResp[1] != 0x00 {
		t.Fatalf("handshake response = % x, want 05 00", hsResp)
	}

	if _, err := client.Write([]byte{0x05, 0x01, 0x00, 0x01, 0x7f, 0x00, 0x00, 0x01, 0x00, 0x50}); err != nil {
		t.Fatalf("write request: %v", err)
	}
	cmdResp := make([]byte, 10)
	if _, err := readFull(client, cmdResp); err != nil {
		t.Fatalf("read command response: %v", err)
	}
	want := []byte{0x05, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i := range want {
		if cmdResp[i] != want[i] {
			t.Fatalf("command response = % x, want % x", cmdResp, want)
		}
	}

	if err := <-done; err != nil {
		t.Fatalf("server goroutine: %v", err)
	}
}

func readFull(r net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestStaleHandleRejected(t *testing.T) {
	_, server := pipeConn(t)
	inc := NewIncomingConnection(server, Config{Method: s5proto.AuthNoAuth, AllowNoAuth: true})
	inc.consumed = 1 // simulate a prior Authenticate call

	if _, err := inc.Authenticate(); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("err = %v, want ErrStaleHandle", err)
	}
}

func TestBindTwoReplySequence(t *testing.T) {
	client, server := pipeConn(t)

	done := make(chan error, 1)
	go func() {
		inc := NewIncomingConnection(server, Config{Method: s5proto.AuthNoAuth, AllowNoAuth: true})
		auth, err := inc.Authenticate()
		if err != nil {
			done <- err
			return
		}
		cc, err := auth.WaitRequest()
		if err != nil {
			done <- err
			return
		}
		if cc.Bind == nil {
			done <- errors.New("expected Bind command")
			return
		}
		second, err := cc.Bind.Reply(s5proto.ReplySucceeded, s5proto.Address{IP: net.IPv4(0, 0, 0, 0), Port: 9000})
		if err != nil {
			done <- err
			return
		}
		if _, err := cc.Bind.Reply(s5proto.ReplySucceeded, s5proto.UnspecifiedAddress()); !errors.Is(err, ErrStaleHandle) {
			done <- errors.New("expected ErrStaleHandle on second call to first Reply")
			return
		}
		_, err = second.Reply(s5proto.ReplySucceeded, s5proto.Address{IP: net.IPv4(1, 2, 3, 4), Port: 4444})
		done <- err
	}()

	client.SetDeadline(time.Now().Add(2 * time.Second))
	client.Write([]byte{0x05, 0x01, 0x00})
	readFull(client, make([]byte, 2))
	client.Write([]byte{0x05, 0x02, 0x00, 0x01, 0, 0, 0, 0, 0, 0})
	readFull(client, make([]byte, 10)) // first reply
	readFull(client, make([]byte, 10)) // second reply

	if err := <-done; err != nil {
		t.Fatalf("server goroutine: %v", err)
	}
}

func TestAuthenticateHandshakeTimeout(t *testing.T) {
	_, server := pipeConn(t)
	inc := NewIncomingConnection(server, Config{
		Method:      s5proto.AuthNoAuth,
		AllowNoAuth: true,
		Timeout:     10 * time.Millisecond,
	})

	// No client write ever arrives, so the read past the deadline
	// must surface as ErrHandshakeTimeout rather than hang or leak a
	// raw net.Error.
	_, err := inc.Authenticate()
	if !errors.Is(err, ErrHandshakeTimeout) {
		t.Fatalf("err = %v, want ErrHandshakeTimeout", err)
	}
}

func TestVersionMismatchWritesNoReply(t *testing.T) {
	client, server := pipeConn(t)

	errCh := make(chan error, 1)
	go func() {
		inc := NewIncomingConnection(server, Config{Method: s5proto.AuthNoAuth, AllowNoAuth: true})
		_, err := inc.Authenticate()
		errCh <- err
	}()

	// net.Pipe is unbuffered and the server stops after the version
	// byte, so the write must not block the test goroutine.
	go client.Write([]byte{0x04, 0x01, 0x00})

	if err := <-errCh; !errors.Is(err, s5proto.ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}

	client.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	buf := make([]byte, 1)
	if _, err := client.Read(buf); err == nil {
		t.Fatal("expected no reply to be written for a bad version byte")
	}
}
