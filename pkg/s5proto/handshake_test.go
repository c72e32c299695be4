package s5proto

import (
	"bytes"
	"errors"
	"testing"
)

func TestHandshakeConnectScenario(t *testing.T) {
	// Client sends 05 01 00, server replies 05 00.
	req, err := ReadHandshakeRequest(bytes.NewReader([]byte{0x05, 0x01, 0x00}))
	if err != nil {
		t.Fatalf("ReadHandshakeRequest: %v", err)
	}
	if !req.Offers(AuthNoAuth) {
		t.Fatalf("req.Methods = %v, want to offer NoAuth", req.Methods)
	}

	var out bytes.Buffer
	if err := WriteHandshakeResponse(&out, HandshakeResponse{Method: AuthNoAuth}); err != nil {
		t.Fatalf("WriteHandshakeResponse: %v", err)
	}
	if !bytes.Equal(out.Bytes(), []byte{0x05, 0x00}) {
		t.Errorf("response = % x, want 05 00", out.Bytes())
	}

	// Client sends 05 01 00 01 7F 00 00 01 00 50, CONNECT to 127.0.0.1:80.
	cmdReq, err := ReadRequest(bytes.NewReader([]byte{0x05, 0x01, 0x00, 0x01, 0x7f, 0x00, 0x00, 0x01, 0x00, 0x50}))
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if cmdReq.Command != CommandConnect {
		t.Errorf("Command = %v, want Connect", cmdReq.Command)
	}
	if got := cmdReq.Address.String(); got != "127.0.0.1:80" {
		t.Errorf("Address = %s, want 127.0.0.1:80", got)
	}

	out.Reset()
	if err := WriteResponse(&out, Response{Reply: ReplySucceeded, Address: UnspecifiedAddress()}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	want := []byte{0x05, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("response = % x, want % x", out.Bytes(), want)
	}
}

func TestReadHandshakeRequestRejectsBadVersion(t *testing.T) {
	_, err := ReadHandshakeRequest(bytes.NewReader([]byte{0x04, 0x01, 0x00}))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestReadRequestRejectsBadVersion(t *testing.T) {
	_, err := ReadRequest(bytes.NewReader([]byte{0x04, 0x01, 0x00, 0x01, 0, 0, 0, 0, 0, 0}))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestReadRequestRejectsNonZeroReserved(t *testing.T) {
	_, err := ReadRequest(bytes.NewReader([]byte{0x05, 0x01, 0x01, 0x01, 0x7f, 0x00, 0x00, 0x01, 0x00, 0x50}))
	if !errors.Is(err, ErrInvalidReserved) {
		t.Fatalf("err = %v, want ErrInvalidReserved", err)
	}
}

func TestUserPassRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x01)
	buf.WriteByte(byte(len("alice")))
	buf.WriteString("alice")
	buf.WriteByte(byte(len("hunter2")))
	buf.WriteString("hunter2")

	got, err := ReadUserPassRequest(&buf)
	if err != nil {
		t.Fatalf("ReadUserPassRequest: %v", err)
	}
	if got.Username != "alice" || got.Password != "hunter2" {
		t.Errorf("got %+v", got)
	}
}
