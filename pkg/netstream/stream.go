// Package netstream provides Stream, a wrapper around a byte-oriented
// network connection that performs a best-effort graceful half-close
// when it is no longer reachable, without ever blocking its caller.
package netstream

import (
	"net"
	"runtime"
	"sync"
	"sync/atomic"
)

// halfCloser is satisfied by connections that support a one-directional
// shutdown, such as *net.TCPConn. Streams whose underlying connection
// does not implement it fall back to a full Close on drop.
type halfCloser interface {
	CloseWrite() error
}

// Stream owns a net.Conn and guarantees a best-effort half-close when it
// is garbage collected, unless it has already been closed explicitly or
// extracted with Extract. The guarantee is best-effort and asynchronous:
// the finalizer spawns a goroutine to perform the shutdown so that a
// caller who merely lets a Stream go out of scope never blocks on it.
type Stream struct {
	conn    net.Conn
	done    int32 // atomic: 1 once Close/Extract has run
	extract sync.Once
}

// New wraps conn in a Stream and arms the drop-time half-close.
func New(conn net.Conn) *Stream {
	s := &Stream{conn: conn}
	runtime.SetFinalizer(s, finalize)
	return s
}

func finalize(s *Stream) {
	if atomic.CompareAndSwapInt32(&s.done, 0, 1) {
		go func() {
			if hc, ok := s.conn.(halfCloser); ok {
				_ = hc.CloseWrite()
				return
			}
			_ = s.conn.Close()
		}()
	}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) { return s.conn.Read(p) }

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) { return s.conn.Write(p) }

// Conn returns the underlying connection without disarming the drop-time
// half-close. Use Extract if you intend to take over the connection's
// lifecycle entirely.
func (s *Stream) Conn() net.Conn { return s.conn }

// Shutdown performs the half-close (or full close, if the connection
// doesn't support half-close) synchronously and reports any error. Safe
// to call more than once; subsequent calls are no-ops.
func (s *Stream) Shutdown() error {
	if !atomic.CompareAndSwapInt32(&s.done, 0, 1) {
		return nil
	}
	runtime.SetFinalizer(s, nil)
	if hc, ok := s.conn.(halfCloser); ok {
		return hc.CloseWrite()
	}
	return s.conn.Close()
}

// Extract disarms the drop-time half-close and returns the underlying
// connection, handing its lifecycle to the caller.
func (s *Stream) Extract() net.Conn {
	var conn net.Conn
	s.extract.Do(func() {
		atomic.StoreInt32(&s.done, 1)
		runtime.SetFinalizer(s, nil)
		conn = s.conn
	})
	if conn == nil {
		return s.conn
	}
	return conn
}
