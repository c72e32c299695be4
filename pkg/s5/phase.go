package s5

import "sync/atomic"

// phase is embedded in every handle that represents one step of the
// session state machine. consume reports whether this call is the
// first (and only legitimate) transition off the handle.
type phase struct {
	consumed int32
}

func (p *phase) consume() bool {
	return atomic.CompareAndSwapInt32(&p.consumed, 0, 1)
}
