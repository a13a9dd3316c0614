package session

import "sync/atomic"

// Interrupt is the cooperative cancellation token shared between the shell's
// signal handler and the currently running cancellable operation. Exactly
// one foreground operation uses it at a time; each one calls Reset before
// starting and polls Interrupted at its read or receive boundaries. It is
// passed explicitly so tests and future concurrent sessions never share
// cancellation state by accident.
type Interrupt struct {
	tripped atomic.Bool
}

// NewInterrupt returns a token in the not-interrupted state.
func NewInterrupt() *Interrupt {
	return &Interrupt{}
}

// Reset clears the token. Called at the start of every cancellable
// operation.
func (i *Interrupt) Reset() {
	i.tripped.Store(false)
}

// Trip marks the token interrupted. Safe to call from a signal handler
// goroutine.
func (i *Interrupt) Trip() {
	i.tripped.Store(true)
}

// Interrupted reports whether Trip was called since the last Reset.
func (i *Interrupt) Interrupted() bool {
	return i.tripped.Load()
}
