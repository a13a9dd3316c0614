package portforward

import "sync"

// maxOutputBytes bounds how much captured process output each forward
// retains. Older output is discarded first.
const maxOutputBytes = 64 * 1024

// outputBuffer accumulates process output. A single capture goroutine
// writes; readers take the mutex, so snapshots are always consistent.
type outputBuffer struct {
	mu   sync.Mutex
	data []byte
	max  int
}

func newOutputBuffer(max int) *outputBuffer {
	return &outputBuffer{max: max}
}

func (b *outputBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	if len(b.data) > b.max {
		excess := len(b.data) - b.max
		b.data = append(b.data[:0], b.data[excess:]...)
	}
	return len(p), nil
}

// String returns a copy of the buffered output.
func (b *outputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}
