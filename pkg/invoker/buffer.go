package invoker

import (
	"bytes"
	"errors"
	"sync"
)

var errOutputLimit = errors.New("output limit exceeded")

// cappedBuffer accumulates process output up to limit bytes. A limit of zero
// or less means unbounded. Each stream gets its own buffer, written only by the
// exec copy goroutine and read after Wait returns.
type cappedBuffer struct {
	buf        bytes.Buffer
	limit      int64
	overflowed bool
	onOverflow func()
	once       sync.Once
}

func newCappedBuffer(limit int64, onOverflow func()) *cappedBuffer {
	return &cappedBuffer{
		limit:      limit,
		onOverflow: onOverflow,
	}
}

// Write appends p, truncating at the limit and returning errOutputLimit once exceeded.
func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}

	remaining := b.limit - int64(b.buf.Len())
	if int64(len(p)) <= remaining {
		return b.buf.Write(p)
	}

	n := 0
	if remaining > 0 {
		n, _ = b.buf.Write(p[:remaining])
	}
	b.overflowed = true
	b.once.Do(func() {
		if b.onOverflow != nil {
			b.onOverflow()
		}
	})
	return n, errOutputLimit
}

// Overflowed reports whether any write exceeded the limit.
func (b *cappedBuffer) Overflowed() bool {
	return b.overflowed
}

// Bytes returns the captured output.
func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

// String returns the captured output as a string.
func (b *cappedBuffer) String() string {
	return b.buf.String()
}
