package host

import (
	"context"
	"sync"
)

// Buffer is an in-memory Mount. It keeps the last markup mounted and counts
// replacements; once detached, replacements are silently dropped.
type Buffer struct {
	mu       sync.RWMutex
	content  []byte
	mounts   int
	detached bool
	onChange func([]byte)
}

// NewBuffer returns an attached, empty Buffer. onChange, when set, receives
// a copy of every mounted payload.
func NewBuffer(onChange func([]byte)) *Buffer {
	return &Buffer{onChange: onChange}
}

var _ Mount = (*Buffer)(nil)

// Replace implements Mount.
func (b *Buffer) Replace(ctx context.Context, markup []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	if b.detached {
		b.mu.Unlock()
		return nil
	}
	b.content = append(b.content[:0], markup...)
	b.mounts++
	notify := b.onChange
	b.mu.Unlock()

	if notify != nil {
		notify(append([]byte(nil), markup...))
	}
	return nil
}

// Content returns a copy of the mounted markup.
func (b *Buffer) Content() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.content...)
}

// String returns the mounted markup as text.
func (b *Buffer) String() string {
	return string(b.Content())
}

// Mounts reports how many replacements landed.
func (b *Buffer) Mounts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mounts
}

// Detach marks the mount point as removed from the page.
func (b *Buffer) Detach() {
	b.mu.Lock()
	b.detached = true
	b.mu.Unlock()
}
