package terminal

import (
	"io"
	"sync"
)

// SessionBackend drives a Terminal over an arbitrary byte stream whose
// window size is reported out of band, such as an SSH session with a pty
// request. The remote end is assumed to already be in raw mode.
type SessionBackend struct {
	rw io.ReadWriter

	mu      sync.Mutex
	width   int
	height  int
	handler func(width, height int)

	readBuf []byte
}

// NewSessionBackend wraps rw as a terminal backend with an initial size.
func NewSessionBackend(rw io.ReadWriter, width, height int) *SessionBackend {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &SessionBackend{
		rw:      rw,
		width:   width,
		height:  height,
		readBuf: make([]byte, 256),
	}
}

func (b *SessionBackend) Init() error {
	return nil
}

func (b *SessionBackend) Fini() {}

func (b *SessionBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *SessionBackend) Write(p []byte) error {
	_, err := b.rw.Write(p)
	return err
}

// Read blocks on the underlying stream. The stop channel cannot interrupt
// a blocked stream read; closing the stream unblocks it instead.
func (b *SessionBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	default:
	}

	n, err := b.rw.Read(b.readBuf)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	ret := make([]byte, n)
	copy(ret, b.readBuf[:n])
	return ret, nil
}

func (b *SessionBackend) SetResizeHandler(handler func(width, height int)) {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
}

// Resize records a new remote window size and notifies the handler.
// Called by the session owner when the remote end reports a change.
func (b *SessionBackend) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.mu.Lock()
	b.width = width
	b.height = height
	handler := b.handler
	b.mu.Unlock()

	if handler != nil {
		handler(width, height)
	}
}
