package sim

import (
	"fmt"
	"strings"
	"sync"

	"templogger-go/services/hal"
)

// MemFS is a removable in-memory FileSystem. Mount and Unmount deliver
// events synchronously on the caller's goroutine, like an interrupt
// preempting the poll loop.
type MemFS struct {
	mu       sync.Mutex
	handler  hal.FSHandler
	mounted  map[string]bool
	files    map[string]*strings.Builder
	opens    int
	writes   int
	unsafeWr int // writes attempted while the volume was not mounted
	closes   int

	FailOpen  bool
	FailWrite bool
}

func NewMemFS() *MemFS {
	return &MemFS{mounted: map[string]bool{}, files: map[string]*strings.Builder{}}
}

func (m *MemFS) SetEventHandler(fn hal.FSHandler) {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
}

func (m *MemFS) Mount(volume string)   { m.event(hal.FSMount, volume, true) }
func (m *MemFS) Unmount(volume string) { m.event(hal.FSUnmount, volume, false) }

func (m *MemFS) event(ev hal.FSEvent, volume string, mounted bool) {
	m.mu.Lock()
	m.mounted[volume] = mounted
	fn := m.handler
	m.mu.Unlock()
	if fn != nil {
		fn(ev, volume)
	}
}

func (m *MemFS) Open(path string) (hal.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vol := m.volumeOf(path)
	if vol == "" {
		return nil, hal.ErrNotMounted
	}
	if m.FailOpen {
		return nil, ErrInjected
	}
	m.opens++
	b := m.files[path]
	if b == nil {
		b = &strings.Builder{}
		m.files[path] = b
	}
	return &memFile{fs: m, vol: vol, b: b}, nil
}

func (m *MemFS) volumeOf(path string) string {
	for v, ok := range m.mounted {
		if ok && strings.HasPrefix(path, v+"/") {
			return v
		}
	}
	return ""
}

// Contents returns everything written to path.
func (m *MemFS) Contents(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b := m.files[path]; b != nil {
		return b.String()
	}
	return ""
}

// Lines splits Contents on the CRLF record terminator.
func (m *MemFS) Lines(path string) []string {
	s := m.Contents(path)
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\r\n"), "\r\n")
}

func (m *MemFS) Stats() (opens, writes, closes, unmountedWrites int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens, m.writes, m.closes, m.unsafeWr
}

type memFile struct {
	fs     *MemFS
	vol    string
	b      *strings.Builder
	closed bool
}

func (f *memFile) Printf(format string, args ...any) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.writes++
	if !f.fs.mounted[f.vol] {
		f.fs.unsafeWr++
		return hal.ErrNotMounted
	}
	if f.closed {
		return hal.ErrClosed
	}
	if f.fs.FailWrite {
		return ErrInjected
	}
	fmt.Fprintf(f.b, format, args...)
	return nil
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.closes++
	f.closed = true
	return nil
}
