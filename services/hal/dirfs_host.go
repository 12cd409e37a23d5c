//go:build !rp2040 && !rp2350

package hal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DirFS presents a host directory as a removable volume. The volume is
// mounted while the directory exists and unmounted when it disappears;
// a watcher goroutine polls for the transition and reports it through the
// registered handler.
type DirFS struct {
	volume string
	dir    string
	poll   time.Duration

	mu      sync.Mutex
	handler FSHandler
	mounted atomic.Bool
}

// NewDirFS maps the volume name (e.g. "/mnt/mydrive") onto dir.
func NewDirFS(volume, dir string, poll time.Duration) *DirFS {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	return &DirFS{volume: volume, dir: dir, poll: poll}
}

func (d *DirFS) SetEventHandler(fn FSHandler) {
	d.mu.Lock()
	d.handler = fn
	d.mu.Unlock()
}

// Run watches the backing directory until ctx is cancelled.
func (d *DirFS) Run(ctx context.Context) {
	t := time.NewTicker(d.poll)
	defer t.Stop()
	for {
		d.check()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (d *DirFS) check() {
	st, err := os.Stat(d.dir)
	present := err == nil && st.IsDir()
	if present == d.mounted.Load() {
		return
	}
	d.mounted.Store(present)
	ev := FSUnmount
	if present {
		ev = FSMount
	}
	d.mu.Lock()
	fn := d.handler
	d.mu.Unlock()
	if fn != nil {
		fn(ev, d.volume)
	}
}

func (d *DirFS) Open(path string) (File, error) {
	if !d.mounted.Load() {
		return nil, ErrNotMounted
	}
	rel, ok := strings.CutPrefix(path, d.volume)
	if !ok {
		return nil, fmt.Errorf("path %q outside volume %q: %w", path, d.volume, os.ErrNotExist)
	}
	f, err := os.OpenFile(filepath.Join(d.dir, filepath.FromSlash(rel)), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &dirFile{f: f}, nil
}

type dirFile struct {
	f *os.File
}

func (f *dirFile) Printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(f.f, format, args...); err != nil {
		return err
	}
	return f.f.Sync()
}

func (f *dirFile) Close() error { return f.f.Close() }
