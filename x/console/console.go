// Package console is the operator-facing text output of the logger: the
// progress lines, readings and fault reports the state machines print.
package console

import (
	"fmt"
	"io"
	"sync"
)

// Console serialises formatted lines onto one writer. The zero value
// discards output.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	warn func(w io.Writer, format string, args ...any)
}

func New(w io.Writer) *Console { return &Console{w: w} }

// Discard returns a console that drops everything.
func Discard() *Console { return &Console{} }

// Printf writes a formatted message as-is; callers supply line endings.
func (c *Console) Printf(format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.w == nil {
		return
	}
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// Warnf writes a highlighted message where the platform supports it.
func (c *Console) Warnf(format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.w == nil {
		return
	}
	if c.warn != nil {
		c.warn(c.w, format, args...)
		return
	}
	_, _ = fmt.Fprintf(c.w, format, args...)
}
