//go:build !rp2040 && !rp2350

package console

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Default writes to stdout with colour when stdout is a terminal.
func Default() *Console { return NewColor(os.Stdout) }

// NewColor returns a console whose warnings are printed bold yellow.
func NewColor(w io.Writer) *Console {
	hi := color.New(color.FgYellow, color.Bold)
	return &Console{
		w: w,
		warn: func(w io.Writer, format string, args ...any) {
			_, _ = hi.Fprintf(w, format, args...)
		},
	}
}
