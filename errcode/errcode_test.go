package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	cause := errors.New("nack")
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{FileWrite, FileWrite},
		{Wrap(TransferError, "i2c", cause), TransferError},
		{cause, Error},
	}
	for _, c := range cases {
		if got := Of(c.err); got != c.want {
			t.Fatalf("Of(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWrapMatchesCodeAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := error(Wrap(FileWrite, "storage.write", cause))

	if !errors.Is(err, FileWrite) {
		t.Fatal("errors.Is(err, FileWrite) = false")
	}
	if errors.Is(err, FileOpen) {
		t.Fatal("errors.Is(err, FileOpen) = true")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if got, want := err.Error(), "storage.write: file_write: disk full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
