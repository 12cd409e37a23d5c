package conv

import (
	"math"
	"testing"
)

func TestAppendInt(t *testing.T) {
	for _, c := range []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{25, "25"},
		{-7, "-7"},
		{math.MaxInt64, "9223372036854775807"},
	} {
		if got := string(AppendInt([]byte("x="), c.n)); got != "x="+c.want {
			t.Fatalf("AppendInt(%d) = %q", c.n, got)
		}
	}
}

func TestAppendPad2(t *testing.T) {
	for _, c := range []struct {
		n    int
		want string
	}{
		{0, "00"},
		{7, "07"},
		{59, "59"},
		{123, "23"},
	} {
		if got := string(AppendPad2(nil, c.n)); got != c.want {
			t.Fatalf("AppendPad2(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
