package hal

import (
	"testing"
	"time"

	"templogger-go/types"
)

func TestSoftRTCAdvancesAndWraps(t *testing.T) {
	now := time.Unix(1000, 0)
	r := &SoftRTC{now: func() time.Time { return now }}

	r.SetTime(types.Clock{Hour: 23, Min: 59, Sec: 58})
	if got := r.Time(); got != (types.Clock{Hour: 23, Min: 59, Sec: 58}) {
		t.Fatalf("Time() = %+v", got)
	}
	now = now.Add(3 * time.Second)
	if got := r.Time(); got != (types.Clock{Hour: 0, Min: 0, Sec: 1}) {
		t.Fatalf("Time() after wrap = %+v", got)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:08:09")
	if err != nil || c != (types.Clock{Hour: 7, Min: 8, Sec: 9}) {
		t.Fatalf("ParseClock = %+v, %v", c, err)
	}
	if _, err := ParseClock("7pm"); err == nil {
		t.Fatal("expected error")
	}
}
