package hal

import (
	"context"
	"testing"
	"time"
)

func TestTimerWheelFiresAndCancels(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	w := NewTimerWheel(2)
	go w.Run(ctx)

	fired := make(chan struct{}, 16)
	h, err := w.RegisterPeriodic(5*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil || h == TimerHandleInvalid {
		t.Fatalf("RegisterPeriodic: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("timeout waiting for fire %d", i)
		}
	}

	w.Cancel(h)
	time.Sleep(10 * time.Millisecond)
	for len(fired) > 0 {
		<-fired
	}
	select {
	case <-fired:
		t.Fatal("fired after Cancel")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestTimerWheelRejects(t *testing.T) {
	w := NewTimerWheel(1)
	if h, err := w.RegisterPeriodic(0, func() {}); err != ErrInvalidInterval || h != TimerHandleInvalid {
		t.Fatalf("zero interval: %v %v", h, err)
	}
	if _, err := w.RegisterPeriodic(time.Second, func() {}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if h, err := w.RegisterPeriodic(time.Second, func() {}); err != ErrQueueFull || h != TimerHandleInvalid {
		t.Fatalf("over capacity: %v %v", h, err)
	}
}
