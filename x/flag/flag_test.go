package flag

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestTakeConsumesOnce(t *testing.T) {
	var f Flag
	if f.Take() {
		t.Fatal("zero flag reported set")
	}
	f.Set()
	f.Set()
	if !f.Take() {
		t.Fatal("Take after Set = false")
	}
	if f.Take() {
		t.Fatal("second Take observed the same Set")
	}
}

func TestClearRetracts(t *testing.T) {
	var f Flag
	f.Set()
	f.Clear()
	if f.IsSet() || f.Take() {
		t.Fatal("flag still set after Clear")
	}
}

func TestConcurrentTakersObserveOneSet(t *testing.T) {
	var f Flag
	f.Set()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.Take() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := wins.Load(); got != 1 {
		t.Fatalf("Take succeeded %d times, want 1", got)
	}
}
