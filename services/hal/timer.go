package hal

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"templogger-go/x/timex"
)

type timerItem struct {
	h     TimerHandle
	cb    func()
	due   int64
	every time.Duration
	index int
}

type timerHeap []*timerItem

func (q timerHeap) Len() int           { return len(q) }
func (q timerHeap) Less(i, j int) bool { return q[i].due < q[j].due }
func (q timerHeap) Swap(i, j int)      { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *timerHeap) Push(x any)        { it := x.(*timerItem); it.index = len(*q); *q = append(*q, it) }
func (q *timerHeap) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	it.index = -1
	*q = old[:n-1]
	return it
}
func (q timerHeap) Top() *timerItem {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// TimerWheel is a TimerService backed by a single goroutine and a min-heap
// of due times. Callbacks run on the Run goroutine, outside the poll loop.
type TimerWheel struct {
	mu    sync.Mutex
	wake  chan struct{}
	items map[TimerHandle]*timerItem
	h     timerHeap
	next  TimerHandle
	max   int
}

// NewTimerWheel returns a wheel accepting at most maxTimers registrations
// (<= 0 means 8).
func NewTimerWheel(maxTimers int) *TimerWheel {
	if maxTimers <= 0 {
		maxTimers = 8
	}
	return &TimerWheel{
		wake:  make(chan struct{}, 1),
		items: make(map[TimerHandle]*timerItem),
		max:   maxTimers,
	}
}

func (w *TimerWheel) RegisterPeriodic(interval time.Duration, cb func()) (TimerHandle, error) {
	if interval <= 0 || cb == nil {
		return TimerHandleInvalid, ErrInvalidInterval
	}
	w.mu.Lock()
	if len(w.items) >= w.max {
		w.mu.Unlock()
		return TimerHandleInvalid, ErrQueueFull
	}
	h := w.next
	w.next++
	it := &timerItem{
		h:     h,
		cb:    cb,
		due:   time.Now().Add(interval).UnixNano(),
		every: interval,
		index: -1,
	}
	w.items[h] = it
	heap.Push(&w.h, it)
	w.mu.Unlock()
	w.wakeup()
	return h, nil
}

func (w *TimerWheel) Cancel(h TimerHandle) {
	w.mu.Lock()
	if it := w.items[h]; it != nil {
		heap.Remove(&w.h, it.index)
		delete(w.items, h)
	}
	w.mu.Unlock()
	w.wakeup()
}

// Run fires due callbacks until ctx is cancelled.
func (w *TimerWheel) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		wait := w.nextWait()
		if wait < 0 {
			select {
			case <-ctx.Done():
				return
			case <-w.wake:
				continue
			}
		}
		if wait == 0 {
			var fire func()

			w.mu.Lock()
			now := time.Now().UnixNano()
			top := w.h.Top()
			if top != nil && top.due <= now {
				// Re-arm from the previous due time so the period does not drift.
				top.due += int64(top.every)
				if top.due <= now {
					top.due = now + int64(top.every)
				}
				heap.Fix(&w.h, 0)
				fire = top.cb
			}
			w.mu.Unlock()

			if fire != nil {
				fire()
			}
			continue
		}

		timex.ResetTimer(timer, time.Duration(wait))
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		case <-timer.C:
		}
	}
}

func (w *TimerWheel) nextWait() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	top := w.h.Top()
	if top == nil {
		return -1
	}
	now := time.Now().UnixNano()
	if top.due <= now {
		return 0
	}
	return top.due - now
}

func (w *TimerWheel) wakeup() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}
