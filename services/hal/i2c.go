package hal

import (
	"context"
	"sync"
	"sync/atomic"

	"tinygo.org/x/drivers"
)

type i2cClient struct {
	bus     drivers.I2C
	intent  Intent
	handler TransferHandler
}

type i2cJob struct {
	client *i2cClient
	th     TransferHandle
	addr   uint16
	w      []byte
	r      []byte
}

// I2CQueue turns blocking drivers.I2C buses into an asynchronous I2CDriver.
// Transfers are queued and executed in order by one worker goroutine, which
// reports each outcome through the client's handler.
type I2CQueue struct {
	mu      sync.Mutex
	buses   map[int]drivers.I2C
	clients []*i2cClient

	jobs     chan i2cJob
	nextXfer atomic.Int32
	started  atomic.Bool
}

// NewI2CQueue wraps the given buses (keyed by index). queueLen bounds the
// number of outstanding transfers across all clients (<= 0 means 4).
func NewI2CQueue(buses map[int]drivers.I2C, queueLen int) *I2CQueue {
	if queueLen <= 0 {
		queueLen = 4
	}
	return &I2CQueue{
		buses: buses,
		jobs:  make(chan i2cJob, queueLen),
	}
}

func (q *I2CQueue) Open(index int, intent Intent) (I2CHandle, error) {
	bus, ok := q.buses[index]
	if !ok || bus == nil {
		return I2CHandleInvalid, ErrUnknownBus
	}
	if intent == 0 {
		return I2CHandleInvalid, ErrInvalidHandle
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clients = append(q.clients, &i2cClient{bus: bus, intent: intent})
	return I2CHandle(len(q.clients) - 1), nil
}

func (q *I2CQueue) SetEventHandler(h I2CHandle, fn TransferHandler) {
	q.mu.Lock()
	if c := q.client(h); c != nil {
		c.handler = fn
	}
	q.mu.Unlock()
}

func (q *I2CQueue) WriteReadTransfer(h I2CHandle, addr uint16, w, r []byte) (TransferHandle, error) {
	q.mu.Lock()
	c := q.client(h)
	q.mu.Unlock()
	if c == nil {
		return TransferHandleInvalid, ErrInvalidHandle
	}
	if (len(w) > 0 && c.intent&IntentWrite == 0) || (len(r) > 0 && c.intent&IntentRead == 0) {
		return TransferHandleInvalid, ErrInvalidHandle
	}
	th := TransferHandle(q.nextXfer.Add(1) & 0x7fffffff)
	job := i2cJob{client: c, th: th, addr: addr, w: append([]byte(nil), w...), r: r}
	select {
	case q.jobs <- job:
		return th, nil
	default:
		return TransferHandleInvalid, ErrQueueFull
	}
}

// Start launches the transfer worker.
func (q *I2CQueue) Start(ctx context.Context) {
	if !q.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-q.jobs:
				ev := TransferComplete
				if err := job.client.bus.Tx(job.addr, job.w, job.r); err != nil {
					ev = TransferError
				}
				q.mu.Lock()
				fn := job.client.handler
				q.mu.Unlock()
				if fn != nil {
					fn(ev, job.th)
				}
			}
		}
	}()
}

func (q *I2CQueue) client(h I2CHandle) *i2cClient {
	if h < 0 || int(h) >= len(q.clients) {
		return nil
	}
	return q.clients[h]
}
