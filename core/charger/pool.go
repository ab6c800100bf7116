package charger

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/evtolsim/core/metrics"
)

// ErrAcquireTimeout is returned when a unit fails to reach queue-front with a
// free slot within the pool's wait bound.
var ErrAcquireTimeout = errors.New("charger: acquire timed out")

// Pool coordinates access to a fixed number of charging slots. The free-slot
// count and the admission queue share one critical section so that slot
// availability and queue order are always observed together.
//
// Admission is earliest-deadline-first: the request with the smallest
// remaining-time snapshot is served first, ties broken by vehicle id. The
// priority key is captured once at Submit and never refreshed.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	capacity int
	free     int
	queue    requestQueue
	timeout  time.Duration
	sink     metrics.Sink
}

// NewPool creates a pool with the given slot capacity and per-attempt wait
// bound. A nil sink disables metrics.
func NewPool(capacity int, timeout time.Duration, sink metrics.Sink) (*Pool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("charger: capacity must be positive, got %d", capacity)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("charger: wait timeout must be positive, got %v", timeout)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	p := &Pool{capacity: capacity, free: capacity, timeout: timeout, sink: sink}
	p.cond = sync.NewCond(&p.mu)
	return p, nil
}

// Submit enqueues a charge request for vehicleID keyed by its remaining-time
// snapshot. It never blocks and never fails.
func (p *Pool) Submit(vehicleID int, deadline float64) {
	p.mu.Lock()
	heap.Push(&p.queue, chargeRequest{deadline: deadline, vehicleID: vehicleID})
	p.mu.Unlock()
	// A new request may become queue-front ahead of parked waiters.
	p.cond.Broadcast()
}

// TryAcquire blocks until vehicleID is queue-front with a free slot, or the
// pool's wait bound elapses. On success the slot is taken and the request
// removed, atomically. On timeout the caller's request is removed exactly once
// and ErrAcquireTimeout returned; the caller must not retry within the same
// charge attempt.
func (p *Pool) TryAcquire(vehicleID int) error {
	deadline := time.Now().Add(p.timeout)
	timer := time.AfterFunc(p.timeout, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer timer.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.eligible(vehicleID) {
		if !time.Now().Before(deadline) {
			p.remove(vehicleID)
			return ErrAcquireTimeout
		}
		p.cond.Wait()
	}
	p.free--
	heap.Pop(&p.queue)
	_ = p.sink.SetFreeSlots(p.free)
	return nil
}

// Release returns a slot to the pool and wakes all waiters. Releasing more
// slots than were acquired is a programming error.
func (p *Pool) Release() {
	p.mu.Lock()
	if p.free >= p.capacity {
		p.mu.Unlock()
		panic("charger: release without matching acquire")
	}
	p.free++
	_ = p.sink.SetFreeSlots(p.free)
	p.mu.Unlock()
	p.cond.Broadcast()
}

// eligible must be called with p.mu held.
func (p *Pool) eligible(vehicleID int) bool {
	return p.free > 0 && p.queue.Len() > 0 && p.queue[0].vehicleID == vehicleID
}

// remove drops vehicleID's request from the queue. Must be called with p.mu
// held. Each request is enqueued once per charge attempt, so at most one entry
// can match.
func (p *Pool) remove(vehicleID int) {
	for i := range p.queue {
		if p.queue[i].vehicleID == vehicleID {
			heap.Remove(&p.queue, i)
			return
		}
	}
}

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int { return p.capacity }

// Free returns the current number of free slots.
func (p *Pool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free
}

// QueueLen returns the number of pending charge requests.
func (p *Pool) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}
