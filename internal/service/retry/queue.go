// Package retry runs background dispatch attempts: a due-time job queue
// fed by the dispatch engine and a scheduler that drains it.
package retry

import (
	"container/heap"
	"sync"
	"time"
)

// Kind is the kind of a queued dispatch attempt.
type Kind string

// Job kinds.
const (
	KindDispatch Kind = "dispatch"
	KindReassign Kind = "reassign"
	KindDelayed  Kind = "delayed"
)

// Job is a single queued dispatch attempt.
type Job struct {
	DeliveryID string
	Kind       Kind
	Due        time.Time

	seq uint64
}

type jobHeap []Job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if !h[i].Due.Equal(h[j].Due) {
		return h[i].Due.Before(h[j].Due)
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *jobHeap) Push(x any) { *h = append(*h, x.(Job)) }

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	j := old[n-1]
	*h = old[:n-1]
	return j
}

// Queue is an in-memory priority queue of jobs ordered by due time.
// Jobs with the same due time keep insertion order.
type Queue struct {
	mu   sync.Mutex
	jobs jobHeap
	seq  uint64
	wake chan struct{}
	now  func() time.Time
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock, used by tests.
func (q *Queue) WithClock(now func() time.Time) *Queue {
	if now != nil {
		q.now = now
	}
	return q
}

// Dispatch queues an immediate attempt for a freshly confirmed delivery.
func (q *Queue) Dispatch(deliveryID string) {
	q.Push(Job{DeliveryID: deliveryID, Kind: KindDispatch, Due: q.now()})
}

// Reassign queues an immediate attempt after a driver rejected the delivery.
func (q *Queue) Reassign(deliveryID string) {
	q.Push(Job{DeliveryID: deliveryID, Kind: KindReassign, Due: q.now()})
}

// After queues a delayed attempt.
func (q *Queue) After(deliveryID string, d time.Duration) {
	q.Push(Job{DeliveryID: deliveryID, Kind: KindDelayed, Due: q.now().Add(d)})
}

// Push adds a job and wakes the scheduler.
func (q *Queue) Push(j Job) {
	q.mu.Lock()
	q.seq++
	j.seq = q.seq
	heap.Push(&q.jobs, j)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// PopDue removes and returns the earliest job due at or before now.
func (q *Queue) PopDue(now time.Time) (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 || q.jobs[0].Due.After(now) {
		return Job{}, false
	}
	return heap.Pop(&q.jobs).(Job), true
}

// NextDue returns the due time of the earliest job.
func (q *Queue) NextDue() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return time.Time{}, false
	}
	return q.jobs[0].Due, true
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Wake is signalled whenever a job is pushed.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Discard drops every job. It replaces the queue in a process that does
// not run the scheduler; the worker's periodic sweep picks the deliveries up.
type Discard struct{}

func (Discard) Dispatch(string) {}

func (Discard) Reassign(string) {}
