// ABOUTME: Deadline-ordered audio scheduler
// ABOUTME: container/heap queue with a pull contract; policy-free aside from the late-drop rule
package scheduler

import (
	"container/heap"
	"sync"
	"time"

	"github.com/Sendspin/sendspin-go/pkg/audio"
)

// item wraps an audio.Buffer for heap storage.
type item struct {
	buf audio.Buffer
}

// orderedQueue implements heap.Interface, ordered by ascending deadline
// (PlayAt), breaking ties by server timestamp.
type orderedQueue []item

func (q orderedQueue) Len() int { return len(q) }

func (q orderedQueue) Less(i, j int) bool {
	if q[i].buf.PlayAt.Equal(q[j].buf.PlayAt) {
		return q[i].buf.Timestamp < q[j].buf.Timestamp
	}
	return q[i].buf.PlayAt.Before(q[j].buf.PlayAt)
}

func (q orderedQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *orderedQueue) Push(x any) { *q = append(*q, x.(item)) }

func (q *orderedQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Scheduler accepts decoded buffers tagged with a future local deadline and
// releases them to the caller exactly when due. One producer, one
// consumer; all operations are O(log n) under a single mutex.
type Scheduler struct {
	mu  sync.Mutex
	q   orderedQueue
	now func() time.Time
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Schedule enqueues buf. At most one buffer per server timestamp is an
// invariant of the caller, not enforced here.
func (s *Scheduler) Schedule(buf audio.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.q, item{buf: buf})
}

// NextReady returns the earliest-deadline buffer if its deadline has
// arrived, dropping any buffers whose lag past deadline exceeds their own
// duration (the §4.6 late-drop rule) before returning. Returns false if the
// earliest remaining deadline is still in the future; the caller should
// sleep briefly and poll again.
func (s *Scheduler) NextReady() (audio.Buffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for len(s.q) > 0 {
		earliest := s.q[0].buf
		if earliest.PlayAt.After(now) {
			return audio.Buffer{}, false
		}

		lag := now.Sub(earliest.PlayAt)
		if dur := bufferDuration(earliest); dur > 0 && lag > dur {
			heap.Pop(&s.q)
			continue
		}

		heap.Pop(&s.q)
		return earliest, true
	}

	return audio.Buffer{}, false
}

// Flush clears all queued buffers atomically. The caller's currently
// playing buffer (if any) is not this Scheduler's concern: it continues to
// completion in the output adapter before the queue is consulted again.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q = nil
}

// Len returns the number of buffers currently queued, for status reporting.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.q)
}

// bufferDuration computes how long buf takes to play at its declared
// format, or zero if the format is incomplete.
func bufferDuration(buf audio.Buffer) time.Duration {
	if buf.Format.Channels <= 0 || buf.Format.SampleRate <= 0 {
		return 0
	}
	frames := len(buf.Samples) / buf.Format.Channels
	return time.Duration(frames) * time.Second / time.Duration(buf.Format.SampleRate)
}
