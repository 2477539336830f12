package render

import "time"

// Scheduler runs a callback on the next animation frame. The returned cancel
// function drops the callback if it has not run yet.
type Scheduler interface {
	ScheduleFrame(fn func(now time.Time)) (cancel func())
}

// FrameQueue is a Scheduler for hosts that drive frames themselves: a game
// loop, a ticker or a test calls RunFrame once per frame.
type FrameQueue struct {
	nextID  int
	pending map[int]func(time.Time)
	order   []int
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[int]func(time.Time))}
}

func (q *FrameQueue) ScheduleFrame(fn func(now time.Time)) func() {
	id := q.nextID
	q.nextID++
	q.pending[id] = fn
	q.order = append(q.order, id)
	return func() { delete(q.pending, id) }
}

// Pending reports how many callbacks are waiting.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// RunFrame runs every callback scheduled before the call. Callbacks
// scheduled while running wait for the next frame.
func (q *FrameQueue) RunFrame(now time.Time) {
	ids := q.order
	q.order = nil
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn(now)
	}
}
