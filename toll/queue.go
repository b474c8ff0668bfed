package toll

import "sync"

// job asks the worker to evaluate the latest segment for one vehicle.
type job struct {
	vehicleID string
}

// queue is an unbounded FIFO with non-blocking enqueue and blocking
// dequeue. After close the consumer still drains everything already
// queued; only then does dequeue report done.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []job
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// enqueue appends a job. Returns false once the queue is closed.
func (q *queue) enqueue(j job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.jobs = append(q.jobs, j)
	q.cond.Signal()
	return true
}

// dequeue blocks until a job is available or the queue is closed and
// drained.
func (q *queue) dequeue() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return job{}, false
	}

	j := q.jobs[0]
	q.jobs = q.jobs[1:]
	return j, true
}

// close stops accepting new jobs. Queued jobs remain deliverable.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
