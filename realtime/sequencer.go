package realtime

import "sync"

type job struct {
	fn   func()
	done chan struct{}
}

type jobQueue struct {
	jobs   []*job
	active bool
}

// Sequencer runs jobs for the same letter id strictly in submission order
// while letting jobs for different letter ids proceed concurrently. Each
// active letter id gets its own drain goroutine; the queue entry is dropped
// once drained, so idle letters cost nothing.
//
// The archive lifecycle shares the coordinator's sequencer, so an archive or
// delete can never interleave with an in-flight content write for the same
// letter.
type Sequencer struct {
	mu     sync.Mutex
	queues map[string]*jobQueue
}

func NewSequencer() *Sequencer {
	return &Sequencer{queues: make(map[string]*jobQueue)}
}

// Do enqueues fn on the queue for letterID and blocks until it has run.
// fn must not call Do for the same letter id again.
func (q *Sequencer) Do(letterID string, fn func()) {
	j := &job{fn: fn, done: make(chan struct{})}

	q.mu.Lock()
	queue, ok := q.queues[letterID]
	if !ok {
		queue = &jobQueue{}
		q.queues[letterID] = queue
	}
	queue.jobs = append(queue.jobs, j)
	if !queue.active {
		queue.active = true
		go q.drain(letterID, queue)
	}
	q.mu.Unlock()

	<-j.done
}

func (q *Sequencer) drain(letterID string, queue *jobQueue) {
	for {
		q.mu.Lock()
		if len(queue.jobs) == 0 {
			queue.active = false
			delete(q.queues, letterID)
			q.mu.Unlock()
			return
		}
		j := queue.jobs[0]
		queue.jobs = queue.jobs[1:]
		q.mu.Unlock()

		j.fn()
		close(j.done)
	}
}
