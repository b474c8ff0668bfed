package toll

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := newQueue()
	q.enqueue(job{vehicleID: "A"})
	q.enqueue(job{vehicleID: "B"})
	q.enqueue(job{vehicleID: "C"})

	for _, want := range []string{"A", "B", "C"} {
		j, ok := q.dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, j.vehicleID)
	}
	assert.Equal(t, 0, q.len())
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	t.Parallel()

	q := newQueue()
	got := make(chan job, 1)
	go func() {
		j, _ := q.dequeue()
		got <- j
	}()

	select {
	case <-got:
		t.Fatal("dequeue returned before enqueue")
	case <-time.After(20 * time.Millisecond):
	}

	q.enqueue(job{vehicleID: "V1"})
	select {
	case j := <-got:
		assert.Equal(t, "V1", j.vehicleID)
	case <-time.After(time.Second):
		t.Fatal("dequeue never woke up")
	}
}

func TestCloseDrainsBeforeDone(t *testing.T) {
	t.Parallel()

	q := newQueue()
	q.enqueue(job{vehicleID: "A"})
	q.enqueue(job{vehicleID: "B"})
	q.close()

	assert.False(t, q.enqueue(job{vehicleID: "C"}))

	j, ok := q.dequeue()
	assert.True(t, ok)
	assert.Equal(t, "A", j.vehicleID)

	j, ok = q.dequeue()
	assert.True(t, ok)
	assert.Equal(t, "B", j.vehicleID)

	_, ok = q.dequeue()
	assert.False(t, ok)
}

func TestCloseWakesBlockedConsumer(t *testing.T) {
	t.Parallel()

	q := newQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.dequeue()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("consumer not released by close")
	}
}

func TestConcurrentEnqueueSingleConsumerSeesAll(t *testing.T) {
	t.Parallel()

	q := newQueue()
	const producers, each = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.enqueue(job{vehicleID: "V"})
			}
		}()
	}

	seen := 0
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for {
			if _, ok := q.dequeue(); !ok {
				return
			}
			seen++
		}
	}()

	wg.Wait()
	q.close()
	<-consumed

	assert.Equal(t, producers*each, seen)
}
