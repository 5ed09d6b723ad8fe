package kprotocol

import "github.com/eapache/queue"

// ProduceQueue is the per-partition transmit queue a Produce RequestRecord
// carries. Retries are prepended so the relative order of retried messages
// survives; backed by eapache/queue's ring buffer instead of a hand-rolled
// slice-shift.
type ProduceQueue struct {
	q *queue.Queue
}

// NewProduceQueue creates an empty queue.
func NewProduceQueue() *ProduceQueue {
	return &ProduceQueue{q: queue.New()}
}

// Push appends a message to the back of the queue (normal submission
// order).
func (pq *ProduceQueue) Push(msg *ProducerMessage) {
	pq.q.Add(msg)
}

// Prepend puts msgs back at the front of the queue, preserving their
// relative order, as the Produce handler does for retryable messages. The
// ring buffer only grows at the back, so the queue is rebuilt: retried
// batches are small and retries are rare enough that the O(n) shuffle
// never shows up next to the network round-trip that caused it.
func (pq *ProduceQueue) Prepend(msgs []*ProducerMessage) {
	if len(msgs) == 0 {
		return
	}
	tail := make([]*ProducerMessage, 0, pq.q.Length())
	for pq.q.Length() > 0 {
		tail = append(tail, pq.q.Peek().(*ProducerMessage))
		pq.q.Remove()
	}
	for _, m := range msgs {
		pq.q.Add(m)
	}
	for _, m := range tail {
		pq.q.Add(m)
	}
}

// Pop removes and returns the front message, or nil if empty.
func (pq *ProduceQueue) Pop() *ProducerMessage {
	if pq.q.Length() == 0 {
		return nil
	}
	msg := pq.q.Peek().(*ProducerMessage)
	pq.q.Remove()
	return msg
}

// Len reports the number of messages currently queued.
func (pq *ProduceQueue) Len() int {
	return pq.q.Length()
}

// Drain removes and returns up to n messages in FIFO order, the batch the
// Produce builder hands to the MessageSetCodec.
func (pq *ProduceQueue) Drain(n int) []*ProducerMessage {
	if n <= 0 || pq.q.Length() == 0 {
		return nil
	}
	if n > pq.q.Length() {
		n = pq.q.Length()
	}
	out := make([]*ProducerMessage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pq.Pop())
	}
	return out
}
