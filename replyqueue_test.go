package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyQueueDeliverHappyPath(t *testing.T) {
	q := NewReplyQueue(1)
	handle := q.Handle()
	assert.True(t, handle.Valid())

	delivered := handle.Deliver(ReplyOp{Err: ErrNoError, Result: "ok", Cookie: 7})
	assert.True(t, delivered)

	op := <-q.Chan()
	assert.Equal(t, "ok", op.Result)
	assert.Equal(t, 7, op.Cookie)
}

func TestReplyQueueAdvanceDropsStaleHandle(t *testing.T) {
	q := NewReplyQueue(1)
	handle := q.Handle()

	q.Advance()
	assert.False(t, handle.Valid())

	delivered := handle.Deliver(ReplyOp{Err: ErrNoError})
	assert.False(t, delivered)
}

func TestReplyQueueFreshHandleAfterAdvanceStillDelivers(t *testing.T) {
	q := NewReplyQueue(1)
	q.Advance()
	handle := q.Handle()

	delivered := handle.Deliver(ReplyOp{Err: ErrNoError, Result: "fresh"})
	require.True(t, delivered)

	op := <-q.Chan()
	assert.Equal(t, "fresh", op.Result)
}

func TestReplyQueueDeliverDropsOnFullBuffer(t *testing.T) {
	q := NewReplyQueue(1)
	handle := q.Handle()

	assert.True(t, handle.Deliver(ReplyOp{Result: 1}))
	// Buffer of size 1 is now full; a second non-blocking delivery drops.
	assert.False(t, handle.Deliver(ReplyOp{Result: 2}))
}

func TestReplyQueueHandleZeroValueIsInvalid(t *testing.T) {
	var h ReplyQueueHandle
	assert.False(t, h.Valid())
	assert.False(t, h.Deliver(ReplyOp{}))
}
