package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx := context.Background()
	sub1 := b.Subscribe(ctx)
	sub2 := b.Subscribe(ctx)

	b.Publish(FileChangedEvent, "main.tex")

	for _, sub := range []<-chan Event[string]{sub1, sub2} {
		select {
		case ev := <-sub:
			assert.Equal(t, FileChangedEvent, ev.Type)
			assert.Equal(t, "main.tex", ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_SubscriptionCleanupOnContextCancel(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	require.Equal(t, 1, b.SubscriberCount())

	cancel()

	// The cleanup goroutine closes the channel.
	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	assert.Eventually(t, func() bool { return b.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestBroker_PublishAfterCloseIsNoop(t *testing.T) {
	b := NewBroker[int]()
	b.Close()

	assert.NotPanics(t, func() { b.Publish(FileChangedEvent, 1) })
}

func TestBroker_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := NewBroker[int]()
	b.Close()

	sub := b.Subscribe(context.Background())

	_, ok := <-sub
	assert.False(t, ok)
}

func TestBroker_FullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBrokerWithBuffer[int](1)
	defer b.Close()

	_ = b.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		b.Publish(FileChangedEvent, 1)
		b.Publish(FileChangedEvent, 2) // buffer full, must not block
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber")
	}
}
