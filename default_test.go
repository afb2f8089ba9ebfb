package gochannels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultChannelLatchesLastValue(t *testing.T) {
	ch := NewDefault[int]()
	ctx := context.Background()

	require.NoError(t, ch.Send(ctx, 1))
	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	// Receiving again without an intervening send returns the same value:
	// the channel never consumes it.
	v, err = ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	require.NoError(t, ch.Send(ctx, 2))
	v, err = ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestDefaultChannelWithInitialValue(t *testing.T) {
	ch := NewDefault[string]("seed")
	v, err := ch.ReceiveNoWait()
	require.NoError(t, err)
	require.Equal(t, "seed", v)
}

func TestDefaultChannelRejectsMultipleInitialValues(t *testing.T) {
	require.Panics(t, func() { NewDefault[int](1, 2) })
}

func TestDefaultChannelReceiveParksUntilFirstSend(t *testing.T) {
	ch := NewDefault[int]()
	ctx := context.Background()

	done := make(chan int, 1)
	go func() {
		v, err := ch.Receive(ctx)
		if err == nil {
			done <- v
		}
	}()

	select {
	case <-done:
		t.Fatal("receive returned before any value was ever sent")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, ch.Send(ctx, 5))
	select {
	case v := <-done:
		require.Equal(t, 5, v)
	case <-time.After(time.Second):
		t.Fatal("receive did not unblock after the first send")
	}
}

func TestDefaultChannelRemainsReadableAfterCloseOnceLatched(t *testing.T) {
	ch := NewDefault[int]()
	ctx := context.Background()
	require.NoError(t, ch.Send(ctx, 3))
	ch.Close()

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestDefaultChannelClosedBeforeAnySendAbortsReceivers(t *testing.T) {
	ch := NewDefault[int]()
	ch.Close()
	_, err := ch.Receive(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}
