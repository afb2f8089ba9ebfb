package gochannels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/gochannels/storage"
)

func TestBufferedFIFOOrderAndBound(t *testing.T) {
	ch := NewBuffered[int](WithMaxSize[int](2))
	ctx := context.Background()

	require.NoError(t, ch.Send(ctx, 1))
	require.NoError(t, ch.Send(ctx, 2))

	blocked := make(chan error, 1)
	go func() { blocked <- ch.Send(ctx, 3) }()

	select {
	case <-blocked:
		t.Fatal("third send completed despite the buffer being full")
	case <-time.After(20 * time.Millisecond):
	}

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	select {
	case err := <-blocked:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("parked sender was not woken after a slot freed up")
	}

	v, err = ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	v, err = ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestBufferedUnboundedNeverBlocksSend(t *testing.T) {
	ch := NewBuffered[int]()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		require.NoError(t, ch.Send(ctx, i))
	}
	require.Equal(t, 100, ch.Len())
}

func TestBufferedZeroCapacityDegeneratesToRendezvous(t *testing.T) {
	ch := NewBuffered[int](WithMaxSize[int](0))
	ctx := context.Background()

	sendDone := make(chan struct{})
	go func() {
		require.NoError(t, ch.Send(ctx, 1))
		close(sendDone)
	}()

	select {
	case <-sendDone:
		t.Fatal("zero-capacity send completed without a parked receiver")
	case <-time.After(20 * time.Millisecond):
	}

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	<-sendDone
	require.Equal(t, 0, ch.Len())
}

func TestBufferedCloseWithPendingMessagesDrainsThenAbortsReceivers(t *testing.T) {
	ch := NewBuffered[int]()
	ctx := context.Background()
	require.NoError(t, ch.Send(ctx, 1))
	require.NoError(t, ch.Send(ctx, 2))

	ch.Close()

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	_, err = ch.Receive(ctx)
	require.ErrorIs(t, err, ErrClosed)
}

func TestBufferedWithCustomStorageDiscipline(t *testing.T) {
	ch := NewBuffered[int](WithStorage[int](storage.NewLIFO[int]()))
	ctx := context.Background()
	require.NoError(t, ch.Send(ctx, 1))
	require.NoError(t, ch.Send(ctx, 2))

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}
