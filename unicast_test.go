package gochannels

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnicastSendBlocksUntilReceiverParked(t *testing.T) {
	ch := NewUnicast[int]()
	ctx := context.Background()

	sendDone := make(chan struct{})
	go func() {
		require.NoError(t, ch.Send(ctx, 42))
		close(sendDone)
	}()

	select {
	case <-sendDone:
		t.Fatal("send completed before any receiver was parked")
	case <-time.After(30 * time.Millisecond):
	}

	v, err := ch.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	select {
	case <-sendDone:
	case <-time.After(time.Second):
		t.Fatal("send did not complete after matching receive")
	}
}

func TestUnicastWakesExactlyOneReceiverPerSend(t *testing.T) {
	ch := NewUnicast[int]()
	ctx := context.Background()

	results := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := ch.Receive(ctx)
			if err == nil {
				results <- v
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, ch.Send(ctx, 7))
	time.Sleep(20 * time.Millisecond)

	require.Len(t, results, 1)
	require.Equal(t, 7, <-results)

	ch.Close()
	wg.Wait()
}

func TestUnicastSendNoWaitWithoutParkedReceiver(t *testing.T) {
	ch := NewUnicast[string]()
	err := ch.SendNoWait("hi")
	var notReady *NotReadyError
	require.ErrorAs(t, err, &notReady)
	require.Equal(t, OpSend, notReady.Op)
}

func TestUnicastCloseAbortsParkedSenderAndFailsLaterReceive(t *testing.T) {
	ch := NewUnicast[int]()
	ctx := context.Background()

	senderErr := make(chan error, 1)
	go func() { senderErr <- ch.Send(ctx, 1) }()
	time.Sleep(20 * time.Millisecond)

	ch.Close()

	require.ErrorIs(t, <-senderErr, ErrClosed)

	_, err := ch.Receive(ctx)
	require.ErrorIs(t, err, ErrClosed)
}

func TestUnicastCloseIsIdempotent(t *testing.T) {
	ch := NewUnicast[int]()
	ch.Close()
	require.NotPanics(t, func() { ch.Close() })
	require.True(t, ch.Closed())
}
