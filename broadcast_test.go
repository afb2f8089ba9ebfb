package gochannels

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToExactlyOneWinner(t *testing.T) {
	ch := NewBroadcast[int]()
	ctx := context.Background()

	const receivers = 5
	var won int32
	var wg sync.WaitGroup
	for i := 0; i < receivers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := ch.Receive(ctx)
			if err == nil {
				require.Equal(t, 99, v)
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, ch.Send(ctx, 99))
	time.Sleep(30 * time.Millisecond)

	require.Equal(t, int32(1), atomic.LoadInt32(&won))

	ch.Close()
	wg.Wait()
}

func TestBroadcastRequiresAParkedReceiverToSend(t *testing.T) {
	ch := NewBroadcast[int]()
	err := ch.SendNoWait(1)
	var notReady *NotReadyError
	require.ErrorAs(t, err, &notReady)
}
