package gochannels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloseGateGuardSend(t *testing.T) {
	var g closeGate
	require.NoError(t, g.guardSend())
	g.close(true, func(error) {}, func(error) {})
	require.ErrorIs(t, g.guardSend(), ErrClosed)
}

func TestCloseGateGuardReceiveDeliverableSurvivesClose(t *testing.T) {
	var g closeGate
	ready, err := g.guardReceive(true)
	require.True(t, ready)
	require.NoError(t, err)

	g.close(true, func(error) {}, func(error) {})

	ready, err = g.guardReceive(true)
	require.True(t, ready)
	require.NoError(t, err)

	ready, err = g.guardReceive(false)
	require.False(t, ready)
	require.ErrorIs(t, err, ErrClosed)
}

func TestCloseGateAbortsReceiversImmediatelyWhenNothingDeliverable(t *testing.T) {
	var g closeGate
	abortedSenders, abortedReceivers := false, false
	g.close(false,
		func(error) { abortedSenders = true },
		func(error) { abortedReceivers = true },
	)
	require.True(t, abortedSenders)
	require.True(t, abortedReceivers)
}

func TestCloseGateDeferAbortingReceiversWhenDeliverable(t *testing.T) {
	var g closeGate
	abortedReceivers := false
	g.close(true, func(error) {}, func(error) { abortedReceivers = true })
	require.False(t, abortedReceivers)
}

func TestCloseGateIsIdempotent(t *testing.T) {
	var g closeGate
	calls := 0
	abort := func(error) { calls++ }
	require.True(t, g.close(false, abort, abort))
	require.False(t, g.close(false, abort, abort))
	require.Equal(t, 2, calls)
}
