package gochannels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptMsgZeroValueIsEmpty(t *testing.T) {
	var m optMsg[string]
	require.False(t, m.ok)
	require.Equal(t, "", m.msg)
}

func TestOptMsgHoldsMessage(t *testing.T) {
	m := optMsg[int]{msg: 42, ok: true}
	require.True(t, m.ok)
	require.Equal(t, 42, m.msg)
}
