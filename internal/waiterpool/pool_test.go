package waiterpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamicPoolReusesPutValues(t *testing.T) {
	type box struct{ n int }
	allocs := 0
	p := NewDynamic(func() any {
		allocs++
		return &box{}
	})

	b := p.Get().(*box)
	require.Equal(t, 1, allocs)
	b.n = 7
	p.Put(b)

	b2 := p.Get().(*box)
	require.Same(t, b, b2)
	require.Equal(t, 7, b2.n)
}
