package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/inspect/pkg/sequence"
)

func TestMap_PreservesOrder(t *testing.T) {
	out, err := Map(context.Background(), sequence.From([]int{1, 2, 3, 4, 5}), 2,
		func(_ context.Context, v int) (int, error) {
			return v * v, nil
		})
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 9, 16, 25}, out)
}

func TestMap_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Map(context.Background(), sequence.From([]int{1, 2, 3}), 0,
		func(_ context.Context, v int) (int, error) {
			if v == 2 {
				return 0, boom
			}
			return v, nil
		})
	require.ErrorIs(t, err, boom)
}

func TestMap_Limit(t *testing.T) {
	var running, peak atomic.Int32
	out, err := Map(context.Background(), sequence.From(make([]int, 16)), 3,
		func(_ context.Context, v int) (int, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			running.Add(-1)
			return v + 1, nil
		})
	require.NoError(t, err)
	require.Len(t, out, 16)
	require.LessOrEqual(t, peak.Load(), int32(3))
}
