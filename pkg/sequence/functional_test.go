package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_FilterCollect(t *testing.T) {
	out := From([]int{1, 2, 3, 4, 5}).Filter(func(v int) bool { return v%2 == 1 }).Collect()
	require.Equal(t, []int{1, 3, 5}, out)

	require.Empty(t, From([]int(nil)).Collect())
}

func TestIterator_EarlyStop(t *testing.T) {
	visited := 0
	it := From([]int{1, 2, 3, 4}).Filter(func(v int) bool {
		visited++
		return true
	})

	for v := range it.Seq() {
		if v == 2 {
			break
		}
	}
	require.Equal(t, 2, visited)
}

func TestIterator_Reusable(t *testing.T) {
	it := From([]string{"a", "bb", "ccc"}).Filter(func(s string) bool { return len(s) > 1 })

	require.Equal(t, []string{"bb", "ccc"}, it.Collect())
	require.Equal(t, []string{"bb", "ccc"}, it.Collect())
}
