package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoLevelSetGet(t *testing.T) {
	idx := NewTwoLevel[string]()

	_, ok := idx.Get(1, 1)
	require.False(t, ok)

	idx.Set(1, 1, "a")
	idx.Set(1, 2, "b")

	v, ok := idx.Get(1, 1)
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok = idx.Get(1, 2)
	require.True(t, ok)
	require.Equal(t, "b", v)

	require.Equal(t, 2, idx.Count())
}

func TestTwoLevelSetOverwrites(t *testing.T) {
	idx := NewTwoLevel[int]()
	idx.Set(1, 1, 10)
	idx.Set(1, 1, 20)

	v, ok := idx.Get(1, 1)
	require.True(t, ok)
	require.Equal(t, 20, v)
	require.Equal(t, 1, idx.Count())
}

func TestTwoLevelDelete(t *testing.T) {
	idx := NewTwoLevel[int]()
	idx.Set(1, 1, 10)
	idx.Set(1, 2, 20)

	idx.Delete(1, 1)

	_, ok := idx.Get(1, 1)
	require.False(t, ok)
	require.Equal(t, 1, idx.Count())

	v, ok := idx.Get(1, 2)
	require.True(t, ok)
	require.Equal(t, 20, v)
}

func TestTwoLevelUpdate(t *testing.T) {
	idx := NewTwoLevel[int]()
	idx.Update(1, 1, func(current int, ok bool) int {
		require.False(t, ok)
		return current + 1
	})

	idx.Update(1, 1, func(current int, ok bool) int {
		require.True(t, ok)
		return current + 1
	})

	v, _ := idx.Get(1, 1)
	require.Equal(t, 2, v)
}

func TestTwoLevelRange(t *testing.T) {
	idx := NewTwoLevel[int]()
	idx.Set(1, 1, 10)
	idx.Set(2, 2, 20)

	seen := make(map[uint32]int)
	idx.Range(func(typ, ident uint32, value int) {
		seen[typ] = value
	})

	require.Equal(t, 10, seen[1])
	require.Equal(t, 20, seen[2])
}
