package mvbtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_LookupEmpty(t *testing.T) {
	tr := New[int, int]()
	_, ok, err := tr.Lookup(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTree_InsertThenLookup(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()

	require.NoError(t, tr.Insert(ctx, 1, 10))
	require.NoError(t, tr.Insert(ctx, 2, 20))
	require.NoError(t, tr.Insert(ctx, 1, 11))

	v, ok, err := tr.Lookup(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 11, v)

	v, ok, err = tr.Lookup(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestTree_UpsertIdempotence(t *testing.T) {
	ctx := context.Background()
	once := New[int, string]()
	require.NoError(t, once.Insert(ctx, 5, "v"))

	twice := New[int, string]()
	require.NoError(t, twice.Insert(ctx, 5, "v"))
	require.NoError(t, twice.Insert(ctx, 5, "v"))

	a, _, _ := once.Lookup(ctx, 5)
	b, _, _ := twice.Lookup(ctx, 5)
	assert.Equal(t, a, b)
}

func TestTree_UpsertOverwrite(t *testing.T) {
	ctx := context.Background()
	tr := New[int, string]()
	require.NoError(t, tr.Insert(ctx, 1, "first"))
	require.NoError(t, tr.Insert(ctx, 1, "second"))

	v, ok, err := tr.Lookup(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestTree_AbsentLookup(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()
	require.NoError(t, tr.Insert(ctx, 1, 1))
	require.NoError(t, tr.Insert(ctx, 3, 3))

	_, ok, err := tr.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTree_AscendingInsertsGrowHeight(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()

	for i := 1; i <= 1000; i++ {
		require.NoError(t, tr.Insert(ctx, i, i*10))
	}

	for i := 1; i <= 1000; i++ {
		v, ok, err := tr.Lookup(ctx, i)
		require.NoError(t, err)
		require.True(t, ok, "key %d missing", i)
		assert.Equal(t, i*10, v)
	}

	assert.GreaterOrEqual(t, tr.Height(), 2)
}

func TestTree_LeafSplitBoundary(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()

	// page.MaxLeafEntries[int, int]() == 7 for two 8-byte fields on a
	// 128-byte page; insert exactly that many ascending keys, then one more
	// to force the first split.
	lMax := 7
	for i := 0; i < lMax; i++ {
		require.NoError(t, tr.Insert(ctx, i, i))
	}
	assert.Equal(t, 1, tr.Height())

	require.NoError(t, tr.Insert(ctx, lMax, lMax))
	assert.Equal(t, 2, tr.Height())

	for i := 0; i <= lMax; i++ {
		v, ok, err := tr.Lookup(ctx, i)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTree_Scan(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()
	for i := 0; i < 5; i++ {
		require.NoError(t, tr.Insert(ctx, i, i*100))
	}

	out, err := tr.Scan(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200, 300}, out)
}

func TestTree_ScanInvalidCount(t *testing.T) {
	tr := New[int, int]()
	_, err := tr.Scan(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestTree_ClosedTreeRejectsOperations(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int]()
	require.NoError(t, tr.Insert(ctx, 1, 1))
	require.NoError(t, tr.Close())

	err := tr.Insert(ctx, 2, 2)
	assert.ErrorIs(t, err, ErrClosed)

	_, _, err = tr.Lookup(ctx, 1)
	assert.ErrorIs(t, err, ErrClosed)

	// Close is idempotent and nil-safe.
	require.NoError(t, tr.Close())
	var nilTree *Tree[int, int]
	require.NoError(t, nilTree.Close())
}

func TestTree_RootPromotionReleasesFirstReserveOnSecondFailure(t *testing.T) {
	ctx := context.Background()
	// Room for exactly one new node: the first split's right sibling fits,
	// but the root promotion's second Reserve for the new root does not.
	tr := New[int, int](WithMemoryLimit(newNodeBytes))

	lMax := 7
	for i := 0; i < lMax; i++ {
		require.NoError(t, tr.Insert(ctx, i, i))
	}

	err := tr.Insert(ctx, lMax, lMax)
	require.ErrorIs(t, err, ErrExhausted)

	assert.Equal(t, int64(0), tr.alloc.Usage(),
		"the sibling's successful Reserve must be released when the root's Reserve fails")
}

func TestTree_MemoryLimitExhaustion(t *testing.T) {
	ctx := context.Background()
	tr := New[int, int](WithMemoryLimit(1)) // smaller than one page

	for i := 0; i < 200; i++ {
		if err := tr.Insert(ctx, i, i); err != nil {
			assert.ErrorIs(t, err, ErrExhausted)
			return
		}
	}
	t.Fatal("expected allocator exhaustion before 200 ascending inserts completed")
}
