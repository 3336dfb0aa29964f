package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/internal/store/sqlite"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

func collection(kind string, pairs ...[3]int) *kinship.PairCollection {
	var ps []kinship.Pair
	for _, p := range pairs {
		ps = append(ps, kinship.NewPairFromMIDs(kinship.MID(p[1]), kinship.MID(p[2]), kinship.FIDFromNumber(p[0]), kind))
	}
	return kinship.NewPairCollection(ps, kind)
}

func TestSaveAndLoadPairs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "pairs.sqlite")
	st, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sibs := collection("siblings", [3]int{2, 1, 3}, [3]int{1, 2, 4}, [3]int{1, 1, 2})
	require.NoError(t, st.SavePairs(ctx, sibs))
	require.NoError(t, st.SavePairs(ctx, collection("spouses", [3]int{1, 1, 2})))

	got, err := st.LoadPairs(ctx, "siblings")
	require.NoError(t, err)
	assert.Equal(t, sibs.Pairs(), got.Pairs())
	assert.Equal(t, sibs.Rows(), got.Rows())

	kinds, err := st.Kinds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []sqlite.KindCount{{Kind: "siblings", Pairs: 3}, {Kind: "spouses", Pairs: 1}}, kinds)

	// Saving a kind again replaces it.
	require.NoError(t, st.SavePairs(ctx, collection("siblings", [3]int{5, 1, 2})))
	got, err = st.LoadPairs(ctx, "siblings")
	require.NoError(t, err)
	assert.Equal(t, []kinship.Row{{P1: "F0005/MID1", P2: "F0005/MID2"}}, got.Rows())

	_, err = st.LoadPairs(ctx, "parents")
	assert.True(t, errors.IsNotFound(err))
}

func TestReopenKeepsPairs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pairs.sqlite")

	st, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.SavePairs(ctx, collection("brothers", [3]int{7, 2, 3})))
	require.NoError(t, st.Close())

	st, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	got, err := st.LoadPairs(ctx, "brothers")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, path, st.Path())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestSavePairsRejectsMixedKinds(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "pairs.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.SavePairs(ctx, collection("siblings", [3]int{1, 1, 2})))

	mixed := kinship.NewPairCollection([]kinship.Pair{
		kinship.NewPairFromMIDs(1, 3, kinship.FIDFromNumber(2), "siblings"),
		kinship.NewPairFromMIDs(1, 2, kinship.FIDFromNumber(2), "spouses"),
	}, "siblings")
	err = st.SavePairs(ctx, mixed)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	// The rejected save leaves the stored kind untouched.
	got, err := st.LoadPairs(ctx, "siblings")
	require.NoError(t, err)
	assert.Equal(t, []kinship.Row{{P1: "F0001/MID1", P2: "F0001/MID2"}}, got.Rows())
}
