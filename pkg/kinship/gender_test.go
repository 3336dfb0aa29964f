package kinship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

func newMatrix(t *testing.T, rows [][]int) *kinship.RelationshipMatrix {
	t.Helper()
	m, err := kinship.NewRelationshipMatrix(rows)
	require.NoError(t, err)
	return m
}

func TestNewRelationshipMatrixRejectsNonSquare(t *testing.T) {
	_, err := kinship.NewRelationshipMatrix([][]int{{0, 1}, {1}})
	assert.True(t, errors.IsValidationError(err))

	m := newMatrix(t, [][]int{{0, 2}, {2, 0}})
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, kinship.Sibling, m.At(0, 1))
}

func TestCoordinates(t *testing.T) {
	m := newMatrix(t, [][]int{
		{0, 2, 4},
		{2, 0, 0},
		{1, 0, 0},
	})
	sib := m.CoordinatesOf(kinship.Sibling)
	assert.Equal(t, []int{0, 1}, sib.Rows)
	assert.Equal(t, []int{1, 0}, sib.Cols)

	all := m.NonZero()
	assert.Equal(t, 4, all.Len())
}

func TestFilterGender(t *testing.T) {
	genders := kinship.GenderVector{"Female", "Male", "female", "Male"}
	rows := [][]int{
		{0, 2, 2, 4},
		{2, 0, 2, 4},
		{2, 2, 0, 4},
		{1, 1, 1, 0},
	}

	t.Run("keeps only cells where both members match", func(t *testing.T) {
		m := newMatrix(t, rows)
		out, err := kinship.FilterGender(m, genders, "Female")
		require.NoError(t, err)
		assert.Same(t, m, out, "filter works in place")
		assert.Equal(t, [][]int{
			{0, 0, 2, 0},
			{0, 0, 0, 0},
			{2, 0, 0, 0},
			{0, 0, 0, 0},
		}, out.Rows())

		for i := 0; i < out.Size(); i++ {
			for j := 0; j < out.Size(); j++ {
				if out.At(i, j) != kinship.None {
					assert.True(t, genders.Matches(i, "Female"))
					assert.True(t, genders.Matches(j, "Female"))
				}
			}
		}
	})

	t.Run("male does not match female", func(t *testing.T) {
		m := newMatrix(t, rows)
		out, err := kinship.FilterGender(m, genders, "Male")
		require.NoError(t, err)
		assert.Equal(t, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 4},
			{0, 0, 0, 0},
			{0, 1, 0, 0},
		}, out.Rows())
	})

	t.Run("idempotent", func(t *testing.T) {
		once, err := kinship.FilterGender(newMatrix(t, rows), genders, "Female")
		require.NoError(t, err)
		twice, err := kinship.FilterGender(once.Clone(), genders, "Female")
		require.NoError(t, err)
		assert.Equal(t, once.Rows(), twice.Rows())
	})

	t.Run("shape unchanged", func(t *testing.T) {
		out, err := kinship.FilterGender(newMatrix(t, rows), genders, "unknown")
		require.NoError(t, err)
		assert.Equal(t, 4, out.Size())
		assert.Equal(t, 0, out.NonZero().Len())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := kinship.FilterGender(newMatrix(t, rows), genders[:3], "Female")
		assert.True(t, errors.IsValidationError(err))
	})
}
