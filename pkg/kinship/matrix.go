package kinship

import (
	"fmt"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// RelationshipMatrix is a family's square member-by-member matrix of
// relationship codes. Entry [i][j] is the relation from member i+1 to
// member j+1; 0 means no relation of interest.
type RelationshipMatrix struct {
	n     int
	cells []Relation
}

// NewRelationshipMatrix copies rows into a matrix. Rows must form a square.
func NewRelationshipMatrix(rows [][]int) (*RelationshipMatrix, error) {
	n := len(rows)
	m := &RelationshipMatrix{n: n, cells: make([]Relation, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.NewValidationError("matrix", len(row),
				fmt.Sprintf("row %d has %d entries, want %d", i, len(row), n))
		}
		for j, v := range row {
			m.cells[i*n+j] = Relation(v)
		}
	}
	return m, nil
}

// Size returns the member count N.
func (m *RelationshipMatrix) Size() int {
	return m.n
}

// At returns entry [i][j] (0-based).
func (m *RelationshipMatrix) At(i, j int) Relation {
	return m.cells[i*m.n+j]
}

// Set overwrites entry [i][j] (0-based).
func (m *RelationshipMatrix) Set(i, j int, r Relation) {
	m.cells[i*m.n+j] = r
}

// Rows returns a copy of the matrix as plain ints.
func (m *RelationshipMatrix) Rows() [][]int {
	out := make([][]int, m.n)
	for i := range out {
		out[i] = make([]int, m.n)
		for j := range out[i] {
			out[i][j] = int(m.At(i, j))
		}
	}
	return out
}

// Clone returns an independent copy.
func (m *RelationshipMatrix) Clone() *RelationshipMatrix {
	return &RelationshipMatrix{n: m.n, cells: append([]Relation(nil), m.cells...)}
}

// Coordinates returns the row and column indices of every cell accepted by
// pred, scanning row-major.
func (m *RelationshipMatrix) Coordinates(pred func(Relation) bool) Coordinates {
	var ids Coordinates
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if pred(m.At(i, j)) {
				ids.Rows = append(ids.Rows, i)
				ids.Cols = append(ids.Cols, j)
			}
		}
	}
	return ids
}

// CoordinatesOf selects the cells holding code r.
func (m *RelationshipMatrix) CoordinatesOf(r Relation) Coordinates {
	return m.Coordinates(func(v Relation) bool { return v == r })
}

// NonZero selects every cell with any relation.
func (m *RelationshipMatrix) NonZero() Coordinates {
	return m.Coordinates(func(v Relation) bool { return v != None })
}
