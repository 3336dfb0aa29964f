package kinship

import (
	"fmt"
	"sort"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// Coordinates are the 0-based row and column indices of selected matrix
// cells. Rows[k] and Cols[k] together name one cell.
type Coordinates struct {
	Rows []int
	Cols []int
}

// Len returns the number of cells.
func (c Coordinates) Len() int {
	return len(c.Rows)
}

func (c Coordinates) validate() error {
	if len(c.Rows) != len(c.Cols) {
		return errors.NewValidationError("ids", nil,
			fmt.Sprintf("coordinate lists differ in length (%d rows, %d cols)", len(c.Rows), len(c.Cols)))
	}
	for k := range c.Rows {
		if c.Rows[k] < 0 || c.Cols[k] < 0 {
			return errors.NewValidationError("ids", k,
				fmt.Sprintf("negative index at position %d", k))
		}
	}
	return nil
}

// UniquePairs zips ids into index pairs, orders each pair so the smaller
// index comes first and drops duplicates; (i,j) and (j,i) collapse into one.
// The result is sorted ascending.
func UniquePairs(ids Coordinates) ([][2]int, error) {
	if err := ids.validate(); err != nil {
		return nil, err
	}
	seen := make(map[[2]int]struct{}, ids.Len())
	for k := range ids.Rows {
		p1, p2 := ids.Rows[k], ids.Cols[k]
		if p2 < p1 {
			p1, p2 = p2, p1
		}
		seen[[2]int{p1, p2}] = struct{}{}
	}

	out := make([][2]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})
	return out, nil
}

// DerivePairs appends one Pair of the given kind and family for every unique
// canonical index pair in ids. Existing entries of acc are kept in front.
func DerivePairs(acc []Pair, ids Coordinates, kind string, fid FID) ([]Pair, error) {
	unique, err := UniquePairs(ids)
	if err != nil {
		return acc, err
	}
	for _, p := range unique {
		acc = append(acc, NewPair(p[0], p[1], fid, kind))
	}
	return acc, nil
}
