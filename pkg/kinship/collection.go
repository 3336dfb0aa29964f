package kinship

import (
	"io"

	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/tabular"
)

// Column names of a persisted pair table.
const (
	ColumnP1 = "p1"
	ColumnP2 = "p2"
)

// Row is one line of a pair table: two "FID/MIDn" member paths.
type Row struct {
	P1 string `json:"p1" yaml:"p1"`
	P2 string `json:"p2" yaml:"p2"`
}

// PairCollection is the flat, persisted form of many families' pairs.
// Row i always corresponds to pair i; no reordering or dedup happens here.
type PairCollection struct {
	kind  string
	pairs []Pair
	rows  []Row
}

// NewPairCollection builds the pair table for pairs.
func NewPairCollection(pairs []Pair, kind string) *PairCollection {
	c := &PairCollection{
		kind:  kind,
		pairs: append([]Pair(nil), pairs...),
		rows:  make([]Row, len(pairs)),
	}
	for i, p := range pairs {
		m0, m1 := p.MIDs()
		c.rows[i] = Row{P1: Path(p.FID(), m0), P2: Path(p.FID(), m1)}
	}
	return c
}

// Kind returns the collection's relationship label.
func (c *PairCollection) Kind() string { return c.kind }

// Len returns the number of pairs (and rows).
func (c *PairCollection) Len() int { return len(c.rows) }

// Pairs returns a copy of the source pairs.
func (c *PairCollection) Pairs() []Pair { return append([]Pair(nil), c.pairs...) }

// Rows returns a copy of the table rows.
func (c *PairCollection) Rows() []Row { return append([]Row(nil), c.rows...) }

// Table returns the collection as a two-column p1,p2 table.
func (c *PairCollection) Table() *tabular.Table {
	t := tabular.New(ColumnP1, ColumnP2)
	t.Rows = make([][]string, len(c.rows))
	for i, r := range c.rows {
		t.Rows[i] = []string{r.P1, r.P2}
	}
	return t
}

// WriteCSV writes the table with a header row and no index column.
func (c *PairCollection) WriteCSV(w io.Writer) error {
	return c.Table().Write(w, tabular.Comma)
}

// WriteFile persists the table to path atomically.
func (c *PairCollection) WriteFile(path string) error {
	return c.Table().WriteFile(path, tabular.Comma)
}

// ReadRows loads a pair table written by WriteCSV.
func ReadRows(r io.Reader, name string) ([]Row, error) {
	t, err := tabular.Read(r, tabular.Comma, name)
	if err != nil {
		return nil, err
	}
	return rowsFromTable(t)
}

// ReadRowsFile loads a pair table from path.
func ReadRowsFile(path string) ([]Row, error) {
	t, err := tabular.ReadFile(path, tabular.Comma)
	if err != nil {
		return nil, err
	}
	return rowsFromTable(t)
}

func rowsFromTable(t *tabular.Table) ([]Row, error) {
	if err := t.Require(ColumnP1, ColumnP2); err != nil {
		return nil, errors.WrapResource("read", "pairs", "", err)
	}
	i1, _ := t.ColumnIndex(ColumnP1)
	i2, _ := t.ColumnIndex(ColumnP2)
	rows := make([]Row, len(t.Rows))
	for i, rec := range t.Rows {
		rows[i] = Row{P1: rec[i1], P2: rec[i2]}
	}
	return rows, nil
}
