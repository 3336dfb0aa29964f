package folds

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/tabular"
)

// Required fold file columns.
const (
	ColumnFold  = "fold"
	ColumnLabel = "label"
	ColumnP1    = "p1"
	ColumnP2    = "p2"
)

// Record is one row of a fold file.
type Record struct {
	Line  int // 1-based data row number, header excluded
	Fold  int
	Label string
	P1    string
	P2    string

	// Malformed is set when the fold cell is blank or not an integer.
	Malformed bool
}

// columns holds the positions of the required fold file columns.
type columns struct {
	fold, label, p1, p2 int
}

func columnsOf(t *tabular.Table) (columns, error) {
	if err := t.Require(ColumnFold, ColumnLabel, ColumnP1, ColumnP2); err != nil {
		return columns{}, err
	}
	var c columns
	c.fold, _ = t.ColumnIndex(ColumnFold)
	c.label, _ = t.ColumnIndex(ColumnLabel)
	c.p1, _ = t.ColumnIndex(ColumnP1)
	c.p2, _ = t.ColumnIndex(ColumnP2)
	return c, nil
}

// record reads data row i. On a bad fold cell the record comes back
// Malformed along with the conversion error.
func (c columns) record(i int, row []string) (Record, error) {
	rec := Record{Line: i + 1, Label: row[c.label], P1: row[c.p1], P2: row[c.p2]}
	fold, err := strconv.Atoi(strings.TrimSpace(row[c.fold]))
	if err != nil {
		rec.Malformed = true
		return rec, err
	}
	rec.Fold = fold
	return rec, nil
}

// Records parses the fold, label and pair columns of t. A fold that is not
// an integer is a ParseError.
func Records(t *tabular.Table, name string) ([]Record, error) {
	cols, err := columnsOf(t)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := cols.record(i, row)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    name,
				Line:    i + 2,
				Column:  ColumnFold,
				Message: "fold is not an integer: " + strconv.Quote(row[cols.fold]),
				Err:     err,
			}
		}
		out[i] = rec
	}
	return out, nil
}

// ReadTable loads a fold file and checks its required columns and fold values.
func ReadTable(r io.Reader, name string) (*tabular.Table, error) {
	t, err := tabular.Read(r, tabular.Comma, name)
	if err != nil {
		return nil, err
	}
	if _, err := Records(t, name); err != nil {
		return nil, err
	}
	return t, nil
}

// Result holds the three row-filtered copies of one fold table.
type Result struct {
	Sets map[Split]*tabular.Table

	// Excluded are the records no split claims, in file order: folds the
	// policy does not assign and Malformed rows. They appear in no output.
	Excluded []Record
}

// Counts returns the row count of every split.
func (r *Result) Counts() map[Split]int {
	out := make(map[Split]int, len(r.Sets))
	for s, t := range r.Sets {
		out[s] = t.Len()
	}
	return out
}

// Partition copies every row of t into the split its fold belongs to,
// keeping all columns and row order. Rows whose fold is blank or not an
// integer are excluded rather than failing the table. A zero Policy means
// DefaultPolicy.
func Partition(t *tabular.Table, p Policy) (*Result, error) {
	cols, err := columnsOf(t)
	if err != nil {
		return nil, err
	}
	if p.IsZero() {
		p = DefaultPolicy()
	}

	res := &Result{Sets: make(map[Split]*tabular.Table, 3)}
	splits := make([]Split, len(t.Rows))
	claimed := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := cols.record(i, row)
		if err == nil {
			splits[i], claimed[i] = p.SplitOf(rec.Fold)
		}
		if !claimed[i] {
			res.Excluded = append(res.Excluded, rec)
		}
	}
	for _, s := range Splits() {
		res.Sets[s] = t.Filter(func(i int, _ []string) bool {
			return claimed[i] && splits[i] == s
		})
	}
	return res, nil
}

// OutputName replaces the -folds token of base with the split name, e.g.
// "bb-folds" -> "bb-train".
func OutputName(base string, s Split) string {
	return strings.ReplaceAll(base, constants.FoldsToken, "-"+s.String())
}
