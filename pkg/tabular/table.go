// Package tabular holds the small in-memory table model that every fiwdb
// input and output passes through: lookup tables, member files, fold files
// and pair lists. Tables are loaded wholesale; nothing streams.
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// Delimiters used by the FIW files.
const (
	Comma = ','
	Tab   = '\t'
)

// Table is a header plus rows of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates a table with the given header and no rows.
func New(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// Read parses delimited text with a header row. name is only used in errors.
func Read(r io.Reader, delim rune, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = delim == Comma

	records, err := cr.ReadAll()
	if err != nil {
		pe := errors.NewParseError(format(delim), name, err.Error(), err)
		var ce *csv.ParseError
		if errors.As(err, &ce) {
			pe.Line = ce.Line
		}
		return nil, pe
	}
	if len(records) == 0 {
		return nil, errors.NewParseError(format(delim), name, "missing header row", nil)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	return &Table{Header: header, Rows: records[1:]}, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, delim, path)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return -1, false
}

// Require fails with an invalid-argument error listing every missing column.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.ColumnIndex(n); !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationError("columns", missing, "missing required columns: "+strings.Join(missing, ", "))
	}
	return nil
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, errors.NewValidationError("columns", name, "missing required columns: "+name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// DropLeadingIndexColumn returns a copy of the table without its first
// column. FIW member and relationship files carry the row label (the MID)
// in that column; it is not part of the relationship matrix.
func (t *Table) DropLeadingIndexColumn() *Table {
	if len(t.Header) == 0 {
		return &Table{}
	}
	out := &Table{
		Header: append([]string(nil), t.Header[1:]...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		if len(row) > 0 {
			out.Rows[i] = append([]string(nil), row[1:]...)
		}
	}
	return out
}

// Filter returns a table with the same header and the rows keep accepts,
// in their original order. Row slices are shared with t.
func (t *Table) Filter(keep func(i int, row []string) bool) *Table {
	out := &Table{Header: t.Header}
	for i, row := range t.Rows {
		if keep(i, row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Write renders the table as delimited text with a header row and no
// row-index column.
func (t *Table) Write(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile writes the table to path atomically.
func (t *Table) WriteFile(path string, delim rune) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return t.Write(w, delim)
	})
}

// WriteFileAtomic creates parent directories, streams write into a temp
// file next to path and renames it into place, so readers never observe a
// partial file.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

func format(delim rune) string {
	if delim == Tab {
		return "tsv"
	}
	return "csv"
}
