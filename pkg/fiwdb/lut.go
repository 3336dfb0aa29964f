package fiwdb

import (
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/tabular"
)

// PID lookup table columns.
const (
	ColumnFIDs = "FIDs"
	ColumnPIDs = "PIDs"
	ColumnURL  = "URL"
)

// PIDRecord locates one member photo: its family, photo id and source URL.
type PIDRecord struct {
	FID kinship.FID `json:"fid" yaml:"fid"`
	PID string      `json:"pid" yaml:"pid"`
	URL string      `json:"url" yaml:"url"`
}

// LoadPIDLUT reads the tab-delimited photo lookup table.
func LoadPIDLUT(path string) ([]PIDRecord, error) {
	t, err := tabular.ReadFile(path, tabular.Tab)
	if err != nil {
		return nil, errors.WrapResource("load", "lut", path, err)
	}
	return PIDRecords(t)
}

// PIDRecords extracts the FIDs, PIDs and URL columns of a PID table.
func PIDRecords(t *tabular.Table) ([]PIDRecord, error) {
	if err := t.Require(ColumnFIDs, ColumnPIDs, ColumnURL); err != nil {
		return nil, err
	}
	iF, _ := t.ColumnIndex(ColumnFIDs)
	iP, _ := t.ColumnIndex(ColumnPIDs)
	iU, _ := t.ColumnIndex(ColumnURL)

	out := make([]PIDRecord, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = PIDRecord{FID: kinship.FID(row[iF]), PID: row[iP], URL: row[iU]}
	}
	return out, nil
}

// LoadRIDLUT reads the comma-delimited relationship lookup table as is.
func LoadRIDLUT(path string) (*tabular.Table, error) {
	t, err := tabular.ReadFile(path, tabular.Comma)
	if err != nil {
		return nil, errors.WrapResource("load", "lut", path, err)
	}
	return t, nil
}

// LoadFIDLUT reads the tab-delimited family lookup table as is.
func LoadFIDLUT(path string) (*tabular.Table, error) {
	t, err := tabular.ReadFile(path, tabular.Tab)
	if err != nil {
		return nil, errors.WrapResource("load", "lut", path, err)
	}
	return t, nil
}

// FamilyNames maps the first column of a FID table (the family id) to its
// second column (the surname).
func FamilyNames(t *tabular.Table) (map[kinship.FID]string, error) {
	if len(t.Header) < 2 {
		return nil, errors.NewValidationError("columns", t.Header, "family table needs an id and a surname column")
	}
	out := make(map[kinship.FID]string, len(t.Rows))
	for _, row := range t.Rows {
		out[kinship.FID(row[0])] = row[1]
	}
	return out, nil
}
