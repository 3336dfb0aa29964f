// Package table converts command results into rows for the table formatter.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/download"
	"github.com/agentstation/fiwdb/internal/store/sqlite"
	"github.com/agentstation/fiwdb/pkg/folds"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// FamilyRow is one line of the families listing.
type FamilyRow struct {
	FID     kinship.FID `json:"fid" yaml:"fid"`
	Surname string      `json:"surname,omitempty" yaml:"surname,omitempty"`
	Members int         `json:"members,omitempty" yaml:"members,omitempty"`
	Path    string      `json:"path" yaml:"path"`
}

// FamiliesToTableData lists families; the member column only appears when
// members were counted.
func FamiliesToTableData(rows []FamilyRow, withMembers bool) Data {
	headers := []string{"FID", "Surname"}
	align := []Align{AlignLeft, AlignLeft}
	if withMembers {
		headers = append(headers, "Members")
		align = append(align, AlignRight)
	}
	headers = append(headers, "Path")
	align = append(align, AlignLeft)

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{string(r.FID), dash(r.Surname)}
		if withMembers {
			row = append(row, strconv.Itoa(r.Members))
		}
		out = append(out, append(row, r.Path))
	}
	return Data{Headers: headers, Rows: out, ColumnAlignment: align}
}

// RelationRow is one relationship code.
type RelationRow struct {
	Code int    `json:"code" yaml:"code"`
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RelationsToTableData lists relationship codes.
func RelationsToTableData(rows []RelationRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.Code), r.Kind, dash(r.Name)})
	}
	return Data{
		Headers:         []string{"Code", "Kind", "Name"},
		Rows:            out,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// PairSummary describes one pairs run.
type PairSummary struct {
	Kind     string `json:"kind" yaml:"kind"`
	Relation string `json:"relation" yaml:"relation"`
	Gender   string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Pairs    int    `json:"pairs" yaml:"pairs"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// PairSummaryToTableData renders a pairs run as a property table.
func PairSummaryToTableData(s PairSummary) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Kind", s.Kind},
			{"Relation", s.Relation},
			{"Gender", dash(s.Gender)},
			{"Pairs", strconv.Itoa(s.Pairs)},
			{"Output", dash(s.Output)},
			{"Database", dash(s.Database)},
		},
	}
}

// PairRowsToTableData lists a pair table.
func PairRowsToTableData(rows []kinship.Row) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.P1, r.P2})
	}
	return Data{Headers: []string{"P1", "P2"}, Rows: out}
}

// KindsToTableData lists the pair kinds stored in a database.
func KindsToTableData(kinds []sqlite.KindCount) Data {
	out := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, []string{k.Kind, strconv.Itoa(k.Pairs)})
	}
	return Data{
		Headers:         []string{"Kind", "Pairs"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// BlobsToTableData lists stored images.
func BlobsToTableData(infos []core.Info) Data {
	out := make([][]string, 0, len(infos))
	for _, i := range infos {
		modified := "-"
		if !i.LastModified.IsZero() {
			modified = i.LastModified.UTC().Format("2006-01-02 15:04:05")
		}
		out = append(out, []string{i.Key, strconv.FormatInt(i.Size, 10), dash(i.ContentType), modified})
	}
	return Data{
		Headers:         []string{"Key", "Size", "Content Type", "Modified"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}

// ReportsToTableData shows per-file split counts.
func ReportsToTableData(reports []folds.Report) Data {
	out := make([][]string, 0, len(reports))
	for _, r := range reports {
		excluded := "-"
		if len(r.Excluded) > 0 {
			excluded = joinInts(r.Excluded)
		}
		out = append(out, []string{
			r.Source,
			strconv.Itoa(r.Counts[folds.Train.String()]),
			strconv.Itoa(r.Counts[folds.Val.String()]),
			strconv.Itoa(r.Counts[folds.Test.String()]),
			excluded,
		})
	}
	return Data{
		Headers:         []string{"Source", "Train", "Val", "Test", "Excluded Rows"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

// StatsToTableData renders a download run.
func StatsToTableData(s download.Stats) Data {
	return Data{
		Headers: []string{"Listed", "Attempted", "Saved", "Skipped", "Failed"},
		Rows: [][]string{{
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Attempted),
			strconv.Itoa(s.Saved),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Failed),
		}},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
