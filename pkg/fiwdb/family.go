package fiwdb

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/logging"
	"github.com/agentstation/fiwdb/pkg/tabular"
)

// Member file columns outside the relationship block.
const (
	ColumnGender = "Gender"
	ColumnName   = "Name"
)

// FamilyDir is a family directory found under the database root.
type FamilyDir struct {
	FID  kinship.FID `json:"fid" yaml:"fid"`
	Path string      `json:"path" yaml:"path"`
}

// Member is one row of a family's member file.
type Member struct {
	MID    kinship.MID `json:"mid" yaml:"mid"`
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Gender string      `json:"gender" yaml:"gender"`
}

// Family is a loaded family: its members and relationship matrix.
type Family struct {
	FID     kinship.FID
	Path    string // family directory; empty when not loaded from disk
	Members []Member
	Matrix  *kinship.RelationshipMatrix
}

// Genders returns the gender vector aligned with the matrix.
func (f *Family) Genders() kinship.GenderVector {
	g := make(kinship.GenderVector, len(f.Members))
	for i, m := range f.Members {
		g[i] = m.Gender
	}
	return g
}

// ScanFamilies lists the F???? directories under root, ordered by family
// number.
func ScanFamilies(root string) ([]FamilyDir, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("directory", root)
		}
		return nil, errors.WrapIO("stat", root, err)
	}
	matches, err := filepath.Glob(filepath.Join(root, constants.FamilyDirGlob))
	if err != nil {
		return nil, errors.WrapIO("glob", root, err)
	}

	var dirs []FamilyDir
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		fid, err := kinship.ParseFID(filepath.Base(m))
		if err != nil {
			continue
		}
		dirs = append(dirs, FamilyDir{FID: fid, Path: m})
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].FID.Number() < dirs[j].FID.Number()
	})
	return dirs, nil
}

// LoadFamily reads dir's member file (membersFile, usually mid.csv).
func LoadFamily(dir FamilyDir, membersFile string) (*Family, error) {
	path := filepath.Join(dir.Path, membersFile)
	t, err := tabular.ReadFile(path, tabular.Comma)
	if err != nil {
		return nil, errors.WrapResource("load", "family", string(dir.FID), err)
	}
	fam, err := ParseMembers(dir.FID, t, path)
	if err != nil {
		return nil, errors.WrapResource("load", "family", string(dir.FID), err)
	}
	fam.Path = dir.Path
	return fam, nil
}

// UseRelationships replaces the matrix with the one in the family
// directory's standalone relationship file. The file must describe exactly
// the family's members.
func (f *Family) UseRelationships(file string) error {
	m, err := LoadRelationships(FamilyDir{FID: f.FID, Path: f.Path}, file)
	if err != nil {
		return err
	}
	if m.Size() != len(f.Members) {
		return errors.WrapResource("load", "relationships", string(f.FID),
			errors.NewValidationError("members", m.Size(),
				fmt.Sprintf("%s covers %d members, the member file lists %d", file, m.Size(), len(f.Members))))
	}
	f.Matrix = m
	return nil
}

// ParseMembers splits a member table into members and the relationship
// matrix. The table starts with the MID index column, followed by one
// relationship column per member, then Gender (and optionally Name).
func ParseMembers(fid kinship.FID, t *tabular.Table, name string) (*Family, error) {
	if err := t.Require(ColumnGender); err != nil {
		return nil, err
	}
	iGender, _ := t.ColumnIndex(ColumnGender)
	iName, hasName := t.ColumnIndex(ColumnName)

	fam := &Family{FID: fid, Members: make([]Member, t.Len())}
	for i, row := range t.Rows {
		fam.Members[i] = Member{MID: kinship.MIDFromIndex(i), Gender: strings.TrimSpace(row[iGender])}
		if hasName {
			fam.Members[i].Name = row[iName]
		}
	}

	m, err := relationshipBlock(t.DropLeadingIndexColumn(), name)
	if err != nil {
		return nil, err
	}
	fam.Matrix = m
	return fam, nil
}

// LoadRelationships reads a standalone relationship file: a leading index
// column followed by the N×N block.
func LoadRelationships(dir FamilyDir, file string) (*kinship.RelationshipMatrix, error) {
	path := filepath.Join(dir.Path, file)
	t, err := tabular.ReadFile(path, tabular.Comma)
	if err != nil {
		return nil, errors.WrapResource("load", "relationships", string(dir.FID), err)
	}
	m, err := relationshipBlock(t.DropLeadingIndexColumn(), path)
	if err != nil {
		return nil, errors.WrapResource("load", "relationships", string(dir.FID), err)
	}
	return m, nil
}

// relationshipBlock takes the first N columns of an N-row table as the matrix.
func relationshipBlock(t *tabular.Table, name string) (*kinship.RelationshipMatrix, error) {
	n := t.Len()
	if len(t.Header) < n {
		return nil, errors.NewValidationError("columns", len(t.Header),
			fmt.Sprintf("%d members but only %d columns after the index column", n, len(t.Header)))
	}
	rows := make([][]int, n)
	for i, rec := range t.Rows {
		rows[i] = make([]int, n)
		for j := 0; j < n; j++ {
			v, err := parseCode(rec[j])
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "csv",
					File:    name,
					Line:    i + 2,
					Column:  t.Header[j],
					Message: "relationship code is not a whole number: " + strconv.Quote(rec[j]),
					Err:     err,
				}
			}
			rows[i][j] = v
		}
	}
	return kinship.NewRelationshipMatrix(rows)
}

// parseCode reads a matrix cell; blanks are 0 and "4.0" is 4. A fractional
// value such as "4.5" names no relationship and is an error.
func parseCode(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s has a fractional part", s)
	}
	return int(f), nil
}

// LoadFamilies loads every family under root. Any unreadable family fails
// the whole load.
func LoadFamilies(ctx context.Context, root, membersFile string) ([]*Family, error) {
	dirs, err := ScanFamilies(root)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	out := make([]*Family, 0, len(dirs))
	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapResource("load", "families", root, errors.ErrCanceled)
		}
		fam, err := LoadFamily(d, membersFile)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("fid", string(d.FID)).Int("members", len(fam.Members)).Msg("Loaded family")
		out = append(out, fam)
	}
	return out, nil
}
