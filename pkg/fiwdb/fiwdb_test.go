package fiwdb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/logging"
)

const family1 = `MID,1,2,3,4,5,Gender,Name
1,0,5,4,4,4,Male,Bob
2,5,0,4,4,4,Female,Ann
3,1,1,0,2,2,Male,Cal
4,1,1,2,0,2,Female,Dee
5,1,1,2,2,0,Male,Eli
`

const family2 = `MID,1,2,Gender,Name
1,,2.0,Female,Fay
2,2,0,Female,Gia
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// newDatabase lays out two families plus some entries the scanner must skip.
func newDatabase(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "F0002", "mid.csv"), family2)
	writeFile(t, filepath.Join(root, "F0001", "mid.csv"), family1)
	writeFile(t, filepath.Join(root, "F0003"), "not a directory")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "FXYZ1"), 0o755))
	return root
}

func TestScanFamilies(t *testing.T) {
	root := newDatabase(t)
	dirs, err := fiwdb.ScanFamilies(root)
	require.NoError(t, err)
	require.Len(t, dirs, 2)
	assert.Equal(t, kinship.FID("F0001"), dirs[0].FID)
	assert.Equal(t, kinship.FID("F0002"), dirs[1].FID)
	assert.Equal(t, filepath.Join(root, "F0001"), dirs[0].Path)

	_, err = fiwdb.ScanFamilies(filepath.Join(root, "missing"))
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadFamily(t *testing.T) {
	root := newDatabase(t)
	fam, err := fiwdb.LoadFamily(fiwdb.FamilyDir{FID: "F0001", Path: filepath.Join(root, "F0001")}, "mid.csv")
	require.NoError(t, err)

	require.Len(t, fam.Members, 5)
	assert.Equal(t, fiwdb.Member{MID: 3, Name: "Cal", Gender: "Male"}, fam.Members[2])
	assert.Equal(t, kinship.GenderVector{"Male", "Female", "Male", "Female", "Male"}, fam.Genders())
	assert.Equal(t, 5, fam.Matrix.Size())
	assert.Equal(t, kinship.Spouse, fam.Matrix.At(0, 1))
	assert.Equal(t, kinship.Sibling, fam.Matrix.At(4, 3))
}

func TestLoadFamilyBlankAndDecimalCells(t *testing.T) {
	root := newDatabase(t)
	fam, err := fiwdb.LoadFamily(fiwdb.FamilyDir{FID: "F0002", Path: filepath.Join(root, "F0002")}, "mid.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2}, {2, 0}}, fam.Matrix.Rows())
}

func TestLoadFamilyErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{
			name:  "no gender column",
			body:  "MID,1\n1,0\n",
			check: errors.IsValidationError,
		},
		{
			name:  "too few matrix columns",
			body:  "MID,1,Gender\n1,0,Male\n2,0,Male\n3,0,Male\n",
			check: errors.IsValidationError,
		},
		{
			name: "non numeric cell",
			body: "MID,1,Gender\n1,x,Male\n",
			check: func(err error) bool {
				var pe *errors.ParseError
				return errors.As(err, &pe) && pe.Line == 2 && pe.Column == "1"
			},
		},
		{
			name: "fractional code",
			body: "MID,1,2,Gender\n1,0,4,Male\n2,4.5,0,Male\n",
			check: func(err error) bool {
				var pe *errors.ParseError
				return errors.As(err, &pe) && pe.Line == 3 && pe.Column == "1"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "mid.csv"), tt.body)
			_, err := fiwdb.LoadFamily(fiwdb.FamilyDir{FID: "F0100", Path: dir}, "mid.csv")
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}

	_, err := fiwdb.LoadFamily(fiwdb.FamilyDir{FID: "F0100", Path: t.TempDir()}, "mid.csv")
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadRelationships(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "relationships.csv"), "MID,1,2,3\n1,0,5,4\n2,5,0,4\n3,1,1,0\n")
	m, err := fiwdb.LoadRelationships(fiwdb.FamilyDir{FID: "F0005", Path: dir}, "relationships.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 5, 4}, {5, 0, 4}, {1, 1, 0}}, m.Rows())
}

func TestBuildPairs(t *testing.T) {
	root := newDatabase(t)
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	tests := []struct {
		name string
		opts fiwdb.PairOptions
		want []kinship.Row
	}{
		{
			name: "siblings across families",
			opts: fiwdb.PairOptions{Relation: kinship.Sibling},
			want: []kinship.Row{
				{P1: "F0001/MID3", P2: "F0001/MID4"},
				{P1: "F0001/MID3", P2: "F0001/MID5"},
				{P1: "F0001/MID4", P2: "F0001/MID5"},
				{P1: "F0002/MID1", P2: "F0002/MID2"},
			},
		},
		{
			name: "brothers only",
			opts: fiwdb.PairOptions{Relation: kinship.Sibling, Gender: "male", Kind: "brothers"},
			want: []kinship.Row{
				{P1: "F0001/MID3", P2: "F0001/MID5"},
			},
		},
		{
			name: "sisters only",
			opts: fiwdb.PairOptions{Relation: kinship.Sibling, Gender: "Female", Kind: "sisters"},
			want: []kinship.Row{
				{P1: "F0002/MID1", P2: "F0002/MID2"},
			},
		},
		{
			name: "spouses",
			opts: fiwdb.PairOptions{Relation: kinship.Spouse},
			want: []kinship.Row{
				{P1: "F0001/MID1", P2: "F0001/MID2"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := fiwdb.BuildPairs(ctx, root, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Rows())
			if tt.opts.Kind != "" {
				assert.Equal(t, tt.opts.Kind, c.Kind())
			} else {
				assert.Equal(t, tt.opts.Relation.Kind(), c.Kind())
			}
		})
	}
	tl.AssertContains(t, "Built pair collection")
}

func TestBuildPairsFromRelationshipsFile(t *testing.T) {
	root := newDatabase(t)
	// F0001 members 1 and 2 become siblings instead of spouses.
	writeFile(t, filepath.Join(root, "F0001", "relationships.csv"),
		"MID,1,2,3,4,5\n1,0,2,4,4,4\n2,2,0,4,4,4\n3,1,1,0,0,0\n4,1,1,0,0,0\n5,1,1,0,0,0\n")
	writeFile(t, filepath.Join(root, "F0002", "relationships.csv"), "MID,1,2\n1,0,0\n2,0,0\n")

	c, err := fiwdb.BuildPairs(context.Background(), root, fiwdb.PairOptions{
		Relation:          kinship.Sibling,
		RelationshipsFile: "relationships.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, []kinship.Row{{P1: "F0001/MID1", P2: "F0001/MID2"}}, c.Rows())

	brothers, err := fiwdb.BuildPairs(context.Background(), root, fiwdb.PairOptions{
		Relation:          kinship.Sibling,
		Gender:            "male",
		RelationshipsFile: "relationships.csv",
	})
	require.NoError(t, err)
	assert.Zero(t, brothers.Len(), "MID1 and MID2 differ in gender")
}

func TestUseRelationshipsErrors(t *testing.T) {
	root := newDatabase(t)
	fam, err := fiwdb.LoadFamily(fiwdb.FamilyDir{FID: "F0002", Path: filepath.Join(root, "F0002")}, "mid.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "F0002"), fam.Path)

	err = fam.UseRelationships("relationships.csv")
	assert.True(t, errors.IsNotFound(err), "missing file: %v", err)

	writeFile(t, filepath.Join(root, "F0002", "relationships.csv"), "MID,1,2,3\n1,0,0,0\n2,0,0,0\n3,0,0,0\n")
	err = fam.UseRelationships("relationships.csv")
	assert.True(t, errors.IsValidationError(err), "size mismatch: %v", err)
	assert.Equal(t, 2, fam.Matrix.Size(), "matrix unchanged on error")
}

func TestBuildPairsCanceled(t *testing.T) {
	root := newDatabase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fiwdb.BuildPairs(ctx, root, fiwdb.PairOptions{Relation: kinship.Sibling})
	assert.True(t, errors.IsCanceled(err))
}

func TestLUTs(t *testing.T) {
	dir := t.TempDir()
	pids := filepath.Join(dir, "FIW_PIDs_new.csv")
	writeFile(t, pids, "\ufeffFIDs\tPIDs\tURL\nF0001\tP00001\thttp://img/1.jpg\nF0002\tP00002\thttp://img/2.jpg\n")
	rids := filepath.Join(dir, "FIW_RIDs.csv")
	writeFile(t, rids, "RID,Name\n1,Child\n2,Sibling\n")
	fids := filepath.Join(dir, "FIW_FIDs.csv")
	writeFile(t, fids, "FIDs\tsurnames\nF0001\tAbbott\nF0002\tBaker\n")

	recs, err := fiwdb.LoadPIDLUT(pids)
	require.NoError(t, err)
	assert.Equal(t, []fiwdb.PIDRecord{
		{FID: "F0001", PID: "P00001", URL: "http://img/1.jpg"},
		{FID: "F0002", PID: "P00002", URL: "http://img/2.jpg"},
	}, recs)

	rt, err := fiwdb.LoadRIDLUT(rids)
	require.NoError(t, err)
	assert.Equal(t, []string{"RID", "Name"}, rt.Header)
	assert.Equal(t, 2, rt.Len())

	ft, err := fiwdb.LoadFIDLUT(fids)
	require.NoError(t, err)
	names, err := fiwdb.FamilyNames(ft)
	require.NoError(t, err)
	assert.Equal(t, "Baker", names["F0002"])

	_, err = fiwdb.LoadPIDLUT(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.IsNotFound(err))

	_, err = fiwdb.LoadPIDLUT(rids)
	assert.True(t, errors.IsValidationError(err))
}
