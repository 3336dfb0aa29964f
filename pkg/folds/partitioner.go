package folds

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/logging"
	"github.com/agentstation/fiwdb/pkg/tabular"
)

// Report describes one partitioned fold file.
type Report struct {
	Source   string            `json:"source" yaml:"source"`
	Outputs  map[string]string `json:"outputs" yaml:"outputs"`
	Counts   map[string]int    `json:"counts" yaml:"counts"`
	Excluded []int             `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// Total returns the number of rows written across all splits.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Partitioner writes train/val/test files for fold files. The zero value
// partitions with DefaultPolicy.
type Partitioner struct {
	Policy Policy
}

// NewPartitioner returns a partitioner using policy.
func NewPartitioner(policy Policy) *Partitioner {
	return &Partitioner{Policy: policy}
}

// PartitionDir partitions every *-folds.csv file in inDir into outRoot.
// An unreadable directory or a directory without fold files is an error.
func (p *Partitioner) PartitionDir(ctx context.Context, inDir, outRoot string) ([]Report, error) {
	files, err := filepath.Glob(filepath.Join(inDir, constants.FoldFileGlob))
	if err != nil {
		return nil, errors.WrapIO("glob", inDir, err)
	}
	if len(files) == 0 {
		return nil, errors.NewNotFoundError("fold files", filepath.Join(inDir, constants.FoldFileGlob))
	}
	sort.Strings(files)

	reports := make([]Report, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return reports, errors.WrapResource("partition", "folds", inDir, errors.ErrCanceled)
		}
		r, err := p.PartitionFile(ctx, f, outRoot)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// PartitionFile splits one fold file and writes
// outRoot/{train,val,test}/<name with -folds replaced>.csv.
func (p *Partitioner) PartitionFile(ctx context.Context, path, outRoot string) (Report, error) {
	ctx = logging.WithFile(ctx, filepath.Base(path))
	logger := logging.FromContext(ctx)

	t, err := tabular.ReadFile(path, tabular.Comma)
	if err != nil {
		return Report{}, err
	}
	res, err := Partition(t, p.Policy)
	if err != nil {
		return Report{}, errors.WrapResource("partition", "folds", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	report := Report{
		Source:  path,
		Outputs: make(map[string]string, 3),
		Counts:  make(map[string]int, 3),
	}
	for _, s := range Splits() {
		out := filepath.Join(outRoot, s.String(), OutputName(base, s)+".csv")
		if err := res.Sets[s].WriteFile(out, tabular.Comma); err != nil {
			return report, err
		}
		report.Outputs[s.String()] = out
		report.Counts[s.String()] = res.Sets[s].Len()
	}

	if len(res.Excluded) > 0 {
		var unassigned, folds, malformed []int
		for _, rec := range res.Excluded {
			report.Excluded = append(report.Excluded, rec.Line)
			if rec.Malformed {
				malformed = append(malformed, rec.Line)
				continue
			}
			unassigned = append(unassigned, rec.Line)
			folds = append(folds, rec.Fold)
		}
		if len(unassigned) > 0 {
			logger.Warn().
				Ints("rows", unassigned).
				Ints("folds", folds).
				Msg("Rows with folds outside the policy were left out of every split")
		}
		if len(malformed) > 0 {
			logger.Warn().
				Ints("rows", malformed).
				Msg("Rows with a blank or non-integer fold were left out of every split")
		}
	}

	logger.Info().
		Int("train", report.Counts[Train.String()]).
		Int("val", report.Counts[Val.String()]).
		Int("test", report.Counts[Test.String()]).
		Msg("Partitioned fold file")

	return report, nil
}
