package fiwdb

import (
	"context"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// PairOptions selects which pairs BuildPairs derives.
type PairOptions struct {
	// Relation is the matrix code to select.
	Relation kinship.Relation

	// Kind labels the pairs; defaults to Relation.Kind().
	Kind string

	// Gender, when set, masks out every member of another gender first.
	Gender string

	// MembersFile defaults to mid.csv.
	MembersFile string

	// RelationshipsFile, when set, names a standalone relationship file in
	// every family directory whose matrix replaces the member file's block.
	// Genders still come from the member file.
	RelationshipsFile string
}

func (o PairOptions) withDefaults() PairOptions {
	if o.Kind == "" {
		o.Kind = o.Relation.Kind()
	}
	if o.MembersFile == "" {
		o.MembersFile = constants.MembersFile
	}
	return o
}

// DerivePairs runs the gender mask (if requested) and the pair deriver over
// one family, appending to acc. The family's matrix is modified when a
// gender is given.
func DerivePairs(acc []kinship.Pair, fam *Family, opts PairOptions) ([]kinship.Pair, error) {
	opts = opts.withDefaults()
	m := fam.Matrix
	if opts.Gender != "" {
		var err error
		if m, err = kinship.FilterGender(m, fam.Genders(), opts.Gender); err != nil {
			return acc, errors.WrapResource("derive", "pairs", string(fam.FID), err)
		}
	}
	acc, err := kinship.DerivePairs(acc, m.CoordinatesOf(opts.Relation), opts.Kind, fam.FID)
	if err != nil {
		return acc, errors.WrapResource("derive", "pairs", string(fam.FID), err)
	}
	return acc, nil
}

// BuildPairs derives pairs for every family under root and returns them as
// one collection ordered by family number.
func BuildPairs(ctx context.Context, root string, opts PairOptions) (*kinship.PairCollection, error) {
	opts = opts.withDefaults()
	families, err := LoadFamilies(ctx, root, opts.MembersFile)
	if err != nil {
		return nil, err
	}

	var acc []kinship.Pair
	for _, fam := range families {
		if opts.RelationshipsFile != "" {
			if err := fam.UseRelationships(opts.RelationshipsFile); err != nil {
				return nil, err
			}
		}
		before := len(acc)
		if acc, err = DerivePairs(acc, fam, opts); err != nil {
			return nil, err
		}
		logging.FromContext(logging.WithFamily(ctx, string(fam.FID))).Debug().
			Int("pairs", len(acc)-before).
			Msg("Derived pairs")
	}
	kinship.SortPairs(acc)

	logging.FromContext(ctx).Info().
		Str("kind", opts.Kind).
		Str("gender", opts.Gender).
		Int("families", len(families)).
		Int("pairs", len(acc)).
		Msg("Built pair collection")
	return kinship.NewPairCollection(acc, opts.Kind), nil
}
