// Package kinship implements the identifier model and pair pipeline of the
// FIW dataset: family and member ids, kin pairs, per-family relationship
// matrices, the gender mask, pair derivation and the flat pair table that is
// persisted for training.
//
// A typical per-family run:
//
//	m, genders := family.Matrix, family.Genders
//	kinship.FilterGender(m, genders, "female")
//	acc, err = kinship.DerivePairs(acc, m.CoordinatesOf(kinship.Sibling), "sisters", family.FID)
//
// and once all families are done:
//
//	kinship.SortPairs(acc)
//	kinship.NewPairCollection(acc, "sisters").WriteFile("sisters.csv")
package kinship
