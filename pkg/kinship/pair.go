package kinship

import (
	"fmt"
	"sort"
)

// Pair is an immutable kin pair between two members of one family.
// Pair is comparable: == and map keys compare (mid0, mid1, fid, kind), so
// two independently built pairs with the same fields are the same key.
// The MIDs keep the order they were supplied in.
type Pair struct {
	mids [2]MID
	fid  FID
	kind string
}

// PairKey is the structural identity of a Pair.
type PairKey struct {
	MID0, MID1 MID
	FID        FID
	Kind       string
}

// NewPair builds a pair from 0-based matrix indices.
func NewPair(i, j int, fid FID, kind string) Pair {
	return NewPairFromMIDs(MIDFromIndex(i), MIDFromIndex(j), fid, kind)
}

// NewPairFromMIDs builds a pair from 1-based member ids.
func NewPairFromMIDs(m0, m1 MID, fid FID, kind string) Pair {
	return Pair{mids: [2]MID{m0, m1}, fid: fid, kind: kind}
}

// FID returns the owning family.
func (p Pair) FID() FID { return p.fid }

// MIDs returns both member ids in stored order.
func (p Pair) MIDs() (MID, MID) { return p.mids[0], p.mids[1] }

// Kind returns the relationship kind, e.g. "siblings".
func (p Pair) Kind() string { return p.kind }

// Key returns the structural identity used for equality and hashing.
func (p Pair) Key() PairKey {
	return PairKey{MID0: p.mids[0], MID1: p.mids[1], FID: p.fid, Kind: p.kind}
}

// Canonical returns p with the smaller MID first.
func (p Pair) Canonical() Pair {
	if p.mids[1] < p.mids[0] {
		p.mids[0], p.mids[1] = p.mids[1], p.mids[0]
	}
	return p
}

// Less orders pairs by the numeric part of their family id only. Pairs of
// the same family are neither less nor greater than each other.
func (p Pair) Less(o Pair) bool {
	return p.fid.Number() < o.fid.Number()
}

func (p Pair) String() string {
	return fmt.Sprintf("FID: %s ; MIDS: (%d, %d) ; Type: %s", p.fid, p.mids[0], p.mids[1], p.kind)
}

// SortPairs sorts pairs by family number, keeping encounter order within a family.
func SortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Less(pairs[j])
	})
}
