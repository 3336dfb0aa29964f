package kinship

import (
	"fmt"
	"strings"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// GenderVector holds one gender label per member, index-aligned with the
// relationship matrix.
type GenderVector []string

// Matches reports whether member i has the given gender. Labels compare
// case-insensitively after trimming, so "Male" never matches "Female".
func (g GenderVector) Matches(i int, gender string) bool {
	return strings.EqualFold(strings.TrimSpace(g[i]), strings.TrimSpace(gender))
}

// FilterGender zeroes every row and every column of m whose member does not
// have the requested gender. A cell survives only if both of its members
// match. m is modified in place and returned.
func FilterGender(m *RelationshipMatrix, genders GenderVector, gender string) (*RelationshipMatrix, error) {
	if len(genders) != m.Size() {
		return nil, errors.NewValidationError("genders", len(genders),
			fmt.Sprintf("gender vector has %d entries for %d members", len(genders), m.Size()))
	}
	for k := range genders {
		if genders.Matches(k, gender) {
			continue
		}
		for x := 0; x < m.Size(); x++ {
			m.Set(k, x, None)
			m.Set(x, k, None)
		}
	}
	return m, nil
}
