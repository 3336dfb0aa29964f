package kinship

import (
	"strconv"
	"strings"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// Relation is a relationship code stored in a relationship matrix. Cell
// [i][j] holding Child means member i+1 is a child of member j+1.
type Relation int

// Codes used by the FIW relationship lookup table.
const (
	None Relation = iota
	Child
	Sibling
	Grandchild
	Parent
	Spouse
	Grandparent
	GreatGrandchild
	GreatGrandparent
	TBD
)

var relationKinds = map[Relation]string{
	Child:            "children",
	Sibling:          "siblings",
	Grandchild:       "grandchildren",
	Parent:           "parents",
	Spouse:           "spouses",
	Grandparent:      "grandparents",
	GreatGrandchild:  "great-grandchildren",
	GreatGrandparent: "great-grandparents",
	TBD:              "tbd",
}

// Kind is the plural label written into pair tables for this relation.
func (r Relation) Kind() string {
	if k, ok := relationKinds[r]; ok {
		return k
	}
	return "relation-" + strconv.Itoa(int(r))
}

func (r Relation) String() string {
	return r.Kind()
}

// Relations lists every known code in ascending order.
func Relations() []Relation {
	return []Relation{Child, Sibling, Grandchild, Parent, Spouse, Grandparent, GreatGrandchild, GreatGrandparent, TBD}
}

// ParseRelation accepts a numeric code or a kind name ("siblings", "sibling").
func ParseRelation(s string) (Relation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return None, errors.NewValidationError("relation", s, "code must be positive")
		}
		return Relation(n), nil
	}
	for r, k := range relationKinds {
		if s == k || s+"s" == k || s+"ren" == k {
			return r, nil
		}
	}
	return None, errors.NewValidationError("relation", s, "unknown relation")
}
