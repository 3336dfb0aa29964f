// Package folds turns five-fold cross-validation pair lists into the three
// evaluation sets used for RFIW: train, val and test.
package folds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// Split is one evaluation set.
type Split int

// Evaluation sets, in output order.
const (
	Train Split = iota
	Val
	Test
)

// Splits lists every split in output order.
func Splits() []Split {
	return []Split{Train, Val, Test}
}

func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Val:
		return "val"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("split(%d)", int(s))
	}
}

// ParseSplit parses "train", "val" or "test".
func ParseSplit(s string) (Split, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "train":
		return Train, nil
	case "val", "validation":
		return Val, nil
	case "test":
		return Test, nil
	}
	return 0, errors.NewValidationError("split", s, "must be train, val or test")
}

// Policy assigns fold numbers to splits. A fold belongs to at most one split.
// Build one with NewPolicy or DefaultPolicy.
type Policy struct {
	assign map[int]Split
}

// DefaultPolicy merges folds {1,5} into train, {2,4} into val and {3} into test.
func DefaultPolicy() Policy {
	p, _ := NewPolicy(map[Split][]int{
		Train: {1, 5},
		Val:   {2, 4},
		Test:  {3},
	})
	return p
}

// NewPolicy builds a policy from split -> folds. Assigning a fold to two
// splits is an invalid argument.
func NewPolicy(folds map[Split][]int) (Policy, error) {
	p := Policy{assign: make(map[int]Split)}
	for _, s := range Splits() {
		for _, f := range folds[s] {
			if prev, ok := p.assign[f]; ok && prev != s {
				return Policy{}, errors.NewValidationError("policy", f,
					fmt.Sprintf("fold %d assigned to both %s and %s", f, prev, s))
			}
			p.assign[f] = s
		}
	}
	return p, nil
}

// IsZero reports whether p is the zero Policy, which assigns nothing and
// is replaced by DefaultPolicy wherever a policy is applied.
func (p Policy) IsZero() bool { return p.assign == nil }

// SplitOf returns the split that claims fold, if any.
func (p Policy) SplitOf(fold int) (Split, bool) {
	s, ok := p.assign[fold]
	return s, ok
}

// Folds returns the sorted folds assigned to s.
func (p Policy) Folds(s Split) []int {
	var out []int
	for f, sp := range p.assign {
		if sp == s {
			out = append(out, f)
		}
	}
	sort.Ints(out)
	return out
}

func (p Policy) String() string {
	parts := make([]string, 0, 3)
	for _, s := range Splits() {
		parts = append(parts, fmt.Sprintf("%s=%v", s, p.Folds(s)))
	}
	return strings.Join(parts, " ")
}
