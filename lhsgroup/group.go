package lhsgroup

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Analyzer accumulates which Signals are driven together through
// compound (Cat) assignment targets across a fragment's statement tree.
type Analyzer struct {
	uf      *unionFind[value.SignalID]
	order   []value.SignalID
	inOrder map[value.SignalID]bool
}

// NewAnalyzer returns an empty Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{uf: newUnionFind[value.SignalID](), inOrder: map[value.SignalID]bool{}}
}

// AddAssign records lhs's signals as co-written. A bare Signal LHS
// registers one singleton group; a Cat/Slice/Part LHS unions every
// signal it touches into one group, since an emitted cell drives all of
// them as a single output.
func (a *Analyzer) AddAssign(lhs value.Value) error {
	signals, err := value.LHSSignals(lhs)
	if err != nil {
		return fmt.Errorf("lhsgroup.AddAssign: %w", err)
	}
	for _, sig := range signals {
		if !a.inOrder[sig.ID] {
			a.inOrder[sig.ID] = true
			a.order = append(a.order, sig.ID)
		}
		a.uf.makeSet(sig.ID)
	}
	for i := 1; i < len(signals); i++ {
		a.uf.union(signals[0].ID, signals[i].ID)
	}
	return nil
}

// Groups returns the co-assigned signal groups, each in first-seen
// order, and the groups themselves ordered by each group's first member's
// first appearance — deterministic regardless of Go map iteration order
// (spec §9 "Determinism under iteration").
func (a *Analyzer) Groups() [][]value.SignalID {
	repOrder := map[value.SignalID]int{}
	var groups [][]value.SignalID
	for _, id := range a.order {
		rep := a.uf.find(id)
		idx, ok := repOrder[rep]
		if !ok {
			idx = len(groups)
			repOrder[rep] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], id)
	}
	return groups
}

// Same reports whether x and y were unioned into the same group.
func (a *Analyzer) Same(x, y value.SignalID) bool {
	return a.uf.find(x) == a.uf.find(y)
}
