package trie

import "github.com/dvaumoron/vaguesearch/pkg/patricia"

// groupKind distinguishes the two record shapes a sibling group decision
// can produce. Single-character children always prefer Naive over
// Patricia (a Patricia record's inline length prefix can only add bytes
// for a one-character label), so the heuristic's real choice is between
// Naive/Patricia (forced by label length) and Range consolidation.
type groupKind int

const (
	groupSingle groupKind = iota
	groupRange
)

type group struct {
	kind groupKind
	// single
	child *patricia.Node
	// range
	lo, hi rune
	slots  []*patricia.Node // len == hi-lo+1; nil entry means absent
}

// DefaultMinRangeRun and DefaultMinRangeDensity are the thresholds a
// maximal run of single-character siblings must clear before Range
// consolidation beats encoding each as its own Naive record. A run below
// the minimum length never amortizes a RangeNode's fixed header cost;
// below the minimum density, the absent slots it would have to carry cost
// more than the Naive records they replace. Callers that need different
// thresholds use chooseGroupsWithThresholds directly; BuildFromPatricia
// uses these defaults.
const (
	DefaultMinRangeRun     = 3
	DefaultMinRangeDensity = 0.5
)

func labelRuneLen(s string) int {
	return len([]rune(s))
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// chooseGroups partitions children using the default thresholds.
func chooseGroups(children []*patricia.Node) []group {
	return chooseGroupsWithThresholds(children, DefaultMinRangeRun, DefaultMinRangeDensity)
}

// chooseGroupsWithThresholds partitions a sorted sibling list into the
// records that will actually be written: each multi-character child
// becomes its own Patricia group, and each maximal run of single-character
// children either stays as individual Naive groups or collapses into one
// Range group, whichever the density heuristic favors under minRun and
// minDensity.
func chooseGroupsWithThresholds(children []*patricia.Node, minRun int, minDensity float64) []group {
	var groups []group
	i := 0
	for i < len(children) {
		if labelRuneLen(children[i].Label) != 1 {
			groups = append(groups, group{kind: groupSingle, child: children[i]})
			i++
			continue
		}
		j := i + 1
		for j < len(children) && labelRuneLen(children[j].Label) == 1 {
			j++
		}
		run := children[i:j]
		if rangeWorthwhile(run, minRun, minDensity) {
			groups = append(groups, buildRangeGroup(run))
		} else {
			for _, c := range run {
				groups = append(groups, group{kind: groupSingle, child: c})
			}
		}
		i = j
	}
	return groups
}

func rangeWorthwhile(run []*patricia.Node, minRun int, minDensity float64) bool {
	if len(run) < minRun {
		return false
	}
	lo := firstRune(run[0].Label)
	hi := firstRune(run[len(run)-1].Label)
	span := int(hi-lo) + 1
	if span <= 0 {
		return false
	}
	density := float64(len(run)) / float64(span)
	return density >= minDensity
}

func buildRangeGroup(run []*patricia.Node) group {
	lo := firstRune(run[0].Label)
	hi := firstRune(run[len(run)-1].Label)
	span := int(hi-lo) + 1
	slots := make([]*patricia.Node, span)
	for _, c := range run {
		r := firstRune(c.Label)
		slots[int(r-lo)] = c
	}
	return group{kind: groupRange, lo: lo, hi: hi, slots: slots}
}
