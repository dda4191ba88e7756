package search

import (
	"github.com/dvaumoron/vaguesearch/pkg/layerstack"
	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// Found is one result of an approximate search: a word present in the
// dictionary within the requested edit distance of the query.
type Found struct {
	Word string
	Freq uint32
	Dist int
}

// Less orders results the way query results are expected to be presented:
// highest frequency first, then smallest distance, then lexicographic word
// order, so ties are broken deterministically.
func Less(a, b Found) bool {
	if a.Freq != b.Freq {
		return a.Freq > b.Freq
	}
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Word < b.Word
}

// Approx walks the whole trie, computing a Levenshtein edit distance
// incrementally one trie character at a time (substitution, insertion and
// deletion each cost 1; there is no special-cased transposition), and
// invokes sink for every word found within maxDist of word. Results are
// not sorted; callers needing query.rs's (freq desc, dist asc, word asc)
// order should collect and sort with Less.
//
// The layer stack holds one DP row per trie character currently on the
// path from the root; pushing/popping it as the DFS descends and
// backtracks reuses the same rows across the walk. Each call still
// allocates its own layer stack, every decoded record (trie.DecodeAt)
// allocates its label or slots, and every reported word is a new string.
func Approx(t *trie.CompiledTrie, word string, maxDist int, sink func(Found)) error {
	queryRunes := []rune(word)
	m := len(queryRunes)

	rows := layerstack.New[int](64*(m+1), 64)
	seed := rows.Push(0, false, m+1)
	for i := range seed {
		seed[i] = i
	}

	offset, has := t.RootSiblings()
	if !has {
		return nil
	}

	s := &approxSearch{
		trie:       t,
		query:      queryRunes,
		maxDist:    maxDist,
		rows:       rows,
		sink:       sink,
	}
	return s.visitSiblings(offset)
}

type approxSearch struct {
	trie    *trie.CompiledTrie
	query   []rune
	maxDist int
	rows    *layerstack.Stack[int]
	sink    func(Found)
}

func (s *approxSearch) visitSiblings(offset uint32) error {
	for {
		node, err := s.trie.DecodeAt(offset)
		if err != nil {
			return err
		}
		if err := s.visitNode(node); err != nil {
			return err
		}
		if node.NbSiblings == 0 {
			return nil
		}
		offset += node.Size
	}
}

// visitNode pushes one DP row per character of node's label (1 for Naive
// and Range, len(label) for Patricia), checking the bound after every
// character so a hopeless branch is abandoned before its full label is
// even walked, then recurses into children if still viable.
func (s *approxSearch) visitNode(node trie.Node) error {
	switch node.Kind {
	case trie.KindNaive:
		return s.visitLabel(string(node.Char), node.HasFreq, node.Freq, node.HasChild, node.FirstChild)

	case trie.KindPatricia:
		return s.visitLabel(node.Label, node.HasFreq, node.Freq, node.HasChild, node.FirstChild)

	case trie.KindRange:
		for i, slot := range node.Slots {
			if !slot.Present {
				continue
			}
			c := node.ChLo + rune(i)
			if err := s.visitLabel(string(c), slot.HasFreq, slot.Freq, slot.HasChild, slot.FirstChild); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

func (s *approxSearch) visitLabel(label string, hasFreq bool, freq uint32, hasChild bool, firstChild uint32) error {
	pushed := 0
	pruned := false

	for _, c := range label {
		parent := s.rows.Last()
		row := s.rows.Push(c, true, len(s.query)+1)
		pushed++

		row[0] = s.rows.Depth() - 1 // number of trie characters consumed so far
		minInRow := row[0]
		for i := 1; i < len(row); i++ {
			sub := parent[i-1]
			if s.query[i-1] != c {
				sub++
			}
			del := parent[i] + 1
			ins := row[i-1] + 1
			row[i] = min3(sub, del, ins)
			if row[i] < minInRow {
				minInRow = row[i]
			}
		}

		if minInRow > s.maxDist {
			pruned = true
			break
		}
	}

	defer func() {
		for i := 0; i < pushed; i++ {
			s.rows.Pop()
		}
	}()

	if pruned {
		return nil
	}

	row := s.rows.Last()
	dist := row[len(row)-1]
	if hasFreq && dist <= s.maxDist {
		s.sink(Found{Word: s.rows.Word(), Freq: freq, Dist: dist})
	}

	if hasChild {
		return s.visitSiblings(firstChild)
	}
	return nil
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
