// Package patricia implements a mutable, build-time Patricia trie used by
// the dictionary compiler. Labels on internal edges are compressed runs of
// characters (a classic radix tree): inserting a word that shares a partial
// prefix with an existing label splits that label's node in two.
//
// This trie is an intermediate, throwaway structure. It exists only to be
// walked once, in sorted sibling order, to build the flat on-disk trie in
// pkg/trie. It is never itself serialized.
package patricia

import (
	"sort"
)

// Node is one node of the build-time trie. The root node always has an
// empty Label and is never itself a word.
type Node struct {
	Label    string
	Children []*Node
	Freq     uint32 // 0 means "not a word"
}

// New returns an empty trie root.
func New() *Node {
	return &Node{}
}

// HasFreq reports whether n terminates a word.
func (n *Node) HasFreq() bool {
	return n.Freq > 0
}

// firstRuneDiff returns the index (in runes) of the first rune at which a
// and b differ, or -1 if one is a prefix of the other (or they're equal).
func firstRuneDiff(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	for i := 0; i < n; i++ {
		if ra[i] != rb[i] {
			return i
		}
	}
	return -1
}

func runeLen(s string) int {
	return len([]rune(s))
}

func splitAtRune(s string, i int) (string, string) {
	r := []rune(s)
	return string(r[:i]), string(r[i:])
}

// divideNode splits n's label at rune index ind, pushing the remainder into
// a new child that inherits n's old children and frequency, and then either
// attaches the tail of word as another new child (the two children ordered
// by first rune) or, if word's tail is empty, marks n itself as that word.
//
// Grounded on divide_node/divide in the original patricia_trie.rs: the
// three-way split the Rust divide() dispatches on is exactly the three
// branches below.
func (n *Node) divideNode(word string, ind int, freq uint32) {
	head, tail := splitAtRune(n.Label, ind)

	carried := &Node{
		Label:    tail,
		Children: n.Children,
		Freq:     n.Freq,
	}

	n.Label = head
	n.Children = []*Node{carried}
	n.Freq = 0

	_, wordTail := splitAtRune(word, ind)
	if wordTail == "" {
		n.Freq = freq
		return
	}
	added := &Node{Label: wordTail, Freq: freq}
	addedFirst, _ := firstRune(wordTail)
	carriedFirst, _ := firstRune(tail)
	if addedFirst < carriedFirst {
		n.Children = []*Node{added, carried}
		return
	}
	n.Children = append(n.Children, added)
}

// divide tries to fold word (relative to n's own label) into n, splitting
// n's label if necessary. It returns true if word was fully consumed by
// this call (no further descent needed), false if word extends strictly
// past n's label and the caller must recurse into n's children.
func (n *Node) divide(word string, freq uint32) bool {
	diff := firstRuneDiff(n.Label, word)
	wLen, lLen := runeLen(word), runeLen(n.Label)

	switch {
	case diff >= 0:
		n.divideNode(word, diff, freq)
		return true
	case wLen < lLen:
		n.divideNode(word, wLen, freq)
		return true
	case wLen == lLen:
		n.Freq = freq
		return true
	default:
		return false
	}
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// Insert adds word with the given frequency, splitting existing nodes as
// needed. A freq of 0 is rejected silently (matching the original's
// "no need of doing anything if the word is empty" early return for the
// degenerate case); callers should validate frequency before calling.
func (n *Node) Insert(word string, freq uint32) {
	if word == "" || freq == 0 {
		return
	}

	parent := n
	remaining := word

	for {
		first, ok := firstRune(remaining)
		if !ok {
			return
		}

		idx := sort.Search(len(parent.Children), func(i int) bool {
			r, _ := firstRune(parent.Children[i].Label)
			return r >= first
		})

		var matched *Node
		if idx < len(parent.Children) {
			if r, _ := firstRune(parent.Children[idx].Label); r == first {
				matched = parent.Children[idx]
			}
		}

		if matched == nil {
			child := &Node{Label: remaining, Freq: freq}
			children := append([]*Node{}, parent.Children[:idx]...)
			children = append(children, child)
			children = append(children, parent.Children[idx:]...)
			parent.Children = children
			return
		}

		if matched.divide(remaining, freq) {
			return
		}
		remaining = remaining[len(matched.Label):]
		parent = matched
	}
}

// Lookup reports whether word is present and, if so, its frequency. A
// supplemental accessor mirroring the original's search() method. The
// compiler's -verify pass does not use it: it checks the compiled file with
// search.Exact instead.
func (n *Node) Lookup(word string) (uint32, bool) {
	cur := n
	remaining := word
	for remaining != "" {
		first, _ := firstRune(remaining)
		idx := sort.Search(len(cur.Children), func(i int) bool {
			r, _ := firstRune(cur.Children[i].Label)
			return r >= first
		})
		if idx == len(cur.Children) {
			return 0, false
		}
		child := cur.Children[idx]
		if r, _ := firstRune(child.Label); r != first {
			return 0, false
		}
		switch {
		case len(child.Label) > len(remaining):
			return 0, false
		case len(child.Label) == len(remaining):
			if child.Label != remaining {
				return 0, false
			}
			if !child.HasFreq() {
				return 0, false
			}
			return child.Freq, true
		default:
			if remaining[:len(child.Label)] != child.Label {
				return 0, false
			}
			remaining = remaining[len(child.Label):]
			cur = child
		}
	}
	return 0, false
}

// Delete removes word from the trie: a matching leaf node is dropped, a
// matching node with exactly one child is merged with that child, and a
// matching node with several children only loses its frequency. It reports
// whether a matching word was found and removed.
//
// Supplemental: spec's exclusion of mutation applies to the compiled
// (immutable) dictionary, not to this build-time structure. Grounded on
// delete/delete_node in the original patricia_trie.rs.
func (n *Node) Delete(word string) bool {
	if word == "" {
		return false
	}

	parent := n
	remaining := word

	for {
		first, ok := firstRune(remaining)
		if !ok {
			return false
		}
		idx := sort.Search(len(parent.Children), func(i int) bool {
			r, _ := firstRune(parent.Children[i].Label)
			return r >= first
		})
		if idx == len(parent.Children) {
			return false
		}
		child := parent.Children[idx]
		if r, _ := firstRune(child.Label); r != first {
			return false
		}

		done, matched := parent.deleteNode(remaining, idx)
		if done {
			return matched
		}
		remaining = remaining[len(child.Label):]
		parent = child
	}
}

// deleteNode mirrors delete_node: it decides, for the child at idx, whether
// the recursion can stop here (done == true) and if so whether a word was
// actually removed (matched).
func (n *Node) deleteNode(word string, idx int) (done bool, matched bool) {
	child := n.Children[idx]

	switch {
	case len(child.Label) < len(word):
		if word[:len(child.Label)] != child.Label {
			return true, false
		}
		return false, false
	case len(child.Label) > len(word), !child.HasFreq():
		return true, false
	}

	if child.Label != word {
		return true, false
	}

	switch {
	case len(child.Children) > 1:
		child.Freq = 0
	case len(child.Children) == 0:
		n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	default:
		only := child.Children[0]
		child.Label += only.Label
		child.Freq = only.Freq
		child.Children = only.Children
	}
	return true, true
}

// Visitor receives each node during a depth-first, sorted-sibling-order
// walk, along with its depth (root is depth 0) and its index among its
// siblings.
type Visitor func(n *Node, depth int, siblingIndex int)

// Walk performs a depth-first pre-order traversal of the trie rooted at n,
// visiting siblings left to right (the order Insert keeps them in). This is
// the traversal pkg/trie's flattening pass relies on.
func (n *Node) Walk(visit Visitor) {
	n.walk(visit, 0, 0)
}

func (n *Node) walk(visit Visitor, depth int, siblingIndex int) {
	visit(n, depth, siblingIndex)
	for i, c := range n.Children {
		c.walk(visit, depth+1, i)
	}
}
