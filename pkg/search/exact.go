// Package search implements exact and approximate (bounded edit distance)
// lookups against a compiled trie.
package search

import (
	"unicode/utf8"

	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// Exact looks up word in t and returns its frequency if present. A missing
// word is reported as ok == false with a nil error; err is only non-nil on
// a corrupt or truncated dictionary file.
func Exact(t *trie.CompiledTrie, word string) (freq uint32, ok bool, err error) {
	offset, has := t.RootSiblings()
	if !has {
		return 0, false, nil
	}
	return searchChildren(t, word, offset)
}

// searchChildren walks down the trie consuming word one node at a time,
// starting at the sibling group beginning at offset. It mirrors the
// search_exact/search_exact_children split of the reference Rust
// implementation, adapted to byte-offset addressed siblings.
func searchChildren(t *trie.CompiledTrie, word string, offset uint32) (uint32, bool, error) {
	remaining := word
	for {
		if remaining == "" {
			return 0, false, nil
		}
		target, width := utf8.DecodeRuneInString(remaining)

		node, found, err := findSibling(t, offset, target)
		if err != nil {
			return 0, false, err
		}
		if !found {
			return 0, false, nil
		}

		switch node.Kind {
		case trie.KindNaive:
			if len(remaining) == width {
				if node.HasFreq {
					return node.Freq, true, nil
				}
				return 0, false, nil
			}
			if !node.HasChild {
				return 0, false, nil
			}
			remaining = remaining[width:]
			offset = node.FirstChild

		case trie.KindPatricia:
			label := node.Label
			if len(label) > len(remaining) || remaining[:len(label)] != label {
				return 0, false, nil
			}
			if len(remaining) == len(label) {
				if node.HasFreq {
					return node.Freq, true, nil
				}
				return 0, false, nil
			}
			if !node.HasChild {
				return 0, false, nil
			}
			remaining = remaining[len(label):]
			offset = node.FirstChild

		case trie.KindRange:
			slotIdx := int(target - node.ChLo)
			if slotIdx < 0 || slotIdx >= len(node.Slots) || !node.Slots[slotIdx].Present {
				return 0, false, nil
			}
			slot := node.Slots[slotIdx]
			if len(remaining) == width {
				if slot.HasFreq {
					return slot.Freq, true, nil
				}
				return 0, false, nil
			}
			if !slot.HasChild {
				return 0, false, nil
			}
			remaining = remaining[width:]
			offset = slot.FirstChild
		}
	}
}

// findSibling scans the sibling group starting at offset for a node whose
// leading character equals target, relying on the group being sorted
// ascending so the scan can stop as soon as it passes target (this is the
// linear-scan equivalent of compare_keys/binary_search_by described in
// DESIGN.md's Open Question about byte-offset addressing).
func findSibling(t *trie.CompiledTrie, offset uint32, target rune) (trie.Node, bool, error) {
	for {
		node, err := t.DecodeAt(offset)
		if err != nil {
			return trie.Node{}, false, err
		}
		switch compareKey(node, target) {
		case 0:
			return node, true, nil
		case 1:
			return trie.Node{}, false, nil
		default:
			if node.NbSiblings == 0 {
				return trie.Node{}, false, nil
			}
			offset += node.Size
		}
	}
}

// compareKey orders a decoded node against a target character: -1 if the
// node's character(s) sort before target, 0 if target falls within the
// node, 1 if the node sorts after target.
func compareKey(node trie.Node, target rune) int {
	switch node.Kind {
	case trie.KindNaive:
		return runeCmp(node.Char, target)
	case trie.KindPatricia:
		first, _ := utf8.DecodeRuneInString(node.Label)
		return runeCmp(first, target)
	case trie.KindRange:
		switch {
		case target < node.ChLo:
			return 1
		case target > node.ChHi:
			return -1
		default:
			return 0
		}
	default:
		return 1
	}
}

func runeCmp(a, b rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
