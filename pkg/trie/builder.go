package trie

import (
	"encoding/binary"

	"github.com/dvaumoron/vaguesearch/pkg/patricia"
)

// Builder accumulates the flat node array while flattening a
// pkg/patricia.Node tree, following the same two-pass shape as the trie
// this format was ported from: for every sibling group, first write every
// sibling's record (with a placeholder child pointer), then recurse into
// each sibling's own children and patch its placeholder with the real
// offset once known.
type Builder struct {
	buf             []byte
	nodeCount       uint32
	header          Header
	minRangeRun     int
	minRangeDensity float64
}

// BuildFromPatricia flattens root's children (root itself carries no
// character and is never a word) into a Builder ready to be serialized,
// using the default range-node consolidation thresholds.
func BuildFromPatricia(root *patricia.Node) *Builder {
	return BuildFromPatriciaWithThresholds(root, DefaultMinRangeRun, DefaultMinRangeDensity)
}

// BuildFromPatriciaWithThresholds is BuildFromPatricia with the
// range-node consolidation thresholds taken from the caller's config
// instead of the package defaults.
func BuildFromPatriciaWithThresholds(root *patricia.Node, minRangeRun int, minRangeDensity float64) *Builder {
	b := &Builder{buf: make([]byte, 0, 4096), minRangeRun: minRangeRun, minRangeDensity: minRangeDensity}
	rootOffset := NoChild
	if off, ok := b.fillChildren(root.Children); ok {
		rootOffset = off
	}
	b.header = Header{NodeCount: b.nodeCount, RootOffset: rootOffset}
	return b
}

func (b *Builder) fillChildren(children []*patricia.Node) (uint32, bool) {
	if len(children) == 0 {
		return 0, false
	}
	groups := chooseGroupsWithThresholds(children, b.minRangeRun, b.minRangeDensity)
	layerStart := uint32(len(b.buf))

	type pendingSingle struct {
		patchOffset uint32
		child       *patricia.Node
	}
	type pendingRangeSlot struct {
		patchOffset uint32
		child       *patricia.Node
	}

	var singles []pendingSingle
	var rangeSlots []pendingRangeSlot

	for i, g := range groups {
		nbSiblings := uint32(len(groups) - 1 - i)
		switch g.kind {
		case groupSingle:
			patchOff, hasChildren := b.writeSingle(g.child, nbSiblings)
			if hasChildren {
				singles = append(singles, pendingSingle{patchOffset: patchOff, child: g.child})
			}
		case groupRange:
			slotPatches, hasChild := b.writeRange(g, nbSiblings)
			for slotIdx, patchOff := range slotPatches {
				if !hasChild[slotIdx] {
					continue
				}
				rangeSlots = append(rangeSlots, pendingRangeSlot{patchOffset: patchOff, child: g.slots[slotIdx]})
			}
		}
	}

	for _, p := range singles {
		if childOffset, ok := b.fillChildren(p.child.Children); ok {
			binary.LittleEndian.PutUint32(b.buf[p.patchOffset:], childOffset)
		}
	}
	for _, p := range rangeSlots {
		if childOffset, ok := b.fillChildren(p.child.Children); ok {
			binary.LittleEndian.PutUint32(b.buf[p.patchOffset:], childOffset)
		}
	}

	b.nodeCount += uint32(len(groups))
	return layerStart, true
}

// writeSingle appends one Naive or Patricia record for child, depending on
// its label length. It returns the byte offset of the firstChild field to
// patch later (only meaningful when child actually has children) and
// whether child has children at all.
func (b *Builder) writeSingle(child *patricia.Node, nbSiblings uint32) (uint32, bool) {
	hasFreq := child.HasFreq()
	hasChild := len(child.Children) > 0

	var flags byte
	if hasFreq {
		flags |= flagHasFreq
	}
	if hasChild {
		flags |= flagHasChild
	}

	if labelRuneLen(child.Label) == 1 {
		b.buf = append(b.buf, tagNaive)
		b.buf = appendUint32(b.buf, uint32(firstRune(child.Label)))
		b.buf = append(b.buf, flags)
		b.buf = appendUint32(b.buf, nbSiblings)
		if hasFreq {
			b.buf = appendUint32(b.buf, child.Freq)
		}
		var patchOff uint32
		if hasChild {
			patchOff = uint32(len(b.buf))
			b.buf = appendUint32(b.buf, NoChild)
		}
		return patchOff, hasChild
	}

	b.buf = append(b.buf, tagPatricia)
	labelBytes := []byte(child.Label)
	b.buf = appendUint16(b.buf, uint16(len(labelBytes)))
	b.buf = append(b.buf, labelBytes...)
	b.buf = append(b.buf, flags)
	b.buf = appendUint32(b.buf, nbSiblings)
	if hasFreq {
		b.buf = appendUint32(b.buf, child.Freq)
	}
	var patchOff uint32
	if hasChild {
		patchOff = uint32(len(b.buf))
		b.buf = appendUint32(b.buf, NoChild)
	}
	return patchOff, hasChild
}

// writeRange appends one Range record covering g.lo..g.hi. It returns, per
// slot index, the byte offset of that slot's firstChild field and whether
// that offset is actually meaningful (the slot is present and has
// children).
func (b *Builder) writeRange(g group, nbSiblings uint32) ([]uint32, []bool) {
	b.buf = append(b.buf, tagRange)
	b.buf = appendUint32(b.buf, uint32(g.lo))
	b.buf = appendUint32(b.buf, uint32(g.hi))
	b.buf = appendUint32(b.buf, nbSiblings)
	b.buf = appendUint32(b.buf, uint32(len(g.slots)))

	patches := make([]uint32, len(g.slots))
	hasChild := make([]bool, len(g.slots))
	for i, child := range g.slots {
		if child == nil {
			b.buf = append(b.buf, byte(0))
			continue
		}
		childHasFreq := child.HasFreq()
		childHasChild := len(child.Children) > 0
		flags := slotPresent
		if childHasFreq {
			flags |= slotHasFreq
		}
		if childHasChild {
			flags |= slotHasChild
		}
		b.buf = append(b.buf, flags)
		if childHasFreq {
			b.buf = appendUint32(b.buf, child.Freq)
		}
		if childHasChild {
			childGroups := chooseGroupsWithThresholds(child.Children, b.minRangeRun, b.minRangeDensity)
			b.buf = appendUint32(b.buf, uint32(len(childGroups)-1))
			patches[i] = uint32(len(b.buf))
			hasChild[i] = true
			b.buf = appendUint32(b.buf, NoChild)
		}
	}
	return patches, hasChild
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// NodeCount returns the number of records written so far.
func (b *Builder) NodeCount() uint32 {
	return b.nodeCount
}

// Bytes serializes the builder's accumulated node array, prefixed with the
// file header, into a single self-contained buffer ready to be written to
// disk.
func (b *Builder) Bytes() []byte {
	out := make([]byte, 0, headerSize+len(b.buf))
	out = append(out, encodeHeader(b.header)...)
	out = append(out, b.buf...)
	return out
}
