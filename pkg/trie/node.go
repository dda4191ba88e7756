package trie

import "encoding/binary"

// Kind identifies which of the three node shapes a record uses.
type Kind byte

const (
	KindNaive    Kind = Kind(tagNaive)
	KindPatricia Kind = Kind(tagPatricia)
	KindRange    Kind = Kind(tagRange)
)

const (
	flagHasFreq  byte = 1 << 0
	flagHasChild byte = 1 << 1
)

const (
	slotPresent  byte = 1 << 0
	slotHasFreq  byte = 1 << 1
	slotHasChild byte = 1 << 2
)

// Slot is one decoded entry of a RangeNode, corresponding to a single
// character offset within [ChLo, ChHi].
type Slot struct {
	Present         bool
	HasFreq         bool
	Freq            uint32
	HasChild        bool
	NbChildSiblings uint32
	FirstChild      uint32
}

// Node is a decoded view of a single record in the compiled node array. It
// borrows nothing from the underlying byte slice (Label is copied), so it
// is safe to keep around after the slice backing it is unmapped.
type Node struct {
	Kind       Kind
	Size       uint32 // total bytes this record occupies
	NbSiblings uint32

	// Naive
	Char rune

	// Patricia
	Label string

	// Naive / Patricia
	HasFreq    bool
	Freq       uint32
	HasChild   bool
	FirstChild uint32

	// Range
	ChLo, ChHi rune
	Slots      []Slot
}

// decodeNode reads one record starting at byte offset off in b.
func decodeNode(b []byte, off uint32) (Node, error) {
	if int(off) >= len(b) {
		return Node{}, ErrFormatTruncated
	}
	cur := b[off:]
	if len(cur) < 1 {
		return Node{}, ErrFormatTruncated
	}
	tag := cur[0]
	pos := 1

	switch tag {
	case tagNaive:
		if len(cur) < pos+4+1+4 {
			return Node{}, ErrFormatTruncated
		}
		char := rune(binary.LittleEndian.Uint32(cur[pos:]))
		pos += 4
		flags := cur[pos]
		pos++
		nbSiblings := binary.LittleEndian.Uint32(cur[pos:])
		pos += 4
		n := Node{Kind: KindNaive, NbSiblings: nbSiblings, Char: char}
		if flags&flagHasFreq != 0 {
			if len(cur) < pos+4 {
				return Node{}, ErrFormatTruncated
			}
			n.HasFreq = true
			n.Freq = binary.LittleEndian.Uint32(cur[pos:])
			pos += 4
		}
		if flags&flagHasChild != 0 {
			if len(cur) < pos+4 {
				return Node{}, ErrFormatTruncated
			}
			n.HasChild = true
			n.FirstChild = binary.LittleEndian.Uint32(cur[pos:])
			pos += 4
		}
		n.Size = uint32(pos)
		return n, nil

	case tagPatricia:
		if len(cur) < pos+2 {
			return Node{}, ErrFormatTruncated
		}
		labelLen := int(binary.LittleEndian.Uint16(cur[pos:]))
		pos += 2
		if len(cur) < pos+labelLen+1+4 {
			return Node{}, ErrFormatTruncated
		}
		label := string(cur[pos : pos+labelLen])
		pos += labelLen
		flags := cur[pos]
		pos++
		nbSiblings := binary.LittleEndian.Uint32(cur[pos:])
		pos += 4
		n := Node{Kind: KindPatricia, NbSiblings: nbSiblings, Label: label}
		if flags&flagHasFreq != 0 {
			if len(cur) < pos+4 {
				return Node{}, ErrFormatTruncated
			}
			n.HasFreq = true
			n.Freq = binary.LittleEndian.Uint32(cur[pos:])
			pos += 4
		}
		if flags&flagHasChild != 0 {
			if len(cur) < pos+4 {
				return Node{}, ErrFormatTruncated
			}
			n.HasChild = true
			n.FirstChild = binary.LittleEndian.Uint32(cur[pos:])
			pos += 4
		}
		n.Size = uint32(pos)
		return n, nil

	case tagRange:
		if len(cur) < pos+4+4+4+4 {
			return Node{}, ErrFormatTruncated
		}
		chLo := rune(binary.LittleEndian.Uint32(cur[pos:]))
		pos += 4
		chHi := rune(binary.LittleEndian.Uint32(cur[pos:]))
		pos += 4
		nbSiblings := binary.LittleEndian.Uint32(cur[pos:])
		pos += 4
		slotCount := int(binary.LittleEndian.Uint32(cur[pos:]))
		pos += 4

		slots := make([]Slot, slotCount)
		for i := 0; i < slotCount; i++ {
			if len(cur) < pos+1 {
				return Node{}, ErrFormatTruncated
			}
			flags := cur[pos]
			pos++
			var s Slot
			if flags&slotPresent != 0 {
				s.Present = true
				if flags&slotHasFreq != 0 {
					if len(cur) < pos+4 {
						return Node{}, ErrFormatTruncated
					}
					s.HasFreq = true
					s.Freq = binary.LittleEndian.Uint32(cur[pos:])
					pos += 4
				}
				if flags&slotHasChild != 0 {
					if len(cur) < pos+8 {
						return Node{}, ErrFormatTruncated
					}
					s.HasChild = true
					s.NbChildSiblings = binary.LittleEndian.Uint32(cur[pos:])
					pos += 4
					s.FirstChild = binary.LittleEndian.Uint32(cur[pos:])
					pos += 4
				}
			}
			slots[i] = s
		}

		n := Node{
			Kind:       KindRange,
			NbSiblings: nbSiblings,
			ChLo:       chLo,
			ChHi:       chHi,
			Slots:      slots,
			Size:       uint32(pos),
		}
		return n, nil

	default:
		return Node{}, ErrFormatTruncated
	}
}
