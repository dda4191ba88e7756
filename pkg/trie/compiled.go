package trie

// CompiledTrie is a read-only view over a compiled dictionary's bytes. It
// never copies or owns the backing slice, so it works identically whether
// that slice is a memory-mapped file or a plain read into a []byte.
type CompiledTrie struct {
	data []byte
	hdr  Header
}

// Load validates the header of b and returns a CompiledTrie borrowing b.
// b must remain valid (and unmodified) for the lifetime of the returned
// CompiledTrie.
func Load(b []byte) (*CompiledTrie, error) {
	hdr, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	return &CompiledTrie{data: b, hdr: hdr}, nil
}

// NodeCount returns the number of records the compiler wrote.
func (t *CompiledTrie) NodeCount() uint32 {
	return t.hdr.NodeCount
}

// RootSiblings returns the byte offset of the root's first child group and
// whether the dictionary holds any words at all.
func (t *CompiledTrie) RootSiblings() (uint32, bool) {
	if t.hdr.RootOffset == NoChild {
		return 0, false
	}
	return t.hdr.RootOffset, true
}

// DecodeAt decodes the single record at byte offset off.
func (t *CompiledTrie) DecodeAt(off uint32) (Node, error) {
	return decodeNode(t.data, off+headerSize)
}

// Bytes returns the raw bytes this trie was loaded from, header included.
func (t *CompiledTrie) Bytes() []byte {
	return t.data
}
