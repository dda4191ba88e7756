package trie

import (
	"testing"

	"github.com/dvaumoron/vaguesearch/pkg/patricia"
)

func TestLoadRejectsBadMagic(t *testing.T) {
	b := encodeHeader(Header{NodeCount: 0, RootOffset: NoChild})
	b[0] = 'X'
	if _, err := Load(b); err == nil {
		t.Fatal("Load: want error on bad magic, got nil")
	}
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	if _, err := Load(make([]byte, headerSize-1)); err == nil {
		t.Fatal("Load: want error on truncated header, got nil")
	}
}

func TestLoadEmptyTrie(t *testing.T) {
	root := patricia.New()
	b := BuildFromPatricia(root)
	ct, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := ct.RootSiblings(); ok {
		t.Error("RootSiblings: want no words for an empty trie")
	}
	if ct.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", ct.NodeCount())
	}
}

func TestBuildRoundTripNaiveAndPatricia(t *testing.T) {
	root := patricia.New()
	words := map[string]uint32{
		"cat":   1,
		"cats":  2,
		"catch": 3,
		"dog":   4,
	}
	for w, f := range words {
		root.Insert(w, f)
	}

	b := BuildFromPatricia(root)
	ct, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	off, ok := ct.RootSiblings()
	if !ok {
		t.Fatal("RootSiblings: want words present")
	}
	n, err := ct.DecodeAt(off)
	if err != nil {
		t.Fatalf("DecodeAt: %v", err)
	}
	// two root siblings: "cat..." (multi-char label, Patricia) and "dog" (also Patricia).
	if n.NbSiblings != 1 {
		t.Errorf("first root record NbSiblings = %d, want 1", n.NbSiblings)
	}
}

func TestBuildRangeConsolidation(t *testing.T) {
	root := patricia.New()
	// "xa".."xe": a dense run of 5 single-character siblings under "x",
	// clearing both DefaultMinRangeRun (3) and DefaultMinRangeDensity (0.5).
	for _, c := range []byte("abcde") {
		root.Insert("x"+string(c), uint32(c))
	}

	b := BuildFromPatriciaWithThresholds(root, DefaultMinRangeRun, DefaultMinRangeDensity)
	ct, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	off, ok := ct.RootSiblings()
	if !ok {
		t.Fatal("RootSiblings: want words present")
	}
	xNode, err := ct.DecodeAt(off)
	if err != nil {
		t.Fatalf("DecodeAt(root): %v", err)
	}
	if !xNode.HasChild {
		t.Fatal("\"x\" node: want children")
	}
	inner, err := ct.DecodeAt(xNode.FirstChild)
	if err != nil {
		t.Fatalf("DecodeAt(x's child): %v", err)
	}
	if inner.Kind != KindRange {
		t.Fatalf("x's child group kind = %v, want KindRange", inner.Kind)
	}
	if len(inner.Slots) != 5 {
		t.Fatalf("range slot count = %d, want 5", len(inner.Slots))
	}
	for i, s := range inner.Slots {
		if !s.Present {
			t.Errorf("slot %d: want present", i)
		}
	}
}

func TestBuildRangeSkippedBelowMinRun(t *testing.T) {
	root := patricia.New()
	for _, c := range []byte("ab") {
		root.Insert("x"+string(c), uint32(c))
	}

	b := BuildFromPatriciaWithThresholds(root, DefaultMinRangeRun, DefaultMinRangeDensity)
	ct, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	off, _ := ct.RootSiblings()
	xNode, err := ct.DecodeAt(off)
	if err != nil {
		t.Fatalf("DecodeAt(root): %v", err)
	}
	inner, err := ct.DecodeAt(xNode.FirstChild)
	if err != nil {
		t.Fatalf("DecodeAt(x's child): %v", err)
	}
	if inner.Kind == KindRange {
		t.Fatal("a 2-sibling run should stay Naive, not consolidate into a Range below DefaultMinRangeRun")
	}
}

func TestRangeWorthwhileThresholds(t *testing.T) {
	children := []*patricia.Node{}
	for _, c := range []byte("ab") {
		n := patricia.New()
		n.Label = string(c)
		children = append(children, n)
	}
	if rangeWorthwhile(children, 2, 0.5) == false {
		t.Error("rangeWorthwhile: 2-run with minRun=2, density 1.0 should clear a 0.5 threshold")
	}
	if rangeWorthwhile(children, 3, 0.5) {
		t.Error("rangeWorthwhile: 2-run should fail a minRun=3 threshold")
	}
}

func TestNodeCount(t *testing.T) {
	root := patricia.New()
	root.Insert("a", 1)
	root.Insert("b", 2)
	b := BuildFromPatricia(root)
	if b.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", b.NodeCount())
	}
}
