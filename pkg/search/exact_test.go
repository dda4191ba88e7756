package search

import (
	"testing"

	"github.com/dvaumoron/vaguesearch/pkg/patricia"
	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

func buildTestTrie(t *testing.T, words map[string]uint32) *trie.CompiledTrie {
	t.Helper()
	root := patricia.New()
	for w, f := range words {
		root.Insert(w, f)
	}
	b := trie.BuildFromPatricia(root)
	ct, err := trie.Load(b.Bytes())
	if err != nil {
		t.Fatalf("trie.Load failed: %v", err)
	}
	return ct
}

func TestExactMixedSearch(t *testing.T) {
	words := map[string]uint32{
		"cata":  1,
		"catad": 2,
		"cataf": 1,
		"da":    9,
		"dr":    6,
		"dt":    1,
		"dw":    7,
		"f":     5,
		"fade":  10,
		"ala":   20,
		"b":     1,
	}
	ct := buildTestTrie(t, words)

	for word, want := range words {
		got, ok, err := Exact(ct, word)
		if err != nil {
			t.Fatalf("Exact(%q) error: %v", word, err)
		}
		if !ok {
			t.Fatalf("Exact(%q) not found, want freq %d", word, want)
		}
		if got != want {
			t.Errorf("Exact(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestExactMissingWords(t *testing.T) {
	ct := buildTestTrie(t, map[string]uint32{
		"cata":  1,
		"catad": 2,
	})

	for _, word := range []string{"cat", "catады", "catadx", "", "z"} {
		if _, ok, err := Exact(ct, word); ok || err != nil {
			t.Errorf("Exact(%q) expected not found, got ok=%v err=%v", word, ok, err)
		}
	}
}

func TestExactUnicode(t *testing.T) {
	ct := buildTestTrie(t, map[string]uint32{
		"café": 3,
		"cafe": 4,
		"🍕":    7,
	})

	if got, ok, err := Exact(ct, "café"); err != nil || !ok || got != 3 {
		t.Errorf("Exact(café) = (%d, %v, %v), want (3, true, nil)", got, ok, err)
	}
	if got, ok, err := Exact(ct, "cafe"); err != nil || !ok || got != 4 {
		t.Errorf("Exact(cafe) = (%d, %v, %v), want (4, true, nil)", got, ok, err)
	}
	if got, ok, err := Exact(ct, "🍕"); err != nil || !ok || got != 7 {
		t.Errorf("Exact(pizza emoji) = (%d, %v, %v), want (7, true, nil)", got, ok, err)
	}
}

func TestExactEmptyDictionary(t *testing.T) {
	ct := buildTestTrie(t, map[string]uint32{})
	if _, ok, err := Exact(ct, "anything"); ok || err != nil {
		t.Errorf("Exact on empty dictionary: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}
