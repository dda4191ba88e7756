package search

import (
	"sort"
	"testing"
)

func collect(t *testing.T, words map[string]uint32, query string, maxDist int) []Found {
	t.Helper()
	ct := buildTestTrie(t, words)
	var got []Found
	if err := Approx(ct, query, maxDist, func(f Found) { got = append(got, f) }); err != nil {
		t.Fatalf("Approx(%q, %d) error: %v", query, maxDist, err)
	}
	sort.Slice(got, func(i, j int) bool { return Less(got[i], got[j]) })
	return got
}

func TestApproxExactMatchHasDistanceZero(t *testing.T) {
	words := map[string]uint32{"cata": 1, "cat": 2}
	got := collect(t, words, "cata", 0)
	if len(got) != 1 || got[0].Word != "cata" || got[0].Dist != 0 {
		t.Fatalf("got %+v, want exactly [{cata 1 0}]", got)
	}
}

func TestApproxSubstitutionInsertionDeletion(t *testing.T) {
	words := map[string]uint32{
		"cat":  5,
		"cats": 3,
		"cot":  1,
		"at":   2,
		"dog":  9,
	}
	got := collect(t, words, "cat", 1)

	byWord := map[string]Found{}
	for _, f := range got {
		byWord[f.Word] = f
	}

	if f, ok := byWord["cat"]; !ok || f.Dist != 0 {
		t.Errorf("cat: got %+v, want dist 0", f)
	}
	if f, ok := byWord["cats"]; !ok || f.Dist != 1 {
		t.Errorf("cats: got %+v, want dist 1 (insertion)", f)
	}
	if f, ok := byWord["cot"]; !ok || f.Dist != 1 {
		t.Errorf("cot: got %+v, want dist 1 (substitution)", f)
	}
	if f, ok := byWord["at"]; !ok || f.Dist != 1 {
		t.Errorf("at: got %+v, want dist 1 (deletion)", f)
	}
	if _, ok := byWord["dog"]; ok {
		t.Errorf("dog should be pruned at maxDist 1")
	}
}

func TestApproxAdjacentTransposedCharsCostTwo(t *testing.T) {
	words := map[string]uint32{"ab": 1, "ba": 2}
	got := collect(t, words, "ab", 1)
	if len(got) != 1 || got[0].Word != "ab" {
		t.Fatalf("got %+v, want only the exact match at maxDist 1 (ba is distance 2, no special transposition rule)", got)
	}

	got2 := collect(t, words, "ab", 2)
	found := map[string]int{}
	for _, f := range got2 {
		found[f.Word] = f.Dist
	}
	if d, ok := found["ba"]; !ok || d != 2 {
		t.Errorf("ba: got dist %d present=%v, want dist 2 at maxDist 2", d, ok)
	}
}

func TestApproxOrderingFreqThenDistThenWord(t *testing.T) {
	words := map[string]uint32{
		"cat": 10,
		"bat": 20,
		"cap": 10,
	}
	got := collect(t, words, "cat", 1)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3: %+v", len(got), got)
	}
	// bat (freq 20, dist 1) first, then cap/cat (freq 10) ordered by
	// distance then lexicographically: cat (dist 0) before cap (dist 1).
	wantOrder := []string{"bat", "cat", "cap"}
	for i, w := range wantOrder {
		if got[i].Word != w {
			t.Errorf("position %d: got %q, want %q (full: %+v)", i, got[i].Word, w, got)
		}
	}
}

func TestApproxRangeNodeAbsentSlots(t *testing.T) {
	// Siblings under the same parent forming a dense run {a,c,d,f}, eligible
	// for range-node consolidation with b and e absent.
	words := map[string]uint32{
		"xa": 1,
		"xc": 2,
		"xd": 3,
		"xf": 4,
	}
	for _, probe := range []string{"xa", "xc", "xd", "xf"} {
		got := collect(t, words, probe, 0)
		if len(got) != 1 || got[0].Word != probe {
			t.Errorf("probe %q: got %+v, want exact self-match only", probe, got)
		}
	}

	// "xb" and "xe" are themselves absent range slots; querying for them
	// at distance 0 must find nothing, and at distance 1 must find every
	// real word (each is one substitution away), proving the absent slots
	// neither spuriously match nor block traversal into the present ones.
	if got := collect(t, words, "xb", 0); len(got) != 0 {
		t.Errorf("xb@0: got %+v, want no results", got)
	}
	gotB := collect(t, words, "xb", 1)
	byWord := map[string]bool{}
	for _, f := range gotB {
		byWord[f.Word] = true
	}
	for _, w := range []string{"xa", "xc", "xd", "xf"} {
		if !byWord[w] {
			t.Errorf("xb@1: got %+v, want %s (a single substitution away)", gotB, w)
		}
	}
}

func TestApproxUnicodeScalarDistance(t *testing.T) {
	words := map[string]uint32{"café": 1, "cafe": 2}
	got := collect(t, words, "cafe", 1)
	byWord := map[string]int{}
	for _, f := range got {
		byWord[f.Word] = f.Dist
	}
	if d, ok := byWord["café"]; !ok || d != 1 {
		t.Errorf("café: got dist %d present=%v, want 1 (one scalar substitution, not byte distance)", d, ok)
	}
	if d, ok := byWord["cafe"]; !ok || d != 0 {
		t.Errorf("cafe: got dist %d present=%v, want 0", d, ok)
	}
}

func TestApproxEmptyQuery(t *testing.T) {
	words := map[string]uint32{"a": 1, "": 0, "ab": 2}
	got := collect(t, words, "", 1)
	byWord := map[string]int{}
	for _, f := range got {
		byWord[f.Word] = f.Dist
	}
	if d, ok := byWord["a"]; !ok || d != 1 {
		t.Errorf("a: got dist %d present=%v, want 1", d, ok)
	}
	if _, ok := byWord["ab"]; ok {
		t.Errorf("ab should be pruned: distance 2 from empty query at maxDist 1")
	}
}

func TestApproxNoMatchesOnEmptyDictionary(t *testing.T) {
	got := collect(t, map[string]uint32{}, "anything", 3)
	if len(got) != 0 {
		t.Fatalf("got %+v, want no results", got)
	}
}
