package dictionary

import (
	"strings"
	"testing"

	"github.com/dvaumoron/vaguesearch/pkg/search"
	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

const sampleSource = `cat 10
cats 3
# not a real comment, will be rejected as malformed
dog 7
bad-line-no-freq
cot notanumber
zero 0
café 4
`

func TestLoadSourceSkipsMalformedLines(t *testing.T) {
	root, stats, err := LoadSource(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("LoadSource error: %v", err)
	}
	if stats.Accepted != 4 {
		t.Errorf("Accepted = %d, want 4 (cat, cats, dog, café)", stats.Accepted)
	}
	if stats.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4 (comment line, bad-line-no-freq, cot, zero)", stats.Skipped)
	}
	if freq, ok := root.Lookup("cat"); !ok || freq != 10 {
		t.Errorf("Lookup(cat) = (%d, %v), want (10, true)", freq, ok)
	}
	if _, ok := root.Lookup("zero"); ok {
		t.Errorf("Lookup(zero) should not be present (frequency 0 is rejected)")
	}
}

func TestLoadSourceEmptyIsError(t *testing.T) {
	if _, _, err := LoadSource(strings.NewReader("\n\n")); err != ErrNoWords {
		t.Errorf("LoadSource(empty) error = %v, want ErrNoWords", err)
	}
}

func TestCompileRoundTrip(t *testing.T) {
	out, report, err := Compile(strings.NewReader(sampleSource), 3, 0.5)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if report.Accepted != 4 {
		t.Errorf("report.Accepted = %d, want 4", report.Accepted)
	}
	if report.NodeCount == 0 {
		t.Errorf("report.NodeCount = 0, want > 0")
	}

	ct, err := trie.Load(out)
	if err != nil {
		t.Fatalf("trie.Load error: %v", err)
	}
	for word, want := range map[string]uint32{"cat": 10, "cats": 3, "dog": 7, "café": 4} {
		got, ok, err := search.Exact(ct, word)
		if err != nil || !ok || got != want {
			t.Errorf("Exact(%q) = (%d, %v, %v), want (%d, true, nil)", word, got, ok, err, want)
		}
	}
}
