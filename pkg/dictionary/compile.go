package dictionary

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/pkg/search"
	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// CompileReport summarizes one compile run, printed by the compiler's
// -stats flag.
type CompileReport struct {
	SourceStats
	NodeCount  uint32
	OutputSize int
}

// Compile reads a plaintext source from src, builds the compiled trie with
// the given range-node thresholds, and returns the ready-to-write bytes
// alongside a report of the run.
func Compile(src io.Reader, minRangeRun int, minRangeDensity float64) ([]byte, CompileReport, error) {
	return CompileWithRemovals(src, minRangeRun, minRangeDensity, nil)
}

// CompileWithRemovals is Compile but additionally deletes every word in
// removals from the build-time trie before flattening it, letting the
// compiler -remove flag diff a word list against a source file without
// having to edit the source itself. Grounded on PatriciaNode::delete in
// the reference compiler, which exists but is never wired into main.rs.
func CompileWithRemovals(src io.Reader, minRangeRun int, minRangeDensity float64, removals []string) ([]byte, CompileReport, error) {
	root, stats, err := LoadSource(src)
	if err != nil {
		return nil, CompileReport{SourceStats: stats}, err
	}

	for _, word := range removals {
		if root.Delete(word) {
			stats.Accepted--
		} else {
			log.Warnf("-remove: %q was not present in the source, nothing to remove", word)
		}
	}

	b := trie.BuildFromPatriciaWithThresholds(root, minRangeRun, minRangeDensity)
	out := b.Bytes()

	report := CompileReport{
		SourceStats: stats,
		NodeCount:   b.NodeCount(),
		OutputSize:  len(out),
	}
	log.Infof("compiled %d words (%d skipped) into %d nodes, %d bytes", stats.Accepted, stats.Skipped, report.NodeCount, report.OutputSize)
	return out, report, nil
}

// CompileFile is the file-to-file convenience wrapper used by cmd/vgcompile.
func CompileFile(sourcePath, outputPath string, minRangeRun int, minRangeDensity float64, removals []string) (CompileReport, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return CompileReport{}, fmt.Errorf("dictionary: opening source %s: %w", sourcePath, err)
	}
	defer src.Close()

	out, report, err := CompileWithRemovals(src, minRangeRun, minRangeDensity, removals)
	if err != nil {
		return report, err
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return report, fmt.Errorf("dictionary: writing %s: %w", outputPath, err)
	}
	return report, nil
}

// Verify re-parses sourcePath and checks that every accepted word is
// present in the compiled file at dictPath with the same frequency. It is
// the compiler's -verify pass, a supplemental round-trip check with no
// equivalent in the reference implementation (which never implemented
// search_approx, let alone a verification pass). Since the source may
// repeat a word with different frequencies, only the last occurrence (the
// one that actually wins the Patricia insert) is checked.
func Verify(sourcePath, dictPath string) (mismatches int, err error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("dictionary: opening source %s: %w", sourcePath, err)
	}
	defer src.Close()

	want := make(map[string]uint32)
	if _, err := WalkSource(src, func(word string, freq uint32) {
		want[word] = freq
	}); err != nil {
		return 0, err
	}

	raw, err := os.ReadFile(dictPath)
	if err != nil {
		return 0, fmt.Errorf("dictionary: reading %s: %w", dictPath, err)
	}
	compiled, err := trie.Load(raw)
	if err != nil {
		return 0, fmt.Errorf("dictionary: loading %s: %w", dictPath, err)
	}

	for word, wantFreq := range want {
		gotFreq, ok, err := search.Exact(compiled, word)
		if err != nil {
			return mismatches, fmt.Errorf("dictionary: verifying %q: %w", word, err)
		}
		if !ok {
			log.Warnf("verify: %q missing from compiled dictionary", word)
			mismatches++
			continue
		}
		if gotFreq != wantFreq {
			log.Warnf("verify: %q frequency mismatch: source has %d, compiled has %d", word, wantFreq, gotFreq)
			mismatches++
		}
	}
	return mismatches, nil
}
