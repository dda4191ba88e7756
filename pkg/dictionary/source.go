package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/pkg/patricia"
)

// ErrNoWords is returned by LoadSource when a source produced zero usable
// entries (every line was malformed, or the source was empty).
var ErrNoWords = fmt.Errorf("dictionary: source produced no usable words")

// SourceStats summarizes a plaintext source parse: how many lines were
// accepted and how many were skipped as malformed.
type SourceStats struct {
	Accepted int
	Skipped  int
}

// LoadSource reads "<word> <frequency>" lines from r and inserts each into
// a fresh Patricia trie. A malformed line (missing frequency field,
// non-numeric or zero frequency, blank word) is logged and skipped rather
// than aborting the whole compile, mirroring create_from_file's
// per-line error context while trading the original's abort-on-parse-
// failure for a skip-and-continue policy better suited to large, organic
// word lists that always contain a few bad lines.
func LoadSource(r io.Reader) (*patricia.Node, SourceStats, error) {
	root := patricia.New()
	stats, err := WalkSource(r, func(word string, freq uint32) {
		root.Insert(word, freq)
	})
	if err != nil {
		return nil, stats, err
	}
	if stats.Accepted == 0 {
		return nil, stats, ErrNoWords
	}
	return root, stats, nil
}

// WalkSource reads "<word> <frequency>" lines from r, invoking fn for
// every accepted entry (in file order, duplicates included) without
// building any trie. It is the shared line-parsing core behind LoadSource
// and the compiler's -verify pass, which needs the accepted (word, freq)
// pairs without paying for an intermediate Patricia trie it would
// immediately discard.
func WalkSource(r io.Reader, fn func(word string, freq uint32)) (SourceStats, error) {
	var stats SourceStats

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, freq, ok := parseSourceLine(line, lineNum)
		if !ok {
			stats.Skipped++
			continue
		}

		fn(word, freq)
		stats.Accepted++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("dictionary: reading source: %w", err)
	}
	return stats, nil
}

// parseSourceLine splits one "<word> <frequency>" line, reporting the
// reason for rejection via a log warning (the compiler's InputMalformed
// diagnostic) rather than an error value, since the caller continues
// regardless of the reason.
func parseSourceLine(line string, lineNum int) (word string, freq uint32, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		log.Warnf("line %d: malformed entry %q, want \"<word> <frequency>\"", lineNum, line)
		return "", 0, false
	}

	word = fields[0]
	if word == "" {
		log.Warnf("line %d: empty word", lineNum)
		return "", 0, false
	}

	n, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		log.Warnf("line %d: invalid frequency %q for word %q: %v", lineNum, fields[1], word, err)
		return "", 0, false
	}
	if n == 0 {
		log.Warnf("line %d: frequency 0 for word %q is not a valid word entry", lineNum, word)
		return "", 0, false
	}

	return word, uint32(n), true
}
