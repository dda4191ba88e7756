// Package queryengine implements the line-oriented query protocol served
// on standard input: "approx <distance> <word>" lines in, one JSON array
// of matches out per line.
package queryengine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/pkg/search"
	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// ErrMalformedQuery reports a query line that could not be parsed. The
// cause is always one of a fixed set of short reasons, mirroring
// parse_command_line's CommandParse context.
type ErrMalformedQuery struct {
	Line  string
	Cause string
}

func (e *ErrMalformedQuery) Error() string {
	return fmt.Sprintf("malformed query %q: %s", e.Line, e.Cause)
}

// ParseQuery splits one query line into its word and requested distance.
// The only recognized action is "approx"; anything else, or a missing
// field, is reported as ErrMalformedQuery.
func ParseQuery(line string) (word string, maxDist int, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, &ErrMalformedQuery{Line: line, Cause: "no action found"}
	}
	if fields[0] != "approx" {
		return "", 0, &ErrMalformedQuery{Line: line, Cause: "action not recognized"}
	}
	if len(fields) < 2 {
		return "", 0, &ErrMalformedQuery{Line: line, Cause: "no distance found"}
	}
	dist, convErr := strconv.Atoi(fields[1])
	if convErr != nil || dist < 0 {
		return "", 0, &ErrMalformedQuery{Line: line, Cause: "could not parse the distance into a non-negative integer"}
	}
	if len(fields) < 3 {
		return "", 0, &ErrMalformedQuery{Line: line, Cause: "no word found"}
	}
	return fields[2], dist, nil
}

// appendResult appends one {"word":"...","freq":N,"distance":N} object to
// buf, escaping the word as a JSON string with json.Marshal. The original
// avoids format!() for raw throughput; this keeps that shape with
// strconv.Itoa instead of fmt.Sprintf for the same reason.
func appendResult(buf *strings.Builder, word string, freq uint32, dist int) {
	buf.WriteByte('{')
	buf.WriteString(`"word":`)
	quoted, _ := json.Marshal(word)
	buf.Write(quoted)
	buf.WriteString(`,"freq":`)
	buf.WriteString(strconv.FormatUint(uint64(freq), 10))
	buf.WriteString(`,"distance":`)
	buf.WriteString(strconv.Itoa(dist))
	buf.WriteByte('}')
}

// RunQuery executes one already-parsed query against t and returns its
// JSON array representation. A distance of 0 uses the exact-match path
// (a sorted sibling scan per character); anything greater runs the full approximate DFS, sorted by
// search.Less before rendering so output order is deterministic.
func RunQuery(t *trie.CompiledTrie, word string, maxDist int) (string, error) {
	var buf strings.Builder
	buf.WriteByte('[')

	if maxDist == 0 {
		freq, ok, err := search.Exact(t, word)
		if err != nil {
			return "", err
		}
		if ok {
			appendResult(&buf, word, freq, 0)
		}
		buf.WriteByte(']')
		return buf.String(), nil
	}

	var found []search.Found
	if err := search.Approx(t, word, maxDist, func(f search.Found) {
		found = append(found, f)
	}); err != nil {
		return "", err
	}
	sort.Slice(found, func(i, j int) bool { return search.Less(found[i], found[j]) })

	for i, f := range found {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendResult(&buf, f.Word, f.Freq, f.Dist)
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// RunStdin reads query lines from r until EOF, writing one JSON result
// line per query to w. A malformed query is reported on the process's
// diagnostic log and the loop continues rather than aborting, matching
// process_stdin_queries's eprintln-and-continue behavior for CommandParse
// errors.
func RunStdin(t *trie.CompiledTrie, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	writer := bufio.NewWriter(w)
	defer writer.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, maxDist, err := ParseQuery(line)
		if err != nil {
			log.Warnf("> %v", err)
			continue
		}

		result, err := RunQuery(t, word, maxDist)
		if err != nil {
			return fmt.Errorf("queryengine: %w", err)
		}
		if _, err := fmt.Fprintln(writer, result); err != nil {
			return fmt.Errorf("queryengine: writing result: %w", err)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("queryengine: flushing output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("queryengine: reading stdin: %w", err)
	}
	return nil
}
