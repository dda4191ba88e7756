package dictionary

import (
	"errors"
	"fmt"
	"os"

	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// ErrMmapUnsupported is returned by the platform-specific openMmap when
// the current platform has no mmap support wired in.
var ErrMmapUnsupported = errors.New("dictionary: mmap not supported on this platform")

func errIsUnsupported(err error) bool {
	return errors.Is(err, ErrMmapUnsupported)
}

// Dictionary is a loaded compiled dictionary, ready for search.Exact and
// search.Approx. Close releases any backing mmap; it is a no-op if the
// dictionary was loaded with a plain read.
type Dictionary struct {
	Trie  *trie.CompiledTrie
	close func() error
}

// Close releases the dictionary's backing storage.
func (d *Dictionary) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// Open loads the compiled dictionary at path. When useMmap is true it
// memory-maps the file (platform support provided by mmap_unix.go /
// mmap_other.go); otherwise, or if the platform has no mmap support, it
// falls back to a plain read, mirroring read_file's mmap-for-speed
// strategy from the reference implementation while keeping Go's usual
// graceful degradation instead of a hard failure on unsupported
// platforms.
func Open(path string, useMmap bool) (*Dictionary, error) {
	if useMmap {
		d, err := openMmap(path)
		if err == nil {
			return d, nil
		}
		if !errIsUnsupported(err) {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading %s: %w", path, err)
	}
	t, err := trie.Load(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary: loading %s: %w", path, err)
	}
	return &Dictionary{Trie: t}, nil
}
