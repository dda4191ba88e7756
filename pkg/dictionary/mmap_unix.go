//go:build unix

package dictionary

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// openMmap memory-maps path read-only and borrows it directly as the
// CompiledTrie's backing storage, avoiding a copy into the process heap.
// Grounded on DictionaryFile::read_file, which does the same with a raw
// libc::mmap/PROT_READ/MAP_SHARED call; unix.Mmap wraps the equivalent
// syscall.
func openMmap(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("dictionary: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("dictionary: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("dictionary: mmap %s: %w", path, err)
	}

	t, err := trie.Load(data)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("dictionary: loading %s: %w", path, err)
	}

	return &Dictionary{
		Trie: t,
		close: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
