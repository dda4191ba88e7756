package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/pkg/trie"
)

// FileFormat identifies the kind of file a dictionary path points to.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatCompiled           // compiled binary dictionary (VGS1 magic)
	FormatSource             // plaintext "<word> <frequency>" source
)

// String implements fmt.Stringer for log messages.
func (f FileFormat) String() string {
	switch f {
	case FormatCompiled:
		return "compiled dictionary"
	case FormatSource:
		return "plaintext source"
	default:
		return "unknown"
	}
}

// DetectFileFormat inspects path's extension and, for .bin files, its
// header magic to decide which format it holds.
func DetectFileFormat(path string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".bin":
		if err := validateCompiled(path); err != nil {
			return FormatUnknown, err
		}
		return FormatCompiled, nil
	case ".txt", ".tsv", ".dict":
		if err := validateSource(path); err != nil {
			return FormatUnknown, err
		}
		return FormatSource, nil
	default:
		return FormatUnknown, fmt.Errorf("dictionary: unrecognized extension %q for %s", ext, path)
	}
}

func validateCompiled(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil || n < len(header) {
		return fmt.Errorf("dictionary: %s too small to hold a header", path)
	}
	if [4]byte(header[0:4]) != trie.Magic {
		return fmt.Errorf("dictionary: %s does not start with the expected magic", path)
	}

	log.Debugf("compiled dictionary %s validated", path)
	return nil
}

func validateSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dictionary: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("dictionary: source %s is empty", path)
	}
	log.Debugf("source file %s validated", path)
	return nil
}
