//go:build !unix

package dictionary

func openMmap(path string) (*Dictionary, error) {
	return nil, ErrMmapUnsupported
}
