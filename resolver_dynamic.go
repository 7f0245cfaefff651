//go:build !ddi_static

package ddi

// StaticBuild reports whether the binary was built with the ddi_static tag.
const StaticBuild = false

// NewResolver opens the driver library at path.
func NewResolver(path string) (Resolver, error) {
	l, err := OpenLibrary(path)
	if err != nil {
		return nil, err
	}
	return l, nil
}
