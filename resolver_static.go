//go:build ddi_static

package ddi

const StaticBuild = true

// NewResolver returns the global static registry, path is ignored.
func NewResolver(string) (Resolver, error) {
	return GlobalStatic(), nil
}
