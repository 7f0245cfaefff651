package object

import (
	"slices"
	"strings"

	"github.com/ZenLiuCN/ddi"
	"github.com/pkg/errors"
	"github.com/pkujhd/goloader"
	"github.com/pkujhd/goloader/obj"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// Inspect lists the symbols defined inside an object file.
func Inspect(file, pkg string) ([]string, error) {
	return goloader.Parse(file, defaultPkg(pkg))
}

// DriverSymbols lists which catalogued entry points and getters an object file defines,
// keyed by the C symbol name.
func DriverSymbols(file, pkg string) (map[string]string, error) {
	pkg = defaultPkg(pkg)
	syms, err := Inspect(file, pkg)
	if err != nil {
		return nil, err
	}
	defined := make(map[string]bool, len(syms))
	for _, s := range syms {
		defined[s] = true
	}
	out := make(map[string]string)
	for _, a := range ddi.APIs() {
		for _, g := range a.Groups {
			for _, s := range append(g.Symbols(), g.Getter()) {
				if q := qualify(pkg, s); defined[q] {
					out[s] = q
				}
			}
		}
	}
	return out, nil
}

// Import is a package an object file depends on.
type Import struct {
	Path string
	// Version of the module providing the package, empty for std and the main module.
	Version string
}

func (i Import) String() string {
	if i.Version == "" {
		return i.Path
	}
	return i.Path + "@" + i.Version
}

// Imports lists the packages an object file imports, sorted by path. The object file must
// be loaded against the same module versions, which Version reports for each dependency.
func Imports(file, pkg string) ([]Import, error) {
	p := &obj.Pkg{Syms: make(map[string]*obj.ObjSymbol), File: file, PkgPath: defaultPkg(pkg)}
	if err := p.Symbols(); err != nil {
		return nil, errors.WithMessagef(err, "read %s", file)
	}
	mods := modules(p.CUFiles)
	out := make([]Import, 0, len(p.ImportPkgs))
	for _, path := range p.ImportPkgs {
		out = append(out, Import{Path: path, Version: versionOf(mods, path)})
	}
	slices.SortFunc(out, func(a, b Import) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

// modules collects module path and version from compilation unit file names found in the
// module cache, e.g. $GOPATH/pkg/mod/github.com/!zen!liu!c!n/fn@v0.1.33/map.go.
func modules(files []string) map[string]string {
	mods := make(map[string]string)
	for _, f := range files {
		f = strings.TrimPrefix(f, "gofile..")
		if strings.HasPrefix(f, "$GOROOT") {
			continue
		}
		if _, rest, ok := strings.Cut(f, "/pkg/mod/"); ok {
			f = rest
		}
		path, rest, ok := strings.Cut(f, "@")
		if !ok {
			continue
		}
		ver, _, _ := strings.Cut(rest, "/")
		path, err := module.UnescapePath(path)
		if err != nil || !semver.IsValid(ver) {
			continue
		}
		mods[path] = ver
	}
	return mods
}

// versionOf picks the longest module path owning the package.
func versionOf(mods map[string]string, pkg string) (ver string) {
	best := 0
	for path, v := range mods {
		if len(path) > best && (pkg == path || strings.HasPrefix(pkg, path+"/")) {
			best, ver = len(path), v
		}
	}
	return
}
