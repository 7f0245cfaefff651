//go:build !windows

package ddi

import (
	"runtime"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// Library is a driver module opened with dlopen.
type Library struct {
	Path   string
	handle uintptr
}

// LibraryName follows the loader naming: lib<name>.so.<version>, lib<name>.dylib on darwin.
func LibraryName(name, version string) string {
	if runtime.GOOS == "darwin" {
		return "lib" + name + ".dylib"
	}
	if version == "" {
		return "lib" + name + ".so"
	}
	return "lib" + name + ".so." + version
}

// OpenLibrary loads a shared object with RTLD_LAZY|RTLD_LOCAL.
func OpenLibrary(path string) (*Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return nil, errors.WithMessagef(err, "open driver %s", path)
	}
	return &Library{Path: path, handle: h}, nil
}

func (l *Library) Resolve(name string) Sym {
	if l.handle == 0 {
		return 0
	}
	s, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0
	}
	return Sym(s)
}

func (l *Library) GetTable(getter Sym, version Version, table []Sym) Result {
	return cGetTable(getter, version, table)
}

func (l *Library) Call(fn Sym, args ...uintptr) uintptr {
	return ccall(fn, args...)
}

func (l *Library) Close() error {
	if l.handle == 0 {
		return ErrClosed
	}
	h := l.handle
	l.handle = 0
	return purego.Dlclose(h)
}
