package ddi

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Library is a driver module opened with LoadLibrary.
type Library struct {
	Path   string
	handle windows.Handle
}

// LibraryName follows the loader naming: <name>.dll, the version is not part of it.
func LibraryName(name, _ string) string {
	return name + ".dll"
}

func OpenLibrary(path string) (*Library, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open driver %s", path)
	}
	return &Library{Path: path, handle: h}, nil
}

func (l *Library) Resolve(name string) Sym {
	if l.handle == 0 {
		return 0
	}
	p, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0
	}
	return Sym(p)
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
	return windows.FreeLibrary(h)
}
