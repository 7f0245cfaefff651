package ddi

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Sym is a simple alias of uintptr: the address of an entry point, 0 when missing.
type Sym uintptr

// Missing reports whether the symbol is the explicit missing sentinel.
func (s Sym) Missing() bool { return s == 0 }

// As casts the entry address of a Go function to the desired func type.
//
// Only use it on symbols whose code follows the Go calling convention (goloader objects,
// in-process drivers), never on a C entry point.
func As[T any](pc Sym) T {
	fv := new(uintptr)
	*fv = uintptr(pc)
	return *(*T)(unsafe.Pointer(&fv))
}

// MustResolve resolve a symbol or panic with ErrMissingSymbol.
func MustResolve(r Resolver, name string) Sym {
	s := r.Resolve(name)
	if s == 0 {
		panic(errors.WithMessage(ErrMissingSymbol, name))
	}
	return s
}

var (
	// ErrMissingSymbol occurs when can't found a symbol.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrUnsupported occurs when neither the bulk getter nor any entry of a group can be resolved.
	ErrUnsupported = errors.New("group unsupported by driver")
	// ErrIncomplete occurs when a mandatory group still has null slots after population.
	ErrIncomplete = errors.New("group incomplete")
	// ErrBuildFailed is matched by every error returned from Builder.Build.
	ErrBuildFailed = errors.New("dispatch tree build failed")
	// ErrAlreadyExists occurs when registering a static symbol twice.
	ErrAlreadyExists = errors.New("symbol already registered")
	// ErrUninitialized occurs when calling through a Context that is not ready.
	ErrUninitialized = errors.New("context not initialized")
	// ErrClosed occurs when using a resolver after Close.
	ErrClosed = errors.New("resolver closed")
)
