package ddi

import (
	"maps"
	"sync"

	"github.com/ZenLiuCN/fn"
	"github.com/pkg/errors"
)

// Static resolves driver symbols linked into the executable.
//
// Drivers linked statically register their entry points from an init function, through
// cgo exports or purego callbacks; every registered symbol follows the C calling convention.
type Static struct {
	mu      sync.RWMutex
	symbols map[string]Sym
}

var global = NewStatic()

// NewStatic creates an empty registry.
func NewStatic() *Static {
	return &Static{symbols: make(map[string]Sym)}
}

// GlobalStatic is the registry filled by RegisterSymbol.
func GlobalStatic() *Static {
	return global
}

// RegisterSymbol into the global registry.
func RegisterSymbol(name string, sym Sym) error {
	return global.Register(name, sym)
}

// RegisterSymbols into the global registry, nothing is registered on conflict.
func RegisterSymbols(syms map[string]Sym) error {
	return global.RegisterAll(syms)
}

func (s *Static) Register(name string, sym Sym) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.symbols[name]; ok {
		return errors.WithMessage(ErrAlreadyExists, name)
	}
	s.symbols[name] = sym
	return nil
}

func (s *Static) RegisterAll(syms map[string]Sym) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range syms {
		if _, ok := s.symbols[name]; ok {
			return errors.WithMessage(ErrAlreadyExists, name)
		}
	}
	maps.Copy(s.symbols, syms)
	return nil
}

// Symbols dump registered symbol names.
func (s *Static) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn.MapKeys(s.symbols)
}

func (s *Static) Resolve(name string) Sym {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols[name]
}

func (s *Static) GetTable(getter Sym, version Version, table []Sym) Result {
	return cGetTable(getter, version, table)
}

func (s *Static) Call(sym Sym, args ...uintptr) uintptr {
	return ccall(sym, args...)
}

// Close is a no-op: linked code is never unloaded.
func (s *Static) Close() error {
	return nil
}
