package ddi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule exports named addresses and Go bulk getters.
type fakeModule struct {
	syms    map[string]Sym
	getters map[Sym]GoGetter
}

func newFakeModule() *fakeModule {
	return &fakeModule{syms: map[string]Sym{}, getters: map[Sym]GoGetter{}}
}

func (f *fakeModule) export(name string, s Sym) { f.syms[name] = s }

func (f *fakeModule) exportGetter(g *Group, getter GoGetter) {
	s := Sym(0x1000 + len(f.getters))
	f.syms[g.Getter()] = s
	f.getters[s] = getter
}

// exportGroup exports every entry of g at base+index, with a getter writing the same values.
func (f *fakeModule) exportGroup(g *Group, base Sym) {
	for i, name := range g.Symbols() {
		f.export(name, base+Sym(i))
	}
	f.exportGetter(g, func(_ Version, table []Sym) Result {
		for i := range table {
			table[i] = base + Sym(i)
		}
		return Success
	})
}

func (f *fakeModule) Resolve(name string) Sym { return f.syms[name] }
func (f *fakeModule) GetTable(getter Sym, v Version, table []Sym) Result {
	return f.getters[getter](v, table)
}
func (f *fakeModule) Call(Sym, ...uintptr) uintptr { return uintptr(Success) }
func (f *fakeModule) Close() error                 { return nil }

func TestPopulate(t *testing.T) {
	kernel := ZE.Group("Kernel")
	t.Run("per symbol overwrites bulk", func(t *testing.T) {
		m := newFakeModule()
		m.exportGetter(kernel, func(_ Version, table []Sym) Result {
			for i := range table {
				table[i] = 0xA000
			}
			return Success
		})
		m.export("zeKernelGetName", 0xB000)
		tb, err := Populate(m, kernel, CurrentVersion)
		require.NoError(t, err)
		assert.Equal(t, Sym(0xB000), tb.Slot("GetName"))
		assert.Equal(t, Sym(0xA000), tb.Slot("Create"))
		assert.Empty(t, tb.Missing())
	})
	t.Run("missing symbol keeps bulk value", func(t *testing.T) {
		m := newFakeModule()
		m.exportGroup(kernel, 0x2000)
		delete(m.syms, "zeKernelDestroy")
		tb, err := Populate(m, kernel, CurrentVersion)
		require.NoError(t, err)
		assert.Equal(t, Sym(0x2001), tb.Slot("Destroy"))
	})
	t.Run("symbols without getter", func(t *testing.T) {
		m := newFakeModule()
		m.exportGroup(kernel, 0x3000)
		delete(m.syms, kernel.Getter())
		tb, err := Populate(m, kernel, CurrentVersion)
		require.NoError(t, err)
		assert.Equal(t, len(kernel.Entries), tb.Resolved())
	})
	t.Run("partial without getter", func(t *testing.T) {
		m := newFakeModule()
		m.export("zeKernelCreate", 0x4000)
		tb, err := Populate(m, kernel, CurrentVersion)
		require.NoError(t, err)
		assert.Equal(t, 1, tb.Resolved())
		assert.Len(t, tb.Missing(), len(kernel.Entries)-1)
		assert.NotContains(t, tb.Missing(), "Create")
	})
	t.Run("nothing exported is unsupported", func(t *testing.T) {
		tb, err := Populate(newFakeModule(), kernel, CurrentVersion)
		assert.ErrorIs(t, err, ErrUnsupported)
		assert.True(t, tb.Empty())
	})
	t.Run("getter failure", func(t *testing.T) {
		m := newFakeModule()
		m.exportGroup(kernel, 0x5000)
		m.exportGetter(kernel, func(Version, []Sym) Result { return ErrorUnsupportedVersion })
		_, err := Populate(m, kernel, CurrentVersion)
		var re *ResultError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, ErrorUnsupportedVersion, re.Code)
		assert.Equal(t, "zeGetKernelProcAddrTable", re.Call)
		assert.ErrorIs(t, err, ErrorUnsupportedVersion)
	})
	t.Run("version passed through", func(t *testing.T) {
		m := newFakeModule()
		var seen Version
		m.exportGetter(kernel, func(v Version, table []Sym) Result {
			seen = v
			table[0] = 1
			return Success
		})
		_, err := Populate(m, kernel, MakeVersion(1, 3))
		require.NoError(t, err)
		assert.Equal(t, MakeVersion(1, 3), seen)
	})
}

func TestBuildInternal(t *testing.T) {
	full := func() *fakeModule {
		m := newFakeModule()
		base := Sym(0x10000)
		for _, a := range APIs() {
			for _, g := range a.Groups {
				if !g.Optional {
					m.exportGroup(g, base)
				}
				base += 0x100
			}
		}
		return m
	}
	t.Run("mandatory surface only", func(t *testing.T) {
		root, err := (&Builder{Resolver: full()}).Build()
		require.NoError(t, err)
		for _, tb := range root.Tables() {
			if tb.Group.Optional {
				assert.True(t, tb.Empty(), tb.Group.String())
			} else {
				assert.Empty(t, tb.Missing(), tb.Group.String())
			}
		}
	})
	t.Run("optional getter failure leaves table null", func(t *testing.T) {
		m := full()
		g := ZE.Group("ImageExp")
		m.exportGetter(g, func(_ Version, table []Sym) Result {
			table[0] = 0xdead
			return ErrorUnsupportedFeature
		})
		root, err := (&Builder{Resolver: m}).Build()
		require.NoError(t, err)
		assert.True(t, root.TableOf(g).Empty())
	})
	t.Run("lenient keeps partial mandatory group", func(t *testing.T) {
		m := full()
		g := ZE.Group("Fence")
		m.getters[m.syms[g.Getter()]] = func(_ Version, table []Sym) Result {
			table[0] = 0x7000
			return Success
		}
		for _, s := range g.Symbols() {
			delete(m.syms, s)
		}
		_, err := (&Builder{Resolver: m}).Build()
		var be *BuildError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, "Fence", be.Group)
		assert.ErrorIs(t, err, ErrIncomplete)

		root, err := (&Builder{Resolver: m, Lenient: true}).Build()
		require.NoError(t, err)
		assert.Equal(t, Sym(0x7000), root.Lookup("ze", "Fence", "Create"))
		assert.Equal(t, Sym(0), root.Lookup("ze", "Fence", "Reset"))
	})
}
