// Package nulldrv is an in-process driver exposing every catalogued entry point.
//
// Every entry returns Success unless overridden. Options remove groups, symbols or bulk
// getters, make getters fail and replace entries, which is how the dispatch tree builder
// is exercised without a GPU.
//
// Importing the package registers it as the "null" driver, selected by ZE_ENABLE_NULL_DRIVER=1.
package nulldrv

import (
	"math"
	"sync"
	"unsafe"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/config"
	"github.com/ZenLiuCN/fn"
)

// Name of the driver in the ddi registry.
const Name = "null"

func init() {
	ddi.RegisterDriver(Name, func(*config.Config) (ddi.Resolver, error) {
		return New(), nil
	})
}

const (
	deviceBase = uintptr(0x5e000000)
	deviceMask = uintptr(0x00ffffff)
	// DefaultContext is the handle returned by zerGetDefaultContext.
	DefaultContext = uintptr(0xc0000001)
)

// DeviceHandle of a device identifier.
func DeviceHandle(id uint32) uintptr {
	return deviceBase | uintptr(id)&deviceMask
}

type options struct {
	apis        []*ddi.API
	noOptional  bool
	skipGroups  map[string]bool
	skipGetters map[string]bool
	skipSymbols map[string]bool
	failGetters map[string]ddi.Result
	bulkValues  map[string]ddi.Sym
	procs       map[string]ddi.GoProc
}

// Option configures a Driver.
type Option func(*options)

// WithAPIs restricts the driver to some apis.
func WithAPIs(apis ...*ddi.API) Option {
	return func(o *options) { o.apis = apis }
}

// WithoutOptional drops every optional group.
func WithoutOptional() Option {
	return func(o *options) { o.noOptional = true }
}

// WithoutGroup drops the getter and every entry of a group, e.g. WithoutGroup("ze", "Kernel").
func WithoutGroup(api, group string) Option {
	return func(o *options) { o.skipGroups[api+"."+group] = true }
}

// WithoutGetter drops the bulk getter of a group, its entries stay exported.
func WithoutGetter(api, group string) Option {
	return func(o *options) { o.skipGetters[api+"."+group] = true }
}

// WithoutSymbol drops one entry: neither exported nor written by the getter.
func WithoutSymbol(name string) Option {
	return func(o *options) { o.skipSymbols[name] = true }
}

// WithFailingGetter makes a group's getter return res.
func WithFailingGetter(api, group string, res ddi.Result) Option {
	return func(o *options) { o.failGetters[api+"."+group] = res }
}

// WithBulkValue makes the getter write sym for one entry instead of its exported address.
func WithBulkValue(name string, sym ddi.Sym) Option {
	return func(o *options) { o.bulkValues[name] = sym }
}

// WithProc replaces the behaviour of one entry.
func WithProc(name string, p ddi.GoProc) Option {
	return func(o *options) { o.procs[name] = p }
}

// Driver implements ddi.Resolver. Addresses it hands out are unique cells it owns, calls
// are dispatched by address.
type Driver struct {
	mu      sync.RWMutex
	cells   []*uint64
	names   map[string]ddi.Sym
	syms    map[ddi.Sym]string
	getters map[ddi.Sym]*ddi.Group
	procs   map[ddi.Sym]ddi.GoProc
	opts    options
	lastErr []byte
	closed  bool
	calls   map[string]int
}

// New creates a null driver.
func New(opts ...Option) *Driver {
	o := options{
		apis:        ddi.APIs(),
		skipGroups:  map[string]bool{},
		skipGetters: map[string]bool{},
		skipSymbols: map[string]bool{},
		failGetters: map[string]ddi.Result{},
		bulkValues:  map[string]ddi.Sym{},
		procs:       map[string]ddi.GoProc{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	d := &Driver{
		names:   make(map[string]ddi.Sym),
		syms:    make(map[ddi.Sym]string),
		getters: make(map[ddi.Sym]*ddi.Group),
		procs:   make(map[ddi.Sym]ddi.GoProc),
		opts:    o,
		lastErr: []byte{0},
		calls:   make(map[string]int),
	}
	for _, a := range o.apis {
		for _, g := range a.Groups {
			if o.skipGroups[g.String()] || (g.Optional && o.noOptional) {
				continue
			}
			if !o.skipGetters[g.String()] {
				d.getters[d.export(g.Getter())] = g
			}
			for _, name := range g.Symbols() {
				if o.skipSymbols[name] {
					continue
				}
				d.procs[d.export(name)] = d.proc(name)
			}
		}
	}
	return d
}

func (d *Driver) export(name string) ddi.Sym {
	c := new(uint64)
	d.cells = append(d.cells, c)
	s := ddi.Sym(unsafe.Pointer(c))
	d.names[name] = s
	d.syms[s] = name
	return s
}

func (d *Driver) proc(name string) ddi.GoProc {
	if p, ok := d.opts.procs[name]; ok {
		return p
	}
	switch name {
	case "zerGetLastErrorDescription":
		return d.getLastErrorDescription
	case "zerTranslateDeviceHandleToIdentifier":
		return func(args ...uintptr) uintptr {
			if len(args) == 0 || args[0]&^deviceMask != deviceBase {
				return math.MaxUint32
			}
			return args[0] & deviceMask
		}
	case "zerTranslateIdentifierToDeviceHandle":
		return func(args ...uintptr) uintptr {
			if len(args) == 0 {
				return 0
			}
			return DeviceHandle(uint32(args[0]))
		}
	case "zerGetDefaultContext":
		return func(...uintptr) uintptr { return DefaultContext }
	}
	return func(...uintptr) uintptr { return uintptr(ddi.Success) }
}

// getLastErrorDescription writes a pointer to a NUL terminated string into *args[0].
func (d *Driver) getLastErrorDescription(args ...uintptr) uintptr {
	if len(args) == 0 || args[0] == 0 {
		return uintptr(ddi.ErrorInvalidNullPointer)
	}
	d.mu.RLock()
	p := uintptr(unsafe.Pointer(&d.lastErr[0]))
	d.mu.RUnlock()
	*(*uintptr)(*(*unsafe.Pointer)(unsafe.Pointer(&args[0]))) = p
	return uintptr(ddi.Success)
}

// SetLastError sets what zerGetLastErrorDescription reports.
func (d *Driver) SetLastError(desc string) {
	b := append([]byte(desc), 0)
	d.mu.Lock()
	d.lastErr = b
	d.mu.Unlock()
}

func (d *Driver) Resolve(name string) ddi.Sym {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return 0
	}
	return d.names[name]
}

func (d *Driver) GetTable(getter ddi.Sym, version ddi.Version, table []ddi.Sym) ddi.Result {
	d.mu.RLock()
	defer d.mu.RUnlock()
	g, ok := d.getters[getter]
	if !ok || d.closed {
		return ddi.ErrorUninitialized
	}
	if version.Major() != ddi.CurrentVersion.Major() {
		return ddi.ErrorUnsupportedVersion
	}
	if res, ok := d.opts.failGetters[g.String()]; ok {
		return res
	}
	if len(table) != len(g.Entries) {
		return ddi.ErrorInvalidSize
	}
	for i, name := range g.Symbols() {
		if v, ok := d.opts.bulkValues[name]; ok {
			table[i] = v
		} else {
			table[i] = d.names[name]
		}
	}
	return ddi.Success
}

func (d *Driver) Call(sym ddi.Sym, args ...uintptr) uintptr {
	d.mu.RLock()
	p, ok := d.procs[sym]
	closed := d.closed
	d.mu.RUnlock()
	if !ok || closed {
		return uintptr(ddi.ErrorUninitialized)
	}
	d.mu.Lock()
	d.calls[d.syms[sym]]++
	d.mu.Unlock()
	return p(args...)
}

// Calls counts how many times an entry was called.
func (d *Driver) Calls(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.calls[name]
}

// Symbols dump exported names.
func (d *Driver) Symbols() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn.MapKeys(d.names)
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ddi.ErrClosed
	}
	d.closed = true
	return nil
}
