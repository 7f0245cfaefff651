package ddi

// Resolver looks up entry points of one loaded driver module and invokes them with the
// module's calling convention.
//
// Resolve is idempotent and has no side effects: it returns 0 when the module does not
// export name. GetTable invokes a bulk getter that writes the group's table into table,
// whose order is the member order of the driver's table struct.
type Resolver interface {
	Resolve(name string) Sym
	GetTable(getter Sym, version Version, table []Sym) Result
	Call(fn Sym, args ...uintptr) uintptr
	Close() error
}

// GoGetter is the Go calling convention form of a bulk getter, used by in-process
// drivers and goloader objects.
type GoGetter = func(version Version, table []Sym) Result

// GoProc is the Go calling convention form of an entry point.
type GoProc = func(args ...uintptr) uintptr
