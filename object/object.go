// Package object links Go driver modules at runtime with goloader.
//
// A driver is compiled to a relocatable object file (.o or .a, see ddictl compile) and
// linked into the running process. Importing the package registers it as the "object"
// driver, selected by driver.object in the configuration.
//
// goloader reads the go sdk internals: run ddictl prepare once before building anything
// that imports this package.
package object

import (
	"io"
	"strings"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/config"
	"github.com/ZenLiuCN/ddi/logger"
	"github.com/pkg/errors"
	"github.com/pkujhd/goloader"
	"go.uber.org/zap"
)

// Name of the driver in the ddi registry.
const Name = "object"

func init() {
	ddi.RegisterDriver(Name, func(cfg *config.Config) (ddi.Resolver, error) {
		log, err := logger.New(cfg.Logger.Verbosity, cfg.Logger.File)
		if err != nil {
			return nil, err
		}
		m, err := Open(cfg.Driver.Object, cfg.Driver.Package, log)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Module is a linked driver object.
//
// Bulk getters of a Module have the ddi.GoGetter signature and entries the ddi.GoProc
// signature. A symbol name without a package qualifier is looked up, capitalized, in the
// first package: zeInit resolves to <pkg>.ZeInit, since only exported functions can be linked.
//
// Note: a Module can be used between goroutines, but must be closed only once nothing
// calls into it any more.
type Module struct {
	Files   []string
	Pkgs    []string
	symbols map[string]uintptr
	linker  *goloader.Linker
	code    *goloader.CodeModule
	log     *zap.Logger
}

func newModule(log *zap.Logger, types ...any) (*Module, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Module{symbols: make(map[string]uintptr), log: log.Named("object")}
	if err := goloader.RegSymbol(m.symbols); err != nil {
		return nil, errors.WithMessage(err, "register host symbols")
	}
	if len(types) > 0 {
		goloader.RegTypes(m.symbols, types...)
	}
	return m, nil
}

// Open reads and links one object file. pkg defaults to main.
func Open(file, pkg string, log *zap.Logger, types ...any) (*Module, error) {
	return OpenAll([]string{file}, []string{pkg}, log, types...)
}

// OpenAll reads and links several object files as one module.
func OpenAll(files, pkgs []string, log *zap.Logger, types ...any) (m *Module, err error) {
	if len(files) != len(pkgs) {
		return nil, errors.Errorf("%d files but %d packages", len(files), len(pkgs))
	}
	if m, err = newModule(log, types...); err != nil {
		return
	}
	m.Files = files
	m.Pkgs = make([]string, len(pkgs))
	for i, p := range pkgs {
		m.Pkgs[i] = defaultPkg(p)
	}
	if m.linker, err = goloader.ReadObjs(m.Files, m.Pkgs); err != nil {
		return nil, errors.WithMessagef(err, "read objects %v", files)
	}
	m.log.Debug("linker created", zap.Strings("files", files))
	return m, m.link()
}

// OpenSerialized links a linker previously written by Module.Serialize, the object files
// are not needed any more.
func OpenSerialized(in io.Reader, log *zap.Logger, types ...any) (m *Module, err error) {
	if m, err = newModule(log, types...); err != nil {
		return
	}
	if m.linker, err = goloader.UnSerialize(in); err != nil {
		return nil, errors.WithMessage(err, "read serialized linker")
	}
	for _, p := range m.linker.Packages {
		m.Files = append(m.Files, p.File)
		m.Pkgs = append(m.Pkgs, p.PkgPath)
	}
	return m, m.link()
}

func (m *Module) link() (err error) {
	if missing := m.MissingSymbols(); len(missing) > 0 {
		m.log.Warn("unresolved symbols", zap.Strings("symbols", missing))
	}
	if m.code, err = goloader.Load(m.linker, m.symbols); err != nil {
		return errors.WithMessagef(err, "link %v", m.Files)
	}
	return nil
}

func defaultPkg(pkg string) string {
	if pkg == "" {
		return "main"
	}
	return pkg
}

func qualify(pkg, name string) string {
	if strings.IndexByte(name, '.') >= 0 || name == "" {
		return name
	}
	return pkg + "." + strings.ToUpper(name[:1]) + name[1:]
}

func (m *Module) Resolve(name string) ddi.Sym {
	if m.code == nil || len(m.Pkgs) == 0 {
		return 0
	}
	return ddi.Sym(m.code.Syms[qualify(m.Pkgs[0], name)])
}

func (m *Module) GetTable(getter ddi.Sym, version ddi.Version, table []ddi.Sym) ddi.Result {
	return ddi.As[ddi.GoGetter](getter)(version, table)
}

func (m *Module) Call(sym ddi.Sym, args ...uintptr) uintptr {
	return ddi.As[ddi.GoProc](sym)(args...)
}

// MissingSymbols dump symbols the object needs but the host does not provide.
func (m *Module) MissingSymbols() []string {
	if m.linker == nil {
		return nil
	}
	return goloader.UnresolvedSymbols(m.linker, m.symbols)
}

// Serialize writes the linker so that OpenSerialized can relink it without the object files.
func (m *Module) Serialize(out io.Writer) error {
	if m.linker == nil {
		return ddi.ErrClosed
	}
	return goloader.Serialize(m.linker, out)
}

// Close unloads the module code.
func (m *Module) Close() error {
	if m.code == nil {
		return ddi.ErrClosed
	}
	m.log.Debug("unload", zap.Strings("files", m.Files))
	m.code.Unload()
	m.code = nil
	m.linker = nil
	m.symbols = nil
	return nil
}
