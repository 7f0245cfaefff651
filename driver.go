package ddi

import (
	"maps"
	"slices"
	"sync"

	"github.com/ZenLiuCN/ddi/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Opener opens the resolver of an in-process driver.
type Opener func(cfg *config.Config) (Resolver, error)

// ErrNotInstalled means no driver is registered under a name.
var ErrNotInstalled = errors.New("driver not registered")

var (
	driversMu sync.Mutex
	drivers   = make(map[string]Opener)
)

// RegisterDriver makes a driver selectable by name in config.
// Drivers are expected to call it from an init function, a later registration under the
// same name replaces the former.
func RegisterDriver(name string, open Opener) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[name] = open
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	driversMu.Lock()
	defer driversMu.Unlock()
	return slices.Sorted(maps.Keys(drivers))
}

// OpenDriver opens a registered driver.
func OpenDriver(name string, cfg *config.Config) (Resolver, error) {
	driversMu.Lock()
	open, ok := drivers[name]
	driversMu.Unlock()
	if !ok {
		return nil, errors.WithMessage(ErrNotInstalled, name)
	}
	return open(cfg)
}

// Open selects and opens the resolver described by cfg: a registered driver by name, the
// null driver, a Go object, the static registry, then the shared library.
//
// The null and object drivers are only available once their package (nulldrv, object) is
// imported.
func Open(cfg *config.Config, log *zap.Logger) (Resolver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch {
	case cfg.Driver.Name != "":
		log.Debug("open registered driver", zap.String("name", cfg.Driver.Name))
		return OpenDriver(cfg.Driver.Name, cfg)
	case cfg.Driver.Null:
		log.Debug("open null driver")
		return OpenDriver("null", cfg)
	case cfg.Driver.Object != "":
		log.Debug("open driver object", zap.String("file", cfg.Driver.Object))
		return OpenDriver("object", cfg)
	case cfg.Driver.Static:
		log.Debug("use static symbols")
		return GlobalStatic(), nil
	}
	path := cfg.Driver.Library
	if path == "" {
		path = LibraryName(config.DefaultLibraryName, config.DefaultLibraryVer)
	}
	log.Debug("open driver library", zap.String("path", path), zap.Bool("static", StaticBuild))
	return NewResolver(path)
}
