// Package pool keeps one Context per loaded driver module.
package pool

import (
	"errors"
	"slices"
	"sync"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/config"
	"go.uber.org/zap"
)

type Pool struct {
	Contexts map[string]*ddi.Context
	Loaded   []string
	// Open the module at a path, ddi.NewResolver by default.
	Open func(path string) (ddi.Resolver, error)
	sync.RWMutex
	cfg       *config.Config
	opts      []ddi.Option
	resolvers map[string]ddi.Resolver
	log       *zap.Logger
}

var (
	ErrAlreadyLoad = errors.New("driver already loaded")
	ErrNotLoad     = errors.New("driver not loaded")
	ErrCorrupted   = errors.New("recording corrupted")
)

// NewPool create new pool, every context is initialized from cfg (config.FromEnv when nil).
func NewPool(cfg *config.Config, log *zap.Logger, opts ...ddi.Option) *Pool {
	if cfg == nil {
		cfg = config.FromEnv()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		Contexts:  make(map[string]*ddi.Context),
		Open:      ddi.NewResolver,
		cfg:       cfg,
		opts:      append(slices.Clone(opts), ddi.WithLogger(log)),
		resolvers: make(map[string]ddi.Resolver),
		log:       log.Named("pool"),
	}
}

// Load opens the driver at path and builds its dispatch tree.
func (p *Pool) Load(path string) error {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Contexts[path]; ok {
		return ErrAlreadyLoad
	}
	c, err := p.load(path)
	if err != nil {
		return err
	}
	p.Loaded = append(p.Loaded, path)
	p.Contexts[path] = c
	return nil
}

func (p *Pool) load(path string) (*ddi.Context, error) {
	r, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	c := ddi.NewContext(append(slices.Clone(p.opts), ddi.WithResolver(r))...)
	if err = c.Init(p.cfg); err != nil {
		_ = r.Close()
		p.log.Warn("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	p.resolvers[path] = r
	p.log.Debug("loaded", zap.String("path", path))
	return c, nil
}

func (p *Pool) unload(path string) error {
	c := p.Contexts[path]
	delete(p.Contexts, path)
	err := c.Teardown()
	if r, ok := p.resolvers[path]; ok {
		delete(p.resolvers, path)
		err = errors.Join(err, r.Close())
	}
	p.log.Debug("unloaded", zap.String("path", path))
	return err
}

// Unload tears the driver context down and closes the module.
func (p *Pool) Unload(path string) error {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Contexts[path]; !ok {
		return ErrNotLoad
	}
	i := slices.Index(p.Loaded, path)
	if i < 0 {
		return ErrCorrupted
	}
	p.Loaded = slices.Delete(p.Loaded, i, i+1)
	return p.unload(path)
}

// Reload unloads then loads again the driver at path, keeping its position.
func (p *Pool) Reload(path string) error {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Contexts[path]; !ok {
		return ErrNotLoad
	}
	i := slices.Index(p.Loaded, path)
	if i < 0 {
		return ErrCorrupted
	}
	if err := p.unload(path); err != nil {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
		return err
	}
	c, err := p.load(path)
	if err != nil {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
		return err
	}
	p.Contexts[path] = c
	return nil
}

// Require fetch the context of a loaded driver, panics with ErrNotLoad.
func (p *Pool) Require(path string) *ddi.Context {
	p.RLock()
	defer p.RUnlock()
	if c, ok := p.Contexts[path]; ok {
		return c
	}
	panic(ErrNotLoad)
}

// Paths of loaded drivers in load order.
func (p *Pool) Paths() []string {
	p.RLock()
	defer p.RUnlock()
	return slices.Clone(p.Loaded)
}

// Close unloads every driver, last loaded first.
func (p *Pool) Close() (err error) {
	p.Lock()
	defer p.Unlock()
	for i := len(p.Loaded) - 1; i >= 0; i-- {
		err = errors.Join(err, p.unload(p.Loaded[i]))
	}
	p.Loaded = nil
	return
}
