package ddi

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ZenLiuCN/ddi/config"
	"github.com/ZenLiuCN/ddi/errstate"
	"github.com/ZenLiuCN/ddi/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// State of a Context.
type State int32

const (
	Uninitialized State = iota
	Ready
	Destroying
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Destroying:
		return "destroying"
	}
	return "uninitialized"
}

// Context binds the api to one driver module.
//
// Init builds the dispatch tree and publishes it once every mandatory group resolved;
// callers never observe a partially built tree. Teardown flips the context to Destroying
// before releasing the module, from then on every call reports ErrorUninitialized.
// Calls in flight hold the dispatch lock, Teardown waits for them before closing the module.
type Context struct {
	mu       sync.Mutex
	live     sync.RWMutex
	state    atomic.Int32
	root     atomic.Pointer[Root]
	resolver Resolver
	owned    bool
	errs     *errstate.Registry
	log      *zap.Logger
	observer Observer
	tracers  []Tracer
}

// Option configures a Context.
type Option func(*Context)

// WithResolver uses an already opened module instead of the one config selects.
// Teardown does not close it.
func WithResolver(r Resolver) Option {
	return func(c *Context) { c.resolver = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.log = l }
}

func WithObserver(o Observer) Option {
	return func(c *Context) { c.observer = o }
}

// WithTracer intercepts every dispatched call, see Tracer.
func WithTracer(t Tracer) Option {
	return func(c *Context) { c.tracers = append(c.tracers, t) }
}

// WithErrors replaces errstate.Default.
func WithErrors(r *errstate.Registry) Option {
	return func(c *Context) { c.errs = r }
}

func NewContext(opts ...Option) *Context {
	c := &Context{errs: errstate.Default}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Context) State() State { return State(c.state.Load()) }

// Root is the published dispatch tree, nil unless Ready.
func (c *Context) Root() *Root {
	if c.State() != Ready {
		return nil
	}
	return c.root.Load()
}

// Errors is the registry GetLastErrorDescription reads.
func (c *Context) Errors() *errstate.Registry { return c.errs }

// Init opens the driver selected by cfg (config.FromEnv when nil) and builds its dispatch tree.
// A ready context is left untouched.
func (c *Context) Init(cfg *config.Config) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.State() {
	case Ready:
		return nil
	case Destroying:
		return errors.WithMessage(ErrUninitialized, "context torn down")
	}
	if cfg == nil {
		cfg = config.FromEnv()
	}
	if c.log == nil {
		if c.log, err = logger.New(cfg.Logger.Verbosity, cfg.Logger.File); err != nil {
			return errors.WithMessage(err, "create logger")
		}
	}
	version := CurrentVersion
	if cfg.API.Version != "" {
		if version, err = ParseVersion(cfg.API.Version); err != nil {
			return
		}
	}
	r := c.resolver
	owned := false
	if r == nil {
		if r, err = Open(cfg, c.log); err != nil {
			c.log.Error("open driver", zap.Error(err))
			return
		}
		owned = true
	}
	b := &Builder{
		Resolver: r,
		Version:  version,
		Logger:   c.log.Named("build"),
		Observer: c.observer,
		Lenient:  cfg.API.Lenient,
	}
	root, err := b.Build()
	if err != nil {
		if owned {
			_ = r.Close()
		}
		return
	}
	c.resolver, c.owned = r, owned
	if cfg.Tracing {
		c.tracers = append(c.tracers, LogTracer{Log: c.log.Named("trace")})
	}
	c.root.Store(root)
	c.state.Store(int32(Ready))
	c.log.Info("context ready", zap.Stringer("version", version))
	return nil
}

// Teardown marks the context Destroying and releases the driver module it opened.
func (c *Context) Teardown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live.Lock()
	prev := State(c.state.Swap(int32(Destroying)))
	c.live.Unlock()
	if prev != Ready || !c.owned {
		return nil
	}
	if c.log != nil {
		c.log.Info("context teardown")
	}
	return c.resolver.Close()
}

// Invoke calls an entry and returns its raw return word.
func (c *Context) Invoke(api, group, entry string, args ...uintptr) (uintptr, error) {
	return c.invoke(2, api, group, entry, args)
}

func (c *Context) invoke(skip int, api, group, entry string, args []uintptr) (uintptr, error) {
	fail := func(code Result, call string) (uintptr, error) {
		e := &ResultError{Code: code, Call: call}
		_, e.File, e.Line, _ = runtime.Caller(skip + 1)
		return 0, e
	}
	c.live.RLock()
	defer c.live.RUnlock()
	if c.State() != Ready {
		return fail(ErrorUninitialized, api+group+entry)
	}
	t := c.root.Load().Table(api, group)
	if t == nil || t.Group.Index(entry) < 0 {
		return fail(ErrorInvalidArgument, api+group+entry)
	}
	s := t.Slot(entry)
	if s == 0 {
		return fail(ErrorUnsupportedFeature, t.Group.Symbol(entry))
	}
	return c.call(t.Group, entry, s, args), nil
}

// call runs an entry through the tracers, the dispatch lock must be held.
func (c *Context) call(g *Group, entry string, s Sym, args []uintptr) uintptr {
	if len(c.tracers) == 0 {
		return c.resolver.Call(s, args...)
	}
	tc := &TracedCall{API: g.API.Prefix, Group: g.Name, Entry: entry, Symbol: g.Symbol(entry), Args: args}
	for _, t := range c.tracers {
		t.Prologue(tc)
	}
	tc.Ret = c.resolver.Call(s, args...)
	for i := len(c.tracers) - 1; i >= 0; i-- {
		c.tracers[i].Epilogue(tc)
	}
	return tc.Ret
}

// Call invokes an entry returning a Result. A non-success Result comes back as a
// *ResultError recording the caller file and line.
func (c *Context) Call(api, group, entry string, args ...uintptr) error {
	r, err := c.invoke(2, api, group, entry, args)
	if err != nil {
		return err
	}
	if res := Result(uint32(r)); res != Success {
		e := &ResultError{Code: res, Call: c.root.Load().Table(api, group).Group.Symbol(entry)}
		_, e.File, e.Line, _ = runtime.Caller(1)
		return e
	}
	return nil
}

// Must panics with err when it is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// GetLastErrorDescription returns the calling thread's last error description, falling back
// to the driver's own when the thread has none.
func (c *Context) GetLastErrorDescription() (string, Result) {
	if c.State() == Destroying {
		return "", ErrorUninitialized
	}
	if desc := c.errs.GetCurrent(); desc != "" {
		return desc, Success
	}
	c.live.RLock()
	defer c.live.RUnlock()
	if c.State() != Ready {
		return "", ErrorUninitialized
	}
	t := c.root.Load().Table(ZER.Prefix, "Global")
	s := t.Slot("GetLastErrorDescription")
	if s == 0 {
		return "", ErrorUnsupportedFeature
	}
	p := new(uintptr)
	res := Result(uint32(c.call(t.Group, "GetLastErrorDescription", s, []uintptr{uintptr(unsafe.Pointer(p))})))
	desc := goString(*p)
	runtime.KeepAlive(p)
	return desc, res
}

// TranslateDeviceHandleToIdentifier returns math.MaxUint32 when the driver cannot translate,
// the reason is then in the error registry.
func (c *Context) TranslateDeviceHandleToIdentifier(device uintptr) uint32 {
	r, ok := c.runtimeCall("TranslateDeviceHandleToIdentifier", device)
	if !ok {
		return math.MaxUint32
	}
	return uint32(r)
}

// TranslateIdentifierToDeviceHandle returns 0 when the driver cannot translate.
func (c *Context) TranslateIdentifierToDeviceHandle(id uint32) uintptr {
	r, _ := c.runtimeCall("TranslateIdentifierToDeviceHandle", uintptr(id))
	return r
}

// GetDefaultContext returns 0 when the driver has no default context.
func (c *Context) GetDefaultContext() uintptr {
	r, _ := c.runtimeCall("GetDefaultContext")
	return r
}

// runtimeCall calls a zer Global entry, or records in the error registry why it cannot be
// reached.
func (c *Context) runtimeCall(entry string, args ...uintptr) (uintptr, bool) {
	c.live.RLock()
	defer c.live.RUnlock()
	if c.State() != Ready {
		c.errs.SetCurrent("ERROR UNINITIALIZED")
		return 0, false
	}
	t := c.root.Load().Table(ZER.Prefix, "Global")
	s := t.Slot(entry)
	if s == 0 {
		c.errs.SetCurrent("ERROR UNSUPPORTED FEATURE")
		return 0, false
	}
	return c.call(t.Group, entry, s, args), true
}

// goString copies a NUL terminated C string.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	ptr := *(*unsafe.Pointer)(unsafe.Pointer(&p))
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n))
}
