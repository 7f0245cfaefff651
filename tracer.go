package ddi

import "go.uber.org/zap"

// TracedCall is one entry point invocation seen by the tracers of a Context.
type TracedCall struct {
	API    string
	Group  string
	Entry  string
	Symbol string
	Args   []uintptr
	// Ret is set before the epilogues run.
	Ret uintptr
	// Data is free for a tracer to carry state from its prologue to its epilogue.
	Data any
}

// Tracer intercepts the calls a Context dispatches.
//
// Prologues run in registration order before the driver entry, epilogues in reverse order
// after it. Tracers run with the dispatch lock held and must not call Teardown.
type Tracer interface {
	Prologue(c *TracedCall)
	Epilogue(c *TracedCall)
}

// Callbacks is a Tracer made of two functions, either may be nil.
type Callbacks struct {
	OnPrologue func(c *TracedCall)
	OnEpilogue func(c *TracedCall)
}

func (cb Callbacks) Prologue(c *TracedCall) {
	if cb.OnPrologue != nil {
		cb.OnPrologue(c)
	}
}

func (cb Callbacks) Epilogue(c *TracedCall) {
	if cb.OnEpilogue != nil {
		cb.OnEpilogue(c)
	}
}

// LogTracer logs every call at debug level. Init installs one when tracing is enabled in
// the configuration.
type LogTracer struct {
	Log *zap.Logger
}

func (l LogTracer) Prologue(c *TracedCall) {
	l.Log.Debug("call", zap.String("symbol", c.Symbol), zap.Uintptrs("args", c.Args))
}

func (l LogTracer) Epilogue(c *TracedCall) {
	fields := []zap.Field{zap.String("symbol", c.Symbol), zap.Uintptr("ret", c.Ret)}
	if c.Group != "Global" || c.API != ZER.Prefix {
		fields = append(fields, zap.Stringer("result", Result(uint32(c.Ret))))
	}
	l.Log.Debug("return", fields...)
}
