// Package errstate keeps the last error description per OS thread.
//
// A record is replaced on every Set, never appended to. Reading a thread that never wrote
// creates an empty record for it, like the loader it mirrors. Records are only released by
// Forget.
package errstate

import "sync"

// ThreadID identifies an OS thread.
type ThreadID uint64

// Registry maps threads to their last error description.
type Registry struct {
	mu    sync.Mutex
	descs map[ThreadID]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{descs: make(map[ThreadID]string)}
}

// Default is the process wide registry.
var Default = New()

func (r *Registry) Set(id ThreadID, desc string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descs[id] = desc
}

func (r *Registry) Get(id ThreadID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.descs[id]
	if !ok {
		r.descs[id] = ""
	}
	return d
}

// SetCurrent records desc for the calling OS thread.
//
// A goroutine can migrate between threads; pin it with runtime.LockOSThread when a Set
// and a later Get must see the same record.
func (r *Registry) SetCurrent(desc string) {
	r.Set(CurrentThread(), desc)
}

// GetCurrent reads the record of the calling OS thread.
func (r *Registry) GetCurrent() string {
	return r.Get(CurrentThread())
}

// Forget drops the record of a thread.
func (r *Registry) Forget(id ThreadID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.descs, id)
}

// Len counts the records, empty ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.descs)
}

func SetErrorDesc(desc string) { Default.SetCurrent(desc) }
func GetErrorDesc() string     { return Default.GetCurrent() }
