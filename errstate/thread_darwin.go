package errstate

import (
	"sync"

	"github.com/ebitengine/purego"
)

var pthreadSelf = sync.OnceValue(func() uintptr {
	lib, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		panic(err)
	}
	sym, err := purego.Dlsym(lib, "pthread_self")
	if err != nil {
		panic(err)
	}
	return sym
})

// CurrentThread returns pthread_self of the caller.
func CurrentThread() ThreadID {
	r1, _, _ := purego.SyscallN(pthreadSelf())
	return ThreadID(r1)
}
