package errstate

import "golang.org/x/sys/unix"

// CurrentThread returns the kernel thread id of the caller.
func CurrentThread() ThreadID {
	return ThreadID(unix.Gettid())
}
