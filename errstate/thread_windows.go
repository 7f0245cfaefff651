package errstate

import "golang.org/x/sys/windows"

// CurrentThread returns the id of the calling thread.
func CurrentThread() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}
