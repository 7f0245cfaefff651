//go:build !linux && !windows && !darwin

package errstate

// CurrentThread has no thread identity on this platform: every caller shares one record.
func CurrentThread() ThreadID {
	return 1
}
