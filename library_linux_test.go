package ddi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary(t *testing.T) {
	_, err := OpenLibrary(LibraryName("ze_does_not_exist", "1"))
	require.Error(t, err)

	l, err := OpenLibrary("libc.so.6")
	if err != nil {
		t.Skip("libc.so.6 not available:", err)
	}
	strlen := l.Resolve("strlen")
	require.NotZero(t, strlen)
	assert.Zero(t, l.Resolve("zeInit"))
	assert.Equal(t, strlen, l.Resolve("strlen"))

	s := []byte("level zero\x00")
	assert.Equal(t, uintptr(10), l.Call(strlen, uintptr(unsafe.Pointer(&s[0]))))

	_, err = Populate(l, ZE.Group("Global"), CurrentVersion)
	assert.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Close(), ErrClosed)
	assert.Zero(t, l.Resolve("strlen"))
}

func TestLibraryName(t *testing.T) {
	assert.Equal(t, "libze_loader.so.1", LibraryName("ze_loader", "1"))
	assert.Equal(t, "libze_loader.so", LibraryName("ze_loader", ""))
}
