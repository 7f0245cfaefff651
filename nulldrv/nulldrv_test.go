package nulldrv

import (
	"testing"

	"github.com/ZenLiuCN/ddi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver(t *testing.T) {
	d := New()
	kernel := ddi.ZE.Group("Kernel")
	t.Run("every catalogued symbol is exported once", func(t *testing.T) {
		seen := map[ddi.Sym]bool{}
		for _, a := range ddi.APIs() {
			for _, g := range a.Groups {
				for _, s := range append(g.Symbols(), g.Getter()) {
					sym := d.Resolve(s)
					require.NotZero(t, sym, s)
					require.False(t, seen[sym], s)
					seen[sym] = true
				}
			}
		}
		assert.Len(t, d.Symbols(), len(seen))
		assert.Zero(t, d.Resolve("zeKernelTeleport"))
	})
	t.Run("getter writes exported addresses", func(t *testing.T) {
		table := make([]ddi.Sym, len(kernel.Entries))
		require.Equal(t, ddi.Success, d.GetTable(d.Resolve(kernel.Getter()), ddi.CurrentVersion, table))
		for i, s := range kernel.Symbols() {
			assert.Equal(t, d.Resolve(s), table[i], s)
		}
		assert.Equal(t, ddi.ErrorInvalidSize, d.GetTable(d.Resolve(kernel.Getter()), ddi.CurrentVersion, table[:2]))
		assert.Equal(t, ddi.ErrorUnsupportedVersion, d.GetTable(d.Resolve(kernel.Getter()), ddi.MakeVersion(2, 0), table))
		assert.Equal(t, ddi.ErrorUninitialized, d.GetTable(d.Resolve("zeKernelCreate"), ddi.CurrentVersion, table))
	})
	t.Run("calls", func(t *testing.T) {
		assert.Equal(t, uintptr(ddi.Success), d.Call(d.Resolve("zeKernelCreate"), 0, 0, 0))
		assert.Equal(t, 1, d.Calls("zeKernelCreate"))
		assert.Equal(t, uintptr(ddi.ErrorUninitialized), d.Call(0x1234))
	})
	t.Run("close", func(t *testing.T) {
		x := New()
		require.NoError(t, x.Close())
		assert.ErrorIs(t, x.Close(), ddi.ErrClosed)
		assert.Zero(t, x.Resolve("zeInit"))
	})
}

func TestOptions(t *testing.T) {
	d := New(
		WithAPIs(ddi.ZE),
		WithoutGroup("ze", "Fence"),
		WithoutGetter("ze", "Device"),
		WithoutSymbol("zeKernelGetName"),
		WithFailingGetter("ze", "Image", ddi.ErrorDeviceLost),
		WithProc("zeInit", func(...uintptr) uintptr { return uintptr(ddi.ErrorUninitialized) }),
	)
	assert.Zero(t, d.Resolve("zetDebugAttach"))
	assert.Zero(t, d.Resolve("zeFenceCreate"))
	assert.Zero(t, d.Resolve("zeGetFenceProcAddrTable"))
	assert.Zero(t, d.Resolve("zeGetDeviceProcAddrTable"))
	assert.NotZero(t, d.Resolve("zeDeviceGet"))
	assert.Zero(t, d.Resolve("zeKernelGetName"))
	image := ddi.ZE.Group("Image")
	assert.Equal(t, ddi.ErrorDeviceLost, d.GetTable(d.Resolve(image.Getter()), ddi.CurrentVersion, make([]ddi.Sym, len(image.Entries))))
	assert.Equal(t, uintptr(ddi.ErrorUninitialized), d.Call(d.Resolve("zeInit")))

	assert.NotZero(t, New().Resolve("zeImageViewCreateExp"))
	assert.Zero(t, New(WithoutOptional()).Resolve("zeImageViewCreateExp"))
}

func TestRuntimeEntries(t *testing.T) {
	d := New()
	assert.Equal(t, uintptr(5), d.Call(d.Resolve("zerTranslateDeviceHandleToIdentifier"), DeviceHandle(5)))
	assert.Equal(t, DeviceHandle(9), d.Call(d.Resolve("zerTranslateIdentifierToDeviceHandle"), 9))
	assert.Equal(t, DefaultContext, d.Call(d.Resolve("zerGetDefaultContext")))
	assert.Equal(t, uintptr(ddi.ErrorInvalidNullPointer), d.Call(d.Resolve("zerGetLastErrorDescription"), 0))
}
