package object

import (
	"bytes"
	"os"
	"testing"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const driverObject = "testdata/driver.o"

func requireObject(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(driverObject); err != nil {
		t.Skip("build testdata/driver.o first, see testdata/driver/driver.go")
	}
}

func openDriver(t *testing.T) *Module {
	t.Helper()
	requireObject(t)
	m, err := Open(driverObject, "driver", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func checkRuntimeTable(t *testing.T, m *Module) {
	t.Helper()
	tb, err := ddi.Populate(m, ddi.ZER.Group("Global"), ddi.CurrentVersion)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0xc0), m.Call(tb.Slot("GetDefaultContext")))
	assert.Equal(t, uintptr(0x12), m.Call(tb.Slot("TranslateDeviceHandleToIdentifier"), 0x3412))
	assert.ElementsMatch(t, []string{"GetLastErrorDescription", "TranslateIdentifierToDeviceHandle"}, tb.Missing())
}

func TestModule(t *testing.T) {
	m := openDriver(t)
	assert.NotZero(t, m.Resolve("zerGetDefaultContext"))
	assert.Equal(t, m.Resolve("zerGetDefaultContext"), m.Resolve("driver.ZerGetDefaultContext"))
	assert.Zero(t, m.Resolve("zerGetLastErrorDescription"))
	checkRuntimeTable(t, m)

	_, err := ddi.Populate(m, ddi.ZER.Group("Global"), ddi.MakeVersion(2, 0))
	assert.ErrorIs(t, err, ddi.ErrorUnsupportedVersion)
}

func TestSerialized(t *testing.T) {
	m := openDriver(t)
	buf := new(bytes.Buffer)
	require.NoError(t, m.Serialize(buf))

	s, err := OpenSerialized(buf, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.Equal(t, []string{"driver"}, s.Pkgs)
	checkRuntimeTable(t, s)
}

func TestClose(t *testing.T) {
	m := openDriver(t)
	require.NoError(t, m.Close())
	assert.Zero(t, m.Resolve("zerGetDefaultContext"))
	assert.ErrorIs(t, m.Close(), ddi.ErrClosed)
	assert.ErrorIs(t, m.Serialize(new(bytes.Buffer)), ddi.ErrClosed)
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, ddi.Drivers(), Name)
	requireObject(t)
	cfg := config.Default()
	cfg.Driver.Object = driverObject
	cfg.Driver.Package = "driver"
	r, err := ddi.Open(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.IsType(t, &Module{}, r)
}

func TestDriverSymbols(t *testing.T) {
	requireObject(t)
	syms, err := DriverSymbols(driverObject, "driver")
	require.NoError(t, err)
	assert.Equal(t, "driver.ZerGetDefaultContext", syms["zerGetDefaultContext"])
	assert.Contains(t, syms, "zerGetGlobalProcAddrTable")
	assert.NotContains(t, syms, "zeInit")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/none.o", "driver", nil)
	assert.Error(t, err)
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "main.ZeInit", qualify("main", "zeInit"))
	assert.Equal(t, "driver.ZeInit", qualify("main", "driver.ZeInit"))
	assert.Equal(t, "", qualify("main", ""))
}

func TestModules(t *testing.T) {
	mods := modules([]string{
		"gofile..$GOROOT/src/fmt/print.go",
		"gofile../root/go/pkg/mod/github.com/!zen!liu!c!n/fn@v0.1.33/map.go",
		"gofile../root/go/pkg/mod/golang.org/x/sys@v0.33.0/unix/syscall.go",
		"gofile../src/ddi/object/testdata/driver/driver.go",
		"gofile../root/go/pkg/mod/example.com/broken@notaversion/x.go",
	})
	assert.Equal(t, map[string]string{
		"github.com/ZenLiuCN/fn": "v0.1.33",
		"golang.org/x/sys":       "v0.33.0",
	}, mods)
	assert.Equal(t, "v0.33.0", versionOf(mods, "golang.org/x/sys/unix"))
	assert.Equal(t, "v0.1.33", versionOf(mods, "github.com/ZenLiuCN/fn"))
	assert.Equal(t, "", versionOf(mods, "golang.org/x/sysfoo"))
	assert.Equal(t, "", versionOf(mods, "fmt"))
}
