package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const driverObject = "../../object/testdata/driver.o"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"ddiobj"}, args...))
	return out.String(), err
}

func TestMissingArguments(t *testing.T) {
	_, err := run(t, "symbols")
	assert.ErrorContains(t, err, "missing object file")
	_, err = run(t, "imports")
	assert.ErrorContains(t, err, "missing object file")
	_, err = run(t, "link")
	assert.ErrorContains(t, err, "missing object file")
	_, err = run(t, "link", "--from", filepath.Join(t.TempDir(), "none.linker"))
	assert.Error(t, err)
}

func TestLinkSerialized(t *testing.T) {
	if _, err := os.Stat(driverObject); err != nil {
		t.Skip("build object/testdata/driver.o first")
	}
	linker := filepath.Join(t.TempDir(), "driver.linker")
	out, err := run(t, "link", "--pkg", "driver", "--serialize", linker, driverObject)
	require.NoError(t, err)
	assert.Contains(t, out, "zer.Global")
	assert.FileExists(t, linker)

	again, err := run(t, "link", "--from", linker)
	require.NoError(t, err)
	assert.Contains(t, again, "zer.Global")

	out, err = run(t, "symbols", "--pkg", "driver", driverObject)
	require.NoError(t, err)
	assert.Contains(t, out, "driver.ZerGetDefaultContext")

	out, err = run(t, "imports", "--pkg", "driver", driverObject)
	require.NoError(t, err)
	assert.Contains(t, out, "github.com/ZenLiuCN/ddi")
}
