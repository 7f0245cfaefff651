package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ZenLiuCN/ddi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"ddictl"}, args...))
	return out.String(), err
}

func TestGroups(t *testing.T) {
	out, err := run(t, "groups")
	require.NoError(t, err)
	assert.Contains(t, out, "zeGetKernelProcAddrTable")
	assert.Contains(t, out, "zerGetGlobalProcAddrTable")
}

func TestCheckNull(t *testing.T) {
	out, err := run(t, "--null", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: api 1.5")
	assert.Contains(t, out, fmt.Sprintf("static build %t", ddi.StaticBuild))

	_, err = run(t, "--null", "--api-version", "3.0", "check")
	assert.Error(t, err)
}

func TestInspectNull(t *testing.T) {
	out, err := run(t, "--null", "inspect", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "ze.Kernel")
	assert.Contains(t, out, "Slots")
}

func TestCheckMissingLibrary(t *testing.T) {
	_, err := run(t, "check", "/nonexistent/libze_loader.so.1")
	assert.Error(t, err)
}

func TestCompileWithoutSources(t *testing.T) {
	_, err := run(t, "compile")
	assert.ErrorContains(t, err, "missing target sources")
}
