// Package toolchain drives the go sdk for Go driver objects: compiling sources into
// relocatable objects and exposing the sdk internals goloader builds against.
//
// It does not import goloader itself, so the tools built on it run on a stock go sdk.
package toolchain

import (
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZenLiuCN/fn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	internalDir = "src/cmd/internal"
	// ObjfileDir is where goloader expects the copied sdk internals, relative to GOROOT.
	ObjfileDir = "src/cmd/objfile"
)

// GOROOT reports the root of the go sdk found on PATH.
func GOROOT() (string, error) {
	if _, err := exec.LookPath("go"); err != nil {
		return "", errors.WithMessage(err, "missing go sdk")
	}
	out, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		return "", errors.WithMessagef(err, "go env: %s", stderr(err))
	}
	return strings.TrimSpace(string(out)), nil
}

// Prepared reports whether the sdk internals are already exposed under goroot.
func Prepared(goroot string) bool {
	_, err := os.Stat(filepath.Join(goroot, ObjfileDir))
	return err == nil
}

// Prepare copies $GOROOT/src/cmd/internal to $GOROOT/src/cmd/objfile, nothing is done when
// the copy exists.
func Prepare(log *zap.Logger, goroot string) error {
	if log == nil {
		log = zap.NewNop()
	}
	src := filepath.Join(goroot, internalDir)
	dst := filepath.Join(goroot, ObjfileDir)
	if Prepared(goroot) {
		log.Debug("sdk already prepared", zap.String("dir", dst))
		return nil
	}
	log.Debug("prepare sdk", zap.String("from", src), zap.String("to", dst))
	return CopyDir(src, dst, nil)
}

// Clean removes what Prepare copied.
func Clean(log *zap.Logger, goroot string) error {
	if log == nil {
		log = zap.NewNop()
	}
	dst := filepath.Join(goroot, ObjfileDir)
	if !Prepared(goroot) {
		log.Debug("nothing to clean", zap.String("dir", dst))
		return nil
	}
	log.Debug("clean sdk", zap.String("dir", dst))
	return os.RemoveAll(dst)
}

// CopyFile from src to dest with optional src file info.
func CopyFile(src, dest string, si fs.FileInfo) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(sf)
	if si == nil {
		if si, err = sf.Stat(); err != nil {
			return
		}
	}
	df, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, si.Mode().Perm())
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(df)
	_, err = io.Copy(df, sf)
	return
}

// CopyDir copies a tree from src to dest with optional src file info.
func CopyDir(src, dest string, si fs.FileInfo) (err error) {
	if si == nil {
		if si, err = os.Stat(src); err != nil {
			return err
		}
	}
	if !si.IsDir() {
		return errors.Errorf("%s is not a directory", src)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return CopyFile(path, target, info)
	})
}

// Compile Go driver sources into a relocatable object in the working directory, with an
// importcfg generated from go list.
func Compile(log *zap.Logger, sources []string) (err error) {
	if log == nil {
		log = zap.NewNop()
	}
	if _, err = exec.LookPath("go"); err != nil {
		return errors.WithMessage(err, "missing go sdk")
	}
	if err = importConfig(log, sources); err != nil {
		return
	}
	defer func() {
		if err == nil {
			err = os.Remove("importcfg")
		}
	}()
	cmd := exec.Command("go", append([]string{"tool", "compile", "-importcfg", "importcfg"}, sources...)...)
	log.Debug("execute", zap.Strings("args", cmd.Args))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func importConfig(log *zap.Logger, sources []string) (err error) {
	var cfg *os.File
	if cfg, err = os.OpenFile("importcfg", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644); err != nil {
		return
	}
	defer fn.IgnoreClose(cfg)
	cmd := exec.Command("go", append([]string{"list", "-export", "-f", "{{.Imports}}"}, sources...)...)
	log.Debug("execute", zap.Strings("args", cmd.Args))
	out, err := cmd.Output()
	if err != nil {
		return errors.WithMessagef(err, "list imports: %s", stderr(err))
	}
	deps := strings.Trim(strings.TrimSpace(string(out)), "[]")
	cmd = exec.Command("go", append([]string{"list", "-export", "-f",
		"{{if .Export}}packagefile {{.ImportPath}}={{.Export}}{{end}}", "std"}, strings.Fields(deps)...)...)
	log.Debug("execute", zap.Strings("args", cmd.Args))
	if out, err = cmd.Output(); err != nil {
		return errors.WithMessagef(err, "list dependencies: %s", stderr(err))
	}
	_, err = cfg.Write(out)
	return
}

func stderr(err error) string {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return string(ee.Stderr)
	}
	return ""
}
