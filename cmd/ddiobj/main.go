// Command ddiobj inspects and links Go driver objects.
//
// It is a goloader host: run ddictl prepare before building it.
package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/logger"
	"github.com/ZenLiuCN/ddi/object"
	"github.com/ZenLiuCN/fn"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ddiobj"
	app.Usage = "inspect and link Go driver objects"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "debug logging"},
	}
	pkg := &cli.StringFlag{Name: "pkg", Aliases: []string{"p"}, Usage: "package path or default main"}
	app.Commands = []*cli.Command{
		{
			Name:      "symbols",
			Action:    symbols,
			Usage:     "list the driver entry points an object file defines",
			ArgsUsage: "file",
			Flags: []cli.Flag{
				pkg,
				&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "list every symbol"},
			},
		},
		{
			Name:      "imports",
			Action:    imports,
			Usage:     "display imports of object files with their module versions",
			ArgsUsage: "file...",
			Flags:     []cli.Flag{pkg},
		},
		{
			Name:      "link",
			Action:    link,
			Usage:     "link an object file and report the groups it populates",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				pkg,
				&cli.StringFlag{Name: "serialize", Aliases: []string{"o"}, Usage: "write the linker to this file"},
				&cli.StringFlag{Name: "from", Aliases: []string{"f"}, Usage: "link a serialized linker instead of an object file"},
				&cli.StringFlag{Name: "api-version", Aliases: []string{"v"}, Usage: "requested api version, e.g. 1.5"},
			},
		},
	}
	return app
}

func newLogger(ctx *cli.Context) *zap.Logger {
	verbosity := "warn"
	if ctx.Bool("debug") {
		verbosity = "debug"
	}
	l, err := logger.New(verbosity, "")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func symbols(ctx *cli.Context) error {
	file := ctx.Args().First()
	if file == "" {
		return errors.New("missing object file")
	}
	if ctx.Bool("all") {
		syms, err := object.Inspect(file, ctx.String("pkg"))
		if err != nil {
			return err
		}
		slices.Sort(syms)
		for _, s := range syms {
			fmt.Fprintln(ctx.App.Writer, s)
		}
		return nil
	}
	syms, err := object.DriverSymbols(file, ctx.String("pkg"))
	if err != nil {
		return err
	}
	names := fn.MapKeys(syms)
	slices.Sort(names)
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%s\n", n, syms[n])
	}
	return w.Flush()
}

func imports(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return errors.New("missing object file")
	}
	for _, s := range ctx.Args().Slice() {
		deps, err := object.Imports(s, ctx.String("pkg"))
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s:\n", s)
		for _, d := range deps {
			fmt.Fprintf(ctx.App.Writer, "\t%s\n", d)
		}
	}
	return nil
}

func open(ctx *cli.Context, log *zap.Logger) (*object.Module, error) {
	if from := ctx.String("from"); from != "" {
		f, err := os.Open(from)
		if err != nil {
			return nil, err
		}
		defer fn.IgnoreClose(f)
		return object.OpenSerialized(f, log)
	}
	file := ctx.Args().First()
	if file == "" {
		return nil, errors.New("missing object file")
	}
	return object.Open(file, ctx.String("pkg"), log)
}

func link(ctx *cli.Context) (err error) {
	log := newLogger(ctx)
	version := ddi.CurrentVersion
	if v := ctx.String("api-version"); v != "" {
		if version, err = ddi.ParseVersion(v); err != nil {
			return
		}
	}
	m, err := open(ctx, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	if missing := m.MissingSymbols(); len(missing) > 0 {
		fmt.Fprintf(ctx.App.ErrWriter, "unresolved host symbols: %v\n", missing)
	}
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tRESOLVED\tMISSING")
	for _, a := range ddi.APIs() {
		for _, g := range a.Groups {
			t, err := ddi.Populate(m, g, version)
			if errors.Is(err, ddi.ErrUnsupported) {
				continue
			}
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\t\n", g, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", g, t.Resolved(), len(t.Missing()))
		}
	}
	if err = w.Flush(); err != nil {
		return
	}
	if out := ctx.String("serialize"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer fn.IgnoreClose(f)
		if err = m.Serialize(f); err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "linker written to %s\n", out)
	}
	return nil
}
