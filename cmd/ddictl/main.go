package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ZenLiuCN/ddi"
	"github.com/ZenLiuCN/ddi/config"
	"github.com/ZenLiuCN/ddi/logger"
	_ "github.com/ZenLiuCN/ddi/nulldrv"
	"github.com/ZenLiuCN/ddi/toolchain"
	"github.com/davecgh/go-spew/spew"
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
	app.Name = "ddictl"
	app.Usage = "inspect driver modules and their dispatch tables"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "debug logging"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		&cli.BoolFlag{Name: "null", Usage: "use the in-process null driver"},
		&cli.BoolFlag{Name: "static", Usage: "use statically registered symbols"},
		&cli.StringFlag{Name: "api-version", Aliases: []string{"v"}, Usage: "requested api version, e.g. 1.5"},
		&cli.BoolFlag{Name: "lenient", Usage: "tolerate null slots in mandatory groups"},
	}
	app.Commands = []*cli.Command{
		{Name: "groups", Action: groups, Usage: "list catalogued groups and their getters"},
		{
			Name:      "check",
			Action:    check,
			Usage:     "build the dispatch tree of a driver and report the first failing mandatory group",
			ArgsUsage: "[library]",
		},
		{
			Name:      "inspect",
			Action:    inspect,
			Usage:     "report resolved and missing entries of every group",
			ArgsUsage: "[library]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "missing", Aliases: []string{"m"}, Usage: "list missing entries"},
				&cli.BoolFlag{Name: "dump", Usage: "dump the dispatch tree"},
			},
		},
		{
			Name:      "compile",
			Action:    compile,
			Usage:     "compile go driver sources into an object file in the working directory",
			ArgsUsage: "sources...",
		},
		{Name: "prepare", Action: prepare, Usage: "copy the go sdk internals goloader builds against"},
		{Name: "clean", Action: clean, Usage: "remove the go sdk internals copied by prepare"},
	}
	return app
}

func loadConfig(ctx *cli.Context) (cfg *config.Config, err error) {
	if p := ctx.String("config"); p != "" {
		if cfg, err = config.LoadConfig(p); err != nil {
			return
		}
	} else {
		cfg = config.FromEnv()
	}
	if ctx.Bool("debug") {
		cfg.Logger.Verbosity = "debug"
	}
	if ctx.Bool("null") {
		cfg.Driver.Null = true
	}
	if ctx.Bool("static") {
		cfg.Driver.Static = true
	}
	if ctx.Bool("lenient") {
		cfg.API.Lenient = true
	}
	if v := ctx.String("api-version"); v != "" {
		cfg.API.Version = v
	}
	if lib := ctx.Args().First(); lib != "" {
		cfg.Driver.Library = lib
	}
	return
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

// build opens the configured driver and builds its tree, the resolver stays open.
func build(ctx *cli.Context) (*ddi.Root, ddi.Resolver, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(ctx)
	r, err := ddi.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	version := ddi.CurrentVersion
	if cfg.API.Version != "" {
		if version, err = ddi.ParseVersion(cfg.API.Version); err != nil {
			_ = r.Close()
			return nil, nil, err
		}
	}
	root, err := (&ddi.Builder{Resolver: r, Version: version, Logger: log, Lenient: cfg.API.Lenient}).Build()
	return root, r, err
}

func groups(ctx *cli.Context) error {
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "API\tGROUP\tKIND\tENTRIES\tGETTER")
	for _, a := range ddi.APIs() {
		for _, g := range a.Groups {
			kind := "mandatory"
			if g.Optional {
				kind = "optional"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.Prefix, g.Name, kind, len(g.Entries), g.Getter())
		}
	}
	return w.Flush()
}

func check(ctx *cli.Context) error {
	root, r, err := build(ctx)
	if r != nil {
		defer func() { _ = r.Close() }()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "ok: api %s, %d tables, static build %t\n", root.Version, len(root.Tables()), ddi.StaticBuild)
	return nil
}

func inspect(ctx *cli.Context) error {
	root, r, err := build(ctx)
	if r == nil {
		return err
	}
	defer func() { _ = r.Close() }()
	if err != nil {
		fmt.Fprintf(ctx.App.ErrWriter, "%s\n", err)
	}
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tRESOLVED\tMISSING")
	for _, t := range root.Tables() {
		missing := t.Missing()
		fmt.Fprintf(w, "%s\t%d\t%d\n", t.Group, t.Resolved(), len(missing))
		if ctx.Bool("missing") {
			for _, m := range missing {
				fmt.Fprintf(w, "\t\t%s\n", t.Group.Symbol(m))
			}
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if ctx.Bool("dump") {
		sp := spew.NewDefaultConfig()
		sp.MaxDepth = 3
		sp.DisablePointerAddresses = true
		sp.Fdump(ctx.App.Writer, root.Tables())
	}
	return nil
}

func compile(ctx *cli.Context) error {
	src := ctx.Args().Slice()
	if len(src) == 0 {
		return errors.New("missing target sources list")
	}
	return toolchain.Compile(newLogger(ctx), src)
}

func prepare(ctx *cli.Context) error {
	goroot, err := toolchain.GOROOT()
	if err != nil {
		return err
	}
	if err = toolchain.Prepare(newLogger(ctx), goroot); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "prepared %s\n", filepath.Join(goroot, toolchain.ObjfileDir))
	return nil
}

func clean(ctx *cli.Context) error {
	goroot, err := toolchain.GOROOT()
	if err != nil {
		return err
	}
	return toolchain.Clean(newLogger(ctx), goroot)
}
