package ddi

import (
	"time"

	"go.uber.org/zap"
)

// Observer receives build events, see package metrics.
type Observer interface {
	GroupPopulated(api, group string, optional bool, resolved, missing int, err error)
	BuildFinished(elapsed time.Duration, err error)
}

// Builder assembles the dispatch tree of one driver module.
//
// Groups are visited in catalogue order, apis in the order given. The first mandatory group
// that fails aborts the build: later groups stay untouched and Build returns the partial
// Root with a *BuildError, the Root must not be published. An optional group that fails is
// left fully null and the build goes on.
//
// A mandatory group that still has null slots after population fails with ErrIncomplete,
// unless Lenient is set, in which case the null slots are only logged.
type Builder struct {
	Resolver Resolver
	Version  Version
	APIs     []*API // defaults to APIs()
	Logger   *zap.Logger
	Observer Observer
	Lenient  bool
}

// Build the dispatch tree.
func (b *Builder) Build() (root *Root, err error) {
	start := time.Now()
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	apis := b.APIs
	if len(apis) == 0 {
		apis = APIs()
	}
	version := b.Version
	if version == 0 {
		version = CurrentVersion
	}
	defer func() {
		if b.Observer != nil {
			b.Observer.BuildFinished(time.Since(start), err)
		}
	}()
	root = newRoot(version, apis)
	for _, a := range apis {
		for _, g := range a.Groups {
			t := root.tables[g]
			gerr := populate(b.Resolver, t, version)
			if gerr == nil && !g.Optional {
				if missing := t.Missing(); len(missing) > 0 {
					if b.Lenient {
						log.Debug("mandatory group partially resolved",
							zap.Stringer("group", g), zap.Strings("missing", missing))
					} else {
						gerr = &IncompleteError{Missing: missing}
					}
				}
			}
			if b.Observer != nil {
				b.Observer.GroupPopulated(a.Prefix, g.Name, g.Optional, t.Resolved(), len(t.Slots)-t.Resolved(), gerr)
			}
			if gerr == nil {
				continue
			}
			if g.Optional {
				log.Debug("optional group unavailable", zap.Stringer("group", g), zap.Error(gerr))
				t.reset()
				continue
			}
			log.Error("mandatory group failed", zap.Stringer("group", g), zap.Error(gerr))
			return root, &BuildError{API: a.Prefix, Group: g.Name, Err: gerr}
		}
	}
	log.Debug("dispatch tree built", zap.Stringer("version", version), zap.Duration("elapsed", time.Since(start)))
	return root, nil
}
