package ddi

// Root is the dispatch tree of one driver module: one table per catalogued group.
//
// Tables are allocated with every slot 0 before the build starts, a Root is read only
// once a Context publishes it.
type Root struct {
	Version Version
	APIs    []*API
	tables  map[*Group]*Table
}

func newRoot(version Version, apis []*API) *Root {
	r := &Root{Version: version, APIs: apis, tables: make(map[*Group]*Table)}
	for _, a := range apis {
		for _, g := range a.Groups {
			r.tables[g] = newTable(g)
		}
	}
	return r
}

// Table of a group by api prefix and group name, nil when not catalogued.
func (r *Root) Table(api, group string) *Table {
	if r == nil {
		return nil
	}
	for _, a := range r.APIs {
		if a.Prefix != api {
			continue
		}
		if g := a.Group(group); g != nil {
			return r.tables[g]
		}
	}
	return nil
}

// TableOf a group.
func (r *Root) TableOf(g *Group) *Table {
	if r == nil {
		return nil
	}
	return r.tables[g]
}

// Lookup an entry address, 0 when missing.
func (r *Root) Lookup(api, group, entry string) Sym {
	return r.Table(api, group).Slot(entry)
}

// Tables in build order.
func (r *Root) Tables() []*Table {
	var out []*Table
	for _, a := range r.APIs {
		for _, g := range a.Groups {
			out = append(out, r.tables[g])
		}
	}
	return out
}
