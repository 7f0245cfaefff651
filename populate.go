package ddi

// Populate fills the dispatch table of one group from a resolver.
//
// The bulk getter <prefix>Get<Group>ProcAddrTable runs first when the module exports it,
// then every entry symbol that resolves individually overwrites its slot. An entry the
// module does not export keeps whatever the getter wrote.
//
// A getter reporting failure fails the group with a *ResultError. A module exporting
// neither the getter nor any entry fails with ErrUnsupported and leaves every slot 0.
// Otherwise the table is returned, possibly partial; Table.Missing lists the null slots.
func Populate(r Resolver, g *Group, version Version) (*Table, error) {
	t := newTable(g)
	return t, populate(r, t, version)
}

func populate(r Resolver, t *Table, version Version) error {
	g := t.Group
	getter := r.Resolve(g.Getter())
	if getter != 0 {
		if res := r.GetTable(getter, version, t.Slots); res != Success {
			return &ResultError{Code: res, Call: g.Getter()}
		}
	}
	resolved := 0
	for i, e := range g.Entries {
		if s := r.Resolve(g.Symbol(e)); s != 0 {
			t.Slots[i] = s
			resolved++
		}
	}
	if getter == 0 && resolved == 0 {
		return ErrUnsupported
	}
	return nil
}
