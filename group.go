package ddi

import "strings"

type (
	// API is a family of entry points sharing one symbol prefix, e.g. "ze" or "zes".
	API struct {
		Prefix string
		Groups []*Group
	}
	// Group is one dispatch table: a named, fixed ordered set of entries.
	//
	// Entries are listed in the member order of the driver's table struct, the bulk getter
	// writes them in that order.
	Group struct {
		API      *API
		Name     string
		Entries  []string
		Optional bool
		stem     string
		index    map[string]int
	}
)

func newAPI(prefix string, groups ...*Group) *API {
	a := &API{Prefix: prefix, Groups: groups}
	for _, g := range groups {
		g.API = a
		if g.stem == "" && g.Name != "Global" {
			g.stem = strings.TrimSuffix(g.Name, "Exp")
		}
		g.index = make(map[string]int, len(g.Entries))
		for i, e := range g.Entries {
			g.index[e] = i
		}
	}
	return a
}

func group(name string, entries ...string) *Group {
	return &Group{Name: name, Entries: entries}
}

func optional(name string, entries ...string) *Group {
	return &Group{Name: name, Entries: entries, Optional: true}
}

// objectGroup is a group whose symbol stem keeps the Exp suffix, e.g. zetTracerExpCreate.
func objectGroup(name string, entries ...string) *Group {
	return &Group{Name: name, Entries: entries, Optional: true, stem: name}
}

// Group returns the named group or nil.
func (a *API) Group(name string) *Group {
	for _, g := range a.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (a *API) String() string { return a.Prefix }

// Getter is the symbol name of the bulk getter: <prefix>Get<Group>ProcAddrTable.
func (g *Group) Getter() string {
	return g.API.Prefix + "Get" + g.Name + "ProcAddrTable"
}

// Symbol is the exported name of one entry.
func (g *Group) Symbol(entry string) string {
	return g.API.Prefix + g.stem + entry
}

// Symbols lists entry symbols in slot order.
func (g *Group) Symbols() []string {
	out := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = g.Symbol(e)
	}
	return out
}

// Index of an entry inside the table, -1 when the group has no such entry.
func (g *Group) Index(entry string) int {
	if i, ok := g.index[entry]; ok {
		return i
	}
	return -1
}

func (g *Group) String() string {
	return g.API.Prefix + "." + g.Name
}

// Table is the dispatch table of one group. Slots follow Group.Entries order.
type Table struct {
	Group *Group
	Slots []Sym
}

func newTable(g *Group) *Table {
	return &Table{Group: g, Slots: make([]Sym, len(g.Entries))}
}

// Slot returns the address stored for an entry, 0 when missing or unknown.
func (t *Table) Slot(entry string) Sym {
	if t == nil {
		return 0
	}
	i := t.Group.Index(entry)
	if i < 0 {
		return 0
	}
	return t.Slots[i]
}

// Missing lists the entries whose slot is null.
func (t *Table) Missing() (out []string) {
	for i, s := range t.Slots {
		if s == 0 {
			out = append(out, t.Group.Entries[i])
		}
	}
	return
}

// Resolved counts non null slots.
func (t *Table) Resolved() (n int) {
	for _, s := range t.Slots {
		if s != 0 {
			n++
		}
	}
	return
}

// Empty reports whether every slot is null.
func (t *Table) Empty() bool {
	return t.Resolved() == 0
}

func (t *Table) reset() {
	clear(t.Slots)
}
