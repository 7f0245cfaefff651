/*
Package ddi binds a stable api to driver modules exposing the Level Zero style entry points
(ze core, zet tools, zes sysman and zer runtime).

# Resolution

Each api is a fixed list of groups, each group a fixed list of entries. For every group the
builder asks the module for the bulk getter <prefix>Get<Group>ProcAddrTable, calls it with the
requested version to fill the group's table, then resolves every entry symbol on its own and
overwrites the slot when the module exports it: per-symbol resolution is authoritative.

Groups are mandatory or optional. The first mandatory group that cannot be populated fails
the whole build; optional groups that fail are left null and calls through them report
ErrorUnsupportedFeature instead of crashing.

# Modules

A Resolver is what the builder talks to:

  - Library, a shared object opened with dlopen (purego) or LoadLibrary.
  - Static, symbols registered by drivers linked into the executable; NewResolver returns it
    when built with the ddi_static tag.
  - drivers registered in process with RegisterDriver, like package nulldrv, or package
    object which links Go drivers compiled to relocatable object files with goloader.

A Tracer installed with WithTracer sees every call a Context dispatches, before and after
the driver entry.

# Usage

	c := ddi.NewContext()
	if err := c.Init(config.FromEnv()); err != nil {
		return err
	}
	defer c.Teardown()
	ddi.Must(c.Call("ze", "Device", "Get", driver, uintptr(unsafe.Pointer(&count)), 0))

# Notes

 1. A Context publishes its tree only after a successful build; a failed Init leaves it
    uninitialized.
 2. The last error description is kept per OS thread (package errstate). Goroutines that read
    it back must pin themselves with runtime.LockOSThread.
 3. Teardown waits for the calls in flight before it closes the driver module.
 4. Arguments are passed as machine words, pointers handed to a driver must stay alive for the
    duration of the call.

# Tool

	go install github.com/ZenLiuCN/ddi/cmd/ddictl@latest

lists the catalogue, checks a driver library, compiles Go driver objects and prepares the go
sdk for goloader (ddictl prepare), see ddictl -h. Objects are inspected and linked with
cmd/ddiobj, which needs the prepared sdk to build.
*/
package ddi
