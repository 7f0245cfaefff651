// Package driver is a minimal runtime api driver for the Object resolver tests.
//
// Build it into testdata/driver.o from this directory with:
//
//	ddictl compile driver.go && mv driver.o ..
package driver

import "github.com/ZenLiuCN/ddi"

func ZerGetGlobalProcAddrTable(v ddi.Version, table []ddi.Sym) ddi.Result {
	if v.Major() != 1 {
		return ddi.ErrorUnsupportedVersion
	}
	return ddi.Success
}

func ZerGetDefaultContext(...uintptr) uintptr {
	return 0xc0
}

func ZerTranslateDeviceHandleToIdentifier(args ...uintptr) uintptr {
	if len(args) == 0 {
		return 0xffffffff
	}
	return args[0] & 0xff
}
