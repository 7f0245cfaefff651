package ddi

import (
	"syscall"
	"unsafe"
)

func ccall(fn Sym, args ...uintptr) uintptr {
	r1, _, _ := syscall.SyscallN(uintptr(fn), args...)
	return r1
}

// cGetTable calls a C bulk getter: ze_result_t (*)(ze_api_version_t, table_t*).
func cGetTable(getter Sym, version Version, table []Sym) Result {
	if len(table) == 0 {
		return ErrorInvalidSize
	}
	return Result(uint32(ccall(getter, uintptr(version), uintptr(unsafe.Pointer(&table[0])))))
}
