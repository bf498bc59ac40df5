package guiruntime

import "unsafe"

// GoString copies the NUL-terminated byte sequence at p into a Go string.
// A nil pointer yields the empty string. Bytes are copied verbatim; no
// encoding validation is performed.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
