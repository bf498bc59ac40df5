package guictx

import "runtime"

// pinnedString owns a NUL-terminated copy of a string field value. The core
// stores the raw buffer address and reads it on its own schedule, so the
// buffer is pinned from the moment it is handed over until release.
type pinnedString struct {
	buf []byte
	pin runtime.Pinner
}

func newPinnedString(value string) *pinnedString {
	p := &pinnedString{buf: make([]byte, 0, len(value)+1)}
	p.buf = append(p.buf, value...)
	p.buf = append(p.buf, 0)
	p.pin.Pin(&p.buf[0])
	return p
}

func (p *pinnedString) ptr() *byte {
	return &p.buf[0]
}

// release unpins the buffer. The engine must no longer hold its address.
func (p *pinnedString) release() {
	p.pin.Unpin()
}
