package cutf8

import (
	"unsafe"

	"github.com/tetratelabs/cutf8/internal/cstring"
)

// CStr is a C string: bytes that end with a nul byte and contain no other. Unlike CUtf8, it carries no encoding
// guarantee, which makes it the natural type for bytes read back from native code. FromCStr upgrades it.
//
// The zero value reads as an empty C string.
type CStr struct {
	// s is the content followed by "\x00".
	s string
}

// CStrFromBytesWithNul returns a CStr over b, or an error if b does not end with a nul byte (ErrNul) or has one
// before the end (InteriorNulError).
//
// Note: The result shares memory with b, which must not be modified while the result is in use.
func CStrFromBytesWithNul(b []byte) (CStr, error) {
	s := unsafe.String(unsafe.SliceData(b), len(b))
	if !cstring.IsNulTerminated(s) {
		return CStr{}, ErrNul
	}
	if i := cstring.IndexNul(s); i < len(s)-1 {
		return CStr{}, &InteriorNulError{Pos: i}
	}
	return CStr{s: s}, nil
}

// CStrFromPtr returns the nul-terminated run of bytes starting at p, scanning for its length like strlen(3). A nil
// pointer returns the empty CStr.
//
// This is unsafe: p must address readable memory that contains a nul byte, and that memory must stay live and
// unmodified while the result is in use.
func CStrFromPtr(p *byte) CStr {
	if p == nil {
		return CStr{}
	}
	return CStr{s: unsafe.String(p, cstring.Strlen(p)+1)}
}

// UncheckedCStrFromBytes returns a CStr over b without checking the nul byte.
func UncheckedCStrFromBytes(b []byte) CStr {
	return CStr{s: unsafe.String(unsafe.SliceData(b), len(b))}
}

func (c CStr) withNul() string {
	if c.s == "" {
		return nul
	}
	return c.s
}

// Ptr returns a pointer to the first byte.
func (c CStr) Ptr() *byte {
	return unsafe.StringData(c.withNul())
}

// Bytes returns the bytes before the nul. The result shares memory with c and must not be modified.
func (c CStr) Bytes() []byte {
	s := c.withNul()
	return unsafe.Slice(unsafe.StringData(s), len(s)-1)
}

// BytesWithNul returns all bytes including the nul. The result shares memory with c and must not be modified.
func (c CStr) BytesWithNul() []byte {
	s := c.withNul()
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Len returns the count of bytes before the nul.
func (c CStr) Len() int {
	return len(c.withNul()) - 1
}
