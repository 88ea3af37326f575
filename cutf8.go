// Package cutf8 provides strings that are both encoded as UTF-8 and terminated by a single nul byte.
//
// A CUtf8 can be handed to native code that expects a C string (a "const char *") without copying or re-validating,
// while Go code still reads it as an ordinary string:
//
//	greeting := cutf8.Literal("Heyo!")
//	greeting.String()       // "Heyo!"
//	greeting.BytesWithNul() // []byte{72, 101, 121, 111, 33, 0}
//	greeting.Ptr()          // pointer to 'H', safe to pass as a nul-terminated run
//
// Buf is the owned, growable variant, akin to strings.Builder.
//
// See https://en.wikipedia.org/wiki/Null-terminated_string and https://en.wikipedia.org/wiki/UTF-8
package cutf8

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/tetratelabs/cutf8/internal/cstring"
	"github.com/tetratelabs/cutf8/internal/platform"
)

// CChar is the C char type of the target platform, signed or unsigned depending on runtime.GOOS and runtime.GOARCH.
type CChar = platform.CChar

// nul is the stored form of the empty string.
const nul = "\x00"

// Empty is the canonical empty CUtf8: no content and a single nul byte in storage. It never allocates.
var Empty = CUtf8{s: nul}

// CUtf8 is a read-only view of bytes that are valid UTF-8 followed by exactly one nul byte.
//
// Values are built by the validating functions (FromBytes, FromString, FromCStr, FromPtr, New and Literal) or by the
// Unchecked* functions, where the caller vouches for the bytes. A CUtf8 never owns or copies memory it was built
// from: it is a lens over a Go string, a Buf, or foreign memory.
//
// The zero value reads the same as Empty through every method. It is still != Empty, so compare with Equal when a
// value may be zero.
//
// CUtf8 is comparable, so it can be used as a map key. Two values are equal when their stored bytes, including the
// nul, are equal.
type CUtf8 struct {
	// s is the content followed by "\x00".
	s string
}

// validate checks s is UTF-8 first, then that its only nul is the last byte. Every validating constructor uses this,
// so input that is both mis-encoded and unterminated always reports the encoding failure.
func validate(s string) error {
	if err := checkUTF8(s); err != nil {
		return err
	}
	if !cstring.IsNulTerminated(s) {
		return ErrNul
	}
	if i := cstring.IndexNul(s); i < len(s)-1 {
		return &InteriorNulError{Pos: i}
	}
	return nil
}

// FromBytes returns a CUtf8 over b, or an error if b is not UTF-8 (Utf8Error) or does not end with its only nul byte
// (ErrNul).
//
// Note: The result shares memory with b, which must not be modified while the result is in use.
func FromBytes(b []byte) (CUtf8, error) {
	return FromString(unsafe.String(unsafe.SliceData(b), len(b)))
}

// FromString returns a CUtf8 over s, or an error if s is not UTF-8 (Utf8Error) or does not end with its only nul
// byte (ErrNul). No memory is copied.
func FromString(s string) (CUtf8, error) {
	if err := validate(s); err != nil {
		return CUtf8{}, err
	}
	return CUtf8{s: s}, nil
}

// New returns a CUtf8 holding a copy of content with a nul byte appended, or an error if content is not UTF-8 or
// already contains a nul byte.
func New(content string) (CUtf8, error) {
	if err := checkUTF8(content); err != nil {
		return CUtf8{}, err
	}
	if i := cstring.IndexNul(content); i >= 0 {
		return CUtf8{}, &InteriorNulError{Pos: i}
	}
	return CUtf8{s: content + nul}, nil
}

// Literal is like New, except it panics on invalid content. It simplifies safe initialization of package variables:
//
//	var greeting = cutf8.Literal("Heyo!")
//
// To avoid any work at runtime, generate declarations with cmd/cutf8gen instead.
func Literal(content string) CUtf8 {
	c, err := New(content)
	if err != nil {
		panic(fmt.Sprintf("cutf8: Literal(%q): %v", content, err))
	}
	return c
}

// FromCStr returns c as a CUtf8 if all of its bytes, including the nul, are valid UTF-8. The only possible error is
// a Utf8Error.
func FromCStr(c CStr) (CUtf8, error) {
	s := c.withNul()
	if err := checkUTF8(s); err != nil {
		return CUtf8{}, err
	}
	return CUtf8{s: s}, nil
}

// FromPtr reads the nul-terminated run of bytes starting at p and returns it as a CUtf8 if it is valid UTF-8 up to
// and including the first nul. A nil pointer returns Empty.
//
// This is unsafe: p must address readable memory that contains a nul byte, and that memory must stay live and
// unmodified while the result is in use. Neither is checked. No memory is copied.
func FromPtr(p *byte) (CUtf8, error) {
	if p == nil {
		return Empty, nil
	}
	return FromCStr(CStrFromPtr(p))
}

// UncheckedFromBytes returns a CUtf8 over b without checking UTF-8 validity or the trailing nul byte. The caller
// guarantees both, and that b is not modified while the result is in use.
func UncheckedFromBytes(b []byte) CUtf8 {
	return CUtf8{s: unsafe.String(unsafe.SliceData(b), len(b))}
}

// UncheckedFromString returns a CUtf8 over s without checking UTF-8 validity or the trailing nul byte. The caller
// guarantees both. This is the form cmd/cutf8gen emits:
//
//	var greeting = cutf8.UncheckedFromString("Heyo!\x00")
func UncheckedFromString(s string) CUtf8 {
	return CUtf8{s: s}
}

// UncheckedFromCStr returns c as a CUtf8 without checking UTF-8 validity.
func UncheckedFromCStr(c CStr) CUtf8 {
	return CUtf8{s: c.withNul()}
}

// withNul returns the stored string, treating the zero value as Empty.
func (c CUtf8) withNul() string {
	if c.s == "" {
		return nul
	}
	return c.s
}

// Ptr returns a pointer to the first byte, suitable for a foreign call expecting a nul-terminated run of bytes.
//
// Note: The memory must not be written through the pointer, and the foreign call must not retain it beyond the life
// of c's backing memory.
func (c CUtf8) Ptr() *byte {
	return unsafe.StringData(c.withNul())
}

// CPtr is like Ptr, except it returns the platform C char type.
func (c CUtf8) CPtr() *CChar {
	return (*CChar)(unsafe.Pointer(c.Ptr()))
}

// String returns the content without the trailing nul byte. No memory is copied.
func (c CUtf8) String() string {
	s := c.withNul()
	return s[:len(s)-1]
}

// StringWithNul returns the stored string, including the trailing nul byte.
func (c CUtf8) StringWithNul() string {
	return c.withNul()
}

// Bytes returns the content without the trailing nul byte. The result shares memory with c and must not be modified.
func (c CUtf8) Bytes() []byte {
	s := c.withNul()
	return unsafe.Slice(unsafe.StringData(s), len(s)-1)
}

// BytesWithNul returns the stored bytes, including the trailing nul byte. The result shares memory with c and must
// not be modified.
func (c CUtf8) BytesWithNul() []byte {
	s := c.withNul()
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// CStr returns c as a CStr over the same memory.
func (c CUtf8) CStr() CStr {
	return CStr{s: c.withNul()}
}

// Len returns the length of the content in bytes, excluding the trailing nul byte.
func (c CUtf8) Len() int {
	if len(c.s) == 0 {
		return 0
	}
	return len(c.s) - 1
}

// IsEmpty returns true if the only stored byte is the trailing nul.
func (c CUtf8) IsEmpty() bool {
	return len(c.withNul()) == 1
}

// Equal returns true if c and o store the same bytes. Unlike ==, the zero value equals Empty.
func (c CUtf8) Equal(o CUtf8) bool {
	return c.withNul() == o.withNul()
}

// Compare orders c and o by their stored bytes, returning -1, 0 or +1 like strings.Compare.
func (c CUtf8) Compare(o CUtf8) int {
	return strings.Compare(c.withNul(), o.withNul())
}

// ToBuf returns a Buf holding a copy of c.
func (c CUtf8) ToBuf() *Buf {
	return &Buf{b: []byte(c.withNul())}
}
