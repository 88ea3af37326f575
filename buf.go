package cutf8

import (
	"slices"
	"unicode/utf8"
	"unsafe"

	"github.com/tetratelabs/cutf8/internal/cstring"
)

// Buf is an owned, growable CUtf8, akin to strings.Builder. Its stored bytes always end with a single nul byte
// between calls, so View can hand them to native code at any time.
//
// Write accepts a UTF-8 sequence split across calls, as io.Copy produces: an incomplete sequence at the end of p is
// held back, outside the stored bytes, until a later write completes it.
//
// The zero value is an empty Buf ready to use. A nil *Buf reads as empty. A Buf is not safe for concurrent use.
type Buf struct {
	// b is the content followed by 0. nil is the same as []byte{0}.
	b []byte

	// pending is the start of a UTF-8 sequence not yet completed by a write, at most utf8.UTFMax-1 bytes.
	pending []byte
}

// NewBuf returns an empty Buf, storing only the nul byte.
func NewBuf() *Buf {
	return &Buf{b: []byte{0}}
}

// NewBufString returns a Buf holding a copy of s, appending a nul byte unless s already ends with one. It returns a
// Utf8Error if s is not UTF-8.
func NewBufString(s string) (*Buf, error) {
	if err := checkUTF8(s); err != nil {
		return nil, err
	}
	if cstring.IsNulTerminated(s) {
		return &Buf{b: []byte(s)}, nil
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &Buf{b: b}, nil
}

// UncheckedBufFromBytes returns a Buf that takes ownership of b without checking UTF-8 validity or the trailing nul
// byte. The caller guarantees both and must not use b afterwards.
func UncheckedBufFromBytes(b []byte) *Buf {
	return &Buf{b: b}
}

// withContent passes the content without its nul to fn and stores fn's result followed by exactly one nul. The nul
// is restored even if fn panics, in which case the content is unchanged.
func (b *Buf) withContent(fn func(content []byte) []byte) {
	if len(b.b) == 0 {
		b.b = []byte{0}
	}
	content := b.b[:len(b.b)-1]
	defer func() {
		b.b = append(content, 0)
	}()
	content = fn(content)
}

// WriteString appends s and returns its length with a nil error. It implements io.StringWriter.
//
// Note: s is not checked. It must be valid UTF-8 and should not contain a nul byte. The exception is when Write holds
// an incomplete sequence, in which case s is checked as its continuation.
func (b *Buf) WriteString(s string) (int, error) {
	if len(b.pending) > 0 {
		return b.write(s)
	}
	b.withContent(func(content []byte) []byte {
		return append(content, s...)
	})
	return len(s), nil
}

// WriteRune appends the UTF-8 encoding of r. Invalid runes are written as utf8.RuneError.
func (b *Buf) WriteRune(r rune) (int, error) {
	if len(b.pending) > 0 {
		return b.write(string(utf8.AppendRune(nil, r)))
	}
	n := 0
	b.withContent(func(content []byte) []byte {
		l := len(content)
		content = utf8.AppendRune(content, r)
		n = len(content) - l
		return content
	})
	return n, nil
}

// Write appends p, or returns a Utf8Error leaving b unchanged. It implements io.Writer, so fmt.Fprintf and io.Copy
// can write into a Buf.
//
// An incomplete sequence at the end of p is held until a later write and is not visible through View or String.
// Indexes in a returned Utf8Error count held bytes first.
func (b *Buf) Write(p []byte) (int, error) {
	return b.write(unsafe.String(unsafe.SliceData(p), len(p)))
}

func (b *Buf) write(s string) (int, error) {
	n := len(s)
	if len(b.pending) > 0 {
		s = string(b.pending) + s
	}
	var tail string
	if err := checkUTF8(s); err != nil {
		ue := err.(*Utf8Error)
		if ue.ErrorLen != 0 {
			return 0, err
		}
		// Incomplete: only the end of s can be cut short.
		s, tail = s[:ue.ValidUpTo], s[ue.ValidUpTo:]
	}
	if len(s) > 0 {
		b.withContent(func(content []byte) []byte {
			return append(content, s...)
		})
	}
	b.pending = append(b.pending[:0], tail...)
	return n, nil
}

// Grow grows b's capacity, if necessary, to guarantee space for another n bytes of content.
func (b *Buf) Grow(n int) {
	if n < 0 {
		panic("cutf8.Buf.Grow: negative count")
	}
	b.withContent(func(content []byte) []byte {
		return slices.Grow(content, n+1)
	})
}

// View returns the current contents as a CUtf8 without copying.
//
// Note: The view is only valid until the next write to b, which overwrites the old nul byte.
func (b *Buf) View() CUtf8 {
	if b == nil || len(b.b) == 0 {
		return Empty
	}
	return UncheckedFromBytes(b.b)
}

// Mut returns a mutable view of the current contents. Like View, it is only valid until the next write to b.
func (b *Buf) Mut() *Mut {
	if len(b.b) == 0 {
		b.b = []byte{0}
	}
	return UncheckedMutFromBytes(b.b)
}

// String returns a copy of the content without the trailing nul byte.
func (b *Buf) String() string {
	if b == nil || len(b.b) <= 1 {
		return ""
	}
	return string(b.b[:len(b.b)-1])
}

// Len returns the length of the content in bytes, excluding the trailing nul byte.
func (b *Buf) Len() int {
	return b.View().Len()
}

// IsEmpty returns true if b has no content.
func (b *Buf) IsEmpty() bool {
	return b.View().IsEmpty()
}

// Equal returns true if b and o store the same bytes. A nil *Buf equals an empty one.
func (b *Buf) Equal(o *Buf) bool {
	return b.View().Equal(o.View())
}

// Compare orders b and o by their stored bytes, like CUtf8.Compare.
func (b *Buf) Compare(o *Buf) int {
	return b.View().Compare(o.View())
}

// IntoString returns the content without the trailing nul byte, without copying, and resets b to empty. Later writes
// to b use new memory.
func (b *Buf) IntoString() string {
	content := b.take()
	if len(content) == 0 {
		return ""
	}
	return unsafe.String(&content[0], len(content))
}

// IntoBytes returns the content without the trailing nul byte, without copying, and resets b to empty. The caller
// owns the result.
func (b *Buf) IntoBytes() []byte {
	return b.take()
}

// take also drops any incomplete sequence held by Write.
func (b *Buf) take() []byte {
	b.pending = nil
	if len(b.b) == 0 {
		return []byte{}
	}
	content := b.b[:len(b.b)-1]
	b.b = nil
	return content
}
