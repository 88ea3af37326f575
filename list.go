package cutf8

import (
	"fmt"
	"math"
	"slices"

	"github.com/tetratelabs/cutf8/internal/cstring"
)

// List holds CUtf8 values whose packed size, each value followed by its nul, fits in a uint32. This is the shape
// argv and environ style foreign calls read: one contiguous buffer of strings plus a pointer to each.
type List struct {
	vals    []CUtf8
	bufSize uint32
}

// EmptyList is returned by NewList when there are no values.
var EmptyList = &List{vals: []CUtf8{}}

// NewList validates each of vals with New and returns them as a List. It returns an error naming valName[i] if a
// value is invalid, or if the packed size would exceed maxBufSize.
func NewList(maxBufSize uint32, valName string, vals ...string) (*List, error) {
	if len(vals) == 0 {
		return EmptyList, nil
	}
	ret := make([]CUtf8, 0, len(vals))
	for i, v := range vals {
		c, err := New(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d] is not a valid C string: %w", valName, i, err)
		}
		ret = append(ret, c)
	}
	bufSize, err := cstring.PackedSize(maxBufSize, valName, vals...)
	if err != nil {
		return nil, err
	}
	return &List{vals: ret, bufSize: bufSize}, nil
}

// Len returns the count of values.
func (l *List) Len() int {
	return len(l.vals)
}

// At returns the value at index i.
func (l *List) At(i int) CUtf8 {
	return l.vals[i]
}

// BufSize returns the packed size of all values, including a nul after each.
func (l *List) BufSize() uint32 {
	return l.bufSize
}

// AppendTo appends every value with its nul to dst, back to back, and returns the extended slice.
func (l *List) AppendTo(dst []byte) []byte {
	dst = slices.Grow(dst, int(l.bufSize))
	for _, v := range l.vals {
		dst = append(dst, v.StringWithNul()...)
	}
	return dst
}

// Offsets returns where each value starts when AppendTo writes the list at base, for building a pointer array such
// as argv. It returns an error if the list would not fit below the 4GiB limit of a 32-bit address space.
func (l *List) Offsets(base uint32) ([]uint32, error) {
	if end := uint64(base) + uint64(l.bufSize); end > math.MaxUint32+1 {
		return nil, fmt.Errorf("list of %d bytes at offset %d ends past the 32-bit address space", l.bufSize, base)
	}
	offsets := make([]uint32, 0, len(l.vals))
	for _, v := range l.vals {
		offsets = append(offsets, base)
		base += uint32(len(v.StringWithNul()))
	}
	return offsets, nil
}
