// Package cstring is named cstring because null-terminated strings are also known as CString and that avoids using
// clashing package names like "strings" or a really long one like "null-terminated-strings"
package cstring

import (
	"fmt"
	"strings"
	"unsafe"
)

// Bytes is either a string or a byte slice.
type Bytes interface {
	~string | ~[]byte
}

// IsNulTerminated returns true if the last byte of s is NUL ("\x00").
//
// See https://en.wikipedia.org/wiki/Null-terminated_string
func IsNulTerminated[T Bytes](s T) bool {
	return len(s) > 0 && s[len(s)-1] == 0
}

// IndexNul returns the index of the first NUL in s or -1 if there is none.
func IndexNul(s string) int {
	return strings.IndexByte(s, 0)
}

// Strlen returns the count of bytes before the first NUL at or after p, like strlen(3).
//
// Note: p must address a readable run of bytes that includes a NUL. This is not checked, and a run without one reads
// past the end of the allocation.
func Strlen(p *byte) int {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}

// PackedSize returns the size of a buffer holding each of vals followed by a NUL. It returns an error if the size
// exceeds maxBufSize, naming the first value that crosses it as valName[i].
func PackedSize(maxBufSize uint32, valName string, vals ...string) (uint32, error) {
	totalBufSize := uint32(0)
	for i, v := range vals {
		valLen := uint64(len(v)) + 1 // + 1 for "\x00"; uint64 in case this one value is huge
		nextSize := uint64(totalBufSize) + valLen
		if nextSize > uint64(maxBufSize) {
			return 0, fmt.Errorf("%s[%d] will exceed max buffer size %d", valName, i, maxBufSize)
		}
		totalBufSize = uint32(nextSize)
	}
	return totalBufSize, nil
}
