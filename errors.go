package cutf8

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrNul is returned when input does not end with a nul byte. A nul byte anywhere else is reported as an
	// InteriorNulError, which also matches ErrNul with errors.Is.
	ErrNul = errors.New("missing nul byte at the end of the string")

	// ErrUtf8 matches any Utf8Error with errors.Is.
	ErrUtf8 = errors.New("invalid utf-8")
)

// InteriorNulError is returned when input has a nul byte before its final position.
type InteriorNulError struct {
	// Pos is the index of the first nul byte.
	Pos int
}

// Error implements error.
func (e *InteriorNulError) Error() string {
	return fmt.Sprintf("nul byte found at position %d before the end of the string", e.Pos)
}

// Is allows errors.Is(err, ErrNul).
func (e *InteriorNulError) Is(target error) bool {
	return target == ErrNul
}

// Utf8Error is returned when input is not encoded as UTF-8.
type Utf8Error struct {
	// ValidUpTo is the index in the input up to which valid UTF-8 was verified.
	ValidUpTo int

	// ErrorLen is the length of the invalid byte sequence at ValidUpTo: the lead byte plus any continuation bytes
	// that were still acceptable for it. It is zero if the input ended in the middle of an otherwise valid sequence.
	ErrorLen int
}

// Error implements error.
func (e *Utf8Error) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// Is allows errors.Is(err, ErrUtf8).
func (e *Utf8Error) Is(target error) bool {
	return target == ErrUtf8
}

// checkUTF8 returns a Utf8Error describing the first invalid sequence in s, if any.
func checkUTF8(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &Utf8Error{ValidUpTo: i, ErrorLen: invalidLen(s[i:])}
		}
		i += size
	}
	return nil
}

// invalidLen returns how many bytes at the start of s, which does not begin with a valid rune, still form the prefix
// of some valid sequence. It returns zero when s ends before such a prefix could complete.
func invalidLen(s string) int {
	n := 0
	lo, hi := byte(0x80), byte(0xbf)
	switch lead := s[0]; {
	case 0xc2 <= lead && lead <= 0xdf:
		n = 2
	case lead == 0xe0:
		n, lo = 3, 0xa0
	case lead == 0xed:
		n, hi = 3, 0x9f // no surrogates
	case 0xe1 <= lead && lead <= 0xef:
		n = 3
	case lead == 0xf0:
		n, lo = 4, 0x90
	case 0xf1 <= lead && lead <= 0xf3:
		n = 4
	case lead == 0xf4:
		n, hi = 4, 0x8f // not above U+10FFFF
	default:
		return 1
	}
	for k := 1; k < n; k++ {
		if k == len(s) {
			return 0
		}
		if c := s[k]; c < lo || hi < c {
			return k
		}
		lo, hi = 0x80, 0xbf
	}
	return n
}
