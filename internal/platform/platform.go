// Package platform includes runtime-specific code needed to talk to native code.
//
// Note: This is a dependency-free alternative to depending on parts of Go's x/sys or cgo's C.char.
package platform

import "unsafe"

// CCharSize is the size in bytes of CChar, which is always one.
const CCharSize = int(unsafe.Sizeof(CChar(0)))
