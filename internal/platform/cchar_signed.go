//go:build !((arm64 && !darwin && !ios && !windows) || arm || ppc64 || ppc64le || s390x || riscv64)

package platform

// CChar is the platform's C char: signed on amd64, 386, darwin/arm64 and windows/arm64.
type CChar = int8

// IsCCharSigned is true when the C compiler of runtime.GOOS and runtime.GOARCH treats plain char as signed.
const IsCCharSigned = true
