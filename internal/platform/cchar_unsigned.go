//go:build (arm64 && !darwin && !ios && !windows) || arm || ppc64 || ppc64le || s390x || riscv64

package platform

// CChar is the platform's C char: unsigned per the ARM, POWER, s390x and RISC-V ABIs.
type CChar = uint8

// IsCCharSigned is true when the C compiler of runtime.GOOS and runtime.GOARCH treats plain char as signed.
const IsCCharSigned = false
