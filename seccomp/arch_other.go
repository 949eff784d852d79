//go:build !amd64

package seccomp

// NewX86_64Arch returns the x86_64 Arch using the static reference
// table. Non-amd64 builds can't compile golang.org/x/sys/unix's
// amd64-specific SYS_* constants, so this build target falls back to
// the reference table in full.
func NewX86_64Arch() Arch {
	return newTableArch("x86_64", 6, append([]nameNum(nil), x86_64ReferenceTable...))
}
