//go:build amd64

package seccomp

import "golang.org/x/sys/unix"

// nativeX86_64Patch overrides the security-sensitive subset of
// x86_64ReferenceTable with the SYS_* constants golang.org/x/sys/unix
// generates for the current toolchain. These
// are the syscalls a seccomp profile actually gates, so keeping them
// pinned to the live kernel ABI matters more than for the rest of the
// table.
var nativeX86_64Patch = map[string]int32{
	"read":              int32(unix.SYS_READ),
	"write":             int32(unix.SYS_WRITE),
	"open":              int32(unix.SYS_OPEN),
	"close":             int32(unix.SYS_CLOSE),
	"execve":            int32(unix.SYS_EXECVE),
	"execveat":          int32(unix.SYS_EXECVEAT),
	"clone":             int32(unix.SYS_CLONE),
	"fork":              int32(unix.SYS_FORK),
	"vfork":             int32(unix.SYS_VFORK),
	"ptrace":            int32(unix.SYS_PTRACE),
	"mount":             int32(unix.SYS_MOUNT),
	"umount2":           int32(unix.SYS_UMOUNT2),
	"pivot_root":        int32(unix.SYS_PIVOT_ROOT),
	"chroot":            int32(unix.SYS_CHROOT),
	"reboot":            int32(unix.SYS_REBOOT),
	"init_module":       int32(unix.SYS_INIT_MODULE),
	"finit_module":      int32(unix.SYS_FINIT_MODULE),
	"delete_module":     int32(unix.SYS_DELETE_MODULE),
	"kexec_load":        int32(unix.SYS_KEXEC_LOAD),
	"kexec_file_load":   int32(unix.SYS_KEXEC_FILE_LOAD),
	"bpf":               int32(unix.SYS_BPF),
	"seccomp":           int32(unix.SYS_SECCOMP),
	"keyctl":            int32(unix.SYS_KEYCTL),
	"add_key":           int32(unix.SYS_ADD_KEY),
	"request_key":       int32(unix.SYS_REQUEST_KEY),
	"unshare":           int32(unix.SYS_UNSHARE),
	"setns":             int32(unix.SYS_SETNS),
	"prctl":             int32(unix.SYS_PRCTL),
	"arch_prctl":        int32(unix.SYS_ARCH_PRCTL),
	"personality":       int32(unix.SYS_PERSONALITY),
	"perf_event_open":   int32(unix.SYS_PERF_EVENT_OPEN),
	"process_vm_readv":  int32(unix.SYS_PROCESS_VM_READV),
	"process_vm_writev": int32(unix.SYS_PROCESS_VM_WRITEV),
	"mknod":             int32(unix.SYS_MKNOD),
	"mknodat":           int32(unix.SYS_MKNODAT),
	"ioperm":            int32(unix.SYS_IOPERM),
	"iopl":              int32(unix.SYS_IOPL),
}

// newNativeX86_64Table returns x86_64ReferenceTable with
// nativeX86_64Patch's entries overridden by live syscall numbers.
func newNativeX86_64Table() []nameNum {
	table := append([]nameNum(nil), x86_64ReferenceTable...)
	for i := range table {
		if num, ok := nativeX86_64Patch[table[i].name]; ok {
			table[i].num = num
		}
	}
	return table
}

// NewX86_64Arch returns the x86_64 Arch, its security-sensitive
// entries backed by golang.org/x/sys/unix on amd64 builds.
func NewX86_64Arch() Arch {
	return newTableArch("x86_64", 6, newNativeX86_64Table())
}
