// Package linux provides seccomp BPF filter support.
package linux

import (
	"fmt"
	"syscall"
	"unsafe"

	"runc-go/seccomp"
	"runc-go/spec"
)

// Seccomp constants
const (
	SECCOMP_MODE_FILTER      = 2
	SECCOMP_RET_KILL_PROCESS = 0x80000000
	SECCOMP_RET_KILL_THREAD  = 0x00000000
	SECCOMP_RET_TRAP         = 0x00030000
	SECCOMP_RET_ERRNO        = 0x00050000
	SECCOMP_RET_TRACE        = 0x7ff00000
	SECCOMP_RET_LOG          = 0x7ffc0000
	SECCOMP_RET_ALLOW        = 0x7fff0000

	PR_SET_NO_NEW_PRIVS = 38
	PR_SET_SECCOMP      = 22
)

// BPF constants
const (
	BPF_LD  = 0x00
	BPF_JMP = 0x05
	BPF_RET = 0x06
	BPF_W   = 0x00
	BPF_ABS = 0x20
	BPF_JEQ = 0x10
	BPF_JGE = 0x30
	BPF_JGT = 0x20
	BPF_K   = 0x00
)

// Seccomp data offsets
const (
	offsetNR   = 0
	offsetArch = 4
)

// Architecture audit values
const (
	AUDIT_ARCH_X86_64  = 0xc000003e
	AUDIT_ARCH_I386    = 0x40000003
	AUDIT_ARCH_AARCH64 = 0xc00000b7
	AUDIT_ARCH_ARM     = 0x40000028
)

// sockFprog is the BPF program structure.
type sockFprog struct {
	Len    uint16
	Filter *sockFilter
}

// sockFilter is a single BPF instruction.
type sockFilter struct {
	Code uint16
	Jt   uint8
	Jf   uint8
	K    uint32
}

// actionToRet maps OCI seccomp actions to return values.
var actionToRet = map[spec.LinuxSeccompAction]uint32{
	spec.ActKill:        SECCOMP_RET_KILL_THREAD,
	spec.ActKillProcess: SECCOMP_RET_KILL_PROCESS,
	spec.ActKillThread:  SECCOMP_RET_KILL_THREAD,
	spec.ActTrap:        SECCOMP_RET_TRAP,
	spec.ActErrno:       SECCOMP_RET_ERRNO,
	spec.ActTrace:       SECCOMP_RET_TRACE,
	spec.ActAllow:       SECCOMP_RET_ALLOW,
	spec.ActLog:         SECCOMP_RET_LOG,
}

// archToAudit maps OCI arch to audit arch value.
var archToAudit = map[spec.Arch]uint32{
	spec.ArchX86_64:  AUDIT_ARCH_X86_64,
	spec.ArchX86:     AUDIT_ARCH_I386,
	spec.ArchAARCH64: AUDIT_ARCH_AARCH64,
	spec.ArchARM:     AUDIT_ARCH_ARM,
}

// SetupSeccomp installs a seccomp filter based on OCI configuration.
//
// Rules are merged into a seccomp.Db first rather than walked directly
// off config.Syscalls: this catches conflicting or duplicate rules with
// the filter database's actual merge semantics instead of the
// coverage-percentage guess an earlier revision used.
func SetupSeccomp(config *spec.LinuxSeccomp) error {
	if config == nil {
		return nil
	}

	// Set no new privileges
	_, _, errno := syscall.Syscall(syscall.SYS_PRCTL, PR_SET_NO_NEW_PRIVS, 1, 0)
	if errno != 0 {
		return fmt.Errorf("prctl(PR_SET_NO_NEW_PRIVS): %v", errno)
	}

	// Build BPF filter
	filter, err := buildSeccompFilter(config)
	if err != nil {
		return fmt.Errorf("build filter: %w", err)
	}

	if len(filter) == 0 {
		return nil
	}

	prog := sockFprog{
		Len:    uint16(len(filter)),
		Filter: &filter[0],
	}

	// Install filter
	_, _, errno = syscall.Syscall(syscall.SYS_PRCTL,
		PR_SET_SECCOMP,
		SECCOMP_MODE_FILTER,
		uintptr(unsafe.Pointer(&prog)))
	if errno != 0 {
		return fmt.Errorf("prctl(PR_SET_SECCOMP): %v", errno)
	}

	return nil
}

// buildSeccompFilter builds a BPF filter from OCI seccomp config, via a
// seccomp.Db merged from the config's rules.
func buildSeccompFilter(config *spec.LinuxSeccomp) ([]sockFilter, error) {
	var filter []sockFilter

	// Get default action return value
	defaultRet, ok := actionToRet[config.DefaultAction]
	if !ok {
		return nil, fmt.Errorf("unknown default action: %s", config.DefaultAction)
	}

	db := seccomp.NewDB(seccomp.NewX86_64Arch(), seccompActionFor(config.DefaultAction))
	if err := seccomp.BuildFromOCI(db, config); err != nil {
		return nil, fmt.Errorf("merge seccomp rules: %w", err)
	}

	// Step 1: Load and check architecture
	filter = append(filter, bpfStmt(BPF_LD|BPF_W|BPF_ABS, offsetArch))

	// Allow only specified architectures (default to native)
	arches := config.Architectures
	if len(arches) == 0 {
		arches = []spec.Arch{spec.ArchX86_64}
	}

	var auditArches []uint32
	for _, arch := range arches {
		if auditArch, ok := archToAudit[arch]; ok {
			auditArches = append(auditArches, auditArch)
		}
	}

	// Jump over kill if arch matches any allowed. archChecks counts only
	// the checks actually emitted below, so jt lands on the kill
	// instruction regardless of how many unrecognized arches were
	// filtered out above.
	archChecks := len(auditArches)
	for i, auditArch := range auditArches {
		jt := uint8(archChecks - i)
		filter = append(filter, bpfJump(BPF_JMP|BPF_JEQ|BPF_K, auditArch, jt, 0))
	}
	// Kill if no arch matched
	filter = append(filter, bpfStmt(BPF_RET|BPF_K, SECCOMP_RET_KILL_PROCESS))

	// Step 2: Load syscall number
	filter = append(filter, bpfStmt(BPF_LD|BPF_W|BPF_ABS, offsetNR))

	// Step 3: one rule per unconditional entry, in ascending syscall
	// number order (db.Iterate's order). Entries carrying a conditional
	// chain are skipped here: translating a chain tree into BPF
	// argument-comparison sequences is out of this filter builder's
	// scope (spec.md §1; see also seccomp/doc.go).
	for _, e := range db.Iterate() {
		if e.HasChain {
			continue
		}
		entry, _ := db.Lookup(e.Num)
		ret, ok := seccompRetFor(entry.Action)
		if !ok {
			continue
		}
		filter = append(filter, bpfJump(BPF_JMP|BPF_JEQ|BPF_K, uint32(e.Num), 0, 1))
		filter = append(filter, bpfStmt(BPF_RET|BPF_K, ret))
	}

	// Step 4: Default action
	filter = append(filter, bpfStmt(BPF_RET|BPF_K, defaultRet))

	return filter, nil
}

// seccompActionFor translates an OCI action into the seccomp package's
// opaque Action, for use as a Db's default action.
func seccompActionFor(action spec.LinuxSeccompAction) seccomp.Action {
	switch action {
	case spec.ActKill:
		return seccomp.ActKill
	case spec.ActKillProcess:
		return seccomp.ActKillProcess
	case spec.ActKillThread:
		return seccomp.ActKillThread
	case spec.ActTrap:
		return seccomp.ActTrap
	case spec.ActTrace:
		return seccomp.ActTrace
	case spec.ActLog:
		return seccomp.ActLog
	case spec.ActErrno:
		return seccomp.ErrnoAction(1)
	default:
		return seccomp.ActAllow
	}
}

// seccompRetFor translates a seccomp.Action back into a BPF return
// value. Kept in this package rather than seccomp itself: seccomp must
// not import linux, since linux already imports seccomp.
func seccompRetFor(action seccomp.Action) (uint32, bool) {
	switch action.Kind() {
	case seccomp.ActKill, seccomp.ActKillThread:
		return SECCOMP_RET_KILL_THREAD, true
	case seccomp.ActKillProcess:
		return SECCOMP_RET_KILL_PROCESS, true
	case seccomp.ActTrap:
		return SECCOMP_RET_TRAP, true
	case seccomp.ActErrno:
		return SECCOMP_RET_ERRNO | uint32(action.Errno()), true
	case seccomp.ActTrace:
		return SECCOMP_RET_TRACE, true
	case seccomp.ActAllow:
		return SECCOMP_RET_ALLOW, true
	case seccomp.ActLog:
		return SECCOMP_RET_LOG, true
	default:
		return 0, false
	}
}

// bpfStmt creates a BPF statement.
func bpfStmt(code uint16, k uint32) sockFilter {
	return sockFilter{Code: code, Jt: 0, Jf: 0, K: k}
}

// bpfJump creates a BPF jump instruction.
func bpfJump(code uint16, k uint32, jt, jf uint8) sockFilter {
	return sockFilter{Code: code, Jt: jt, Jf: jf, K: k}
}

// SyscallNumber returns the syscall number for a name.
func SyscallNumber(name string) (int, bool) {
	nr := seccomp.NewX86_64Arch().ResolveName(name)
	if nr == seccomp.UnknownSyscall {
		return 0, false
	}
	return int(nr), true
}
