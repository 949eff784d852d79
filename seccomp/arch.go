package seccomp

import "math"

// ArgCountMaxLimit is the upper bound on an Arch's argument arity.
const ArgCountMaxLimit = 6

// UnknownSyscall is the ERROR sentinel Resolver.ResolveName returns
// for a name it does not recognize. It is deliberately far from any
// real pseudo-syscall number (architectures use small negative values
// such as -1 or -10001 for those) so it can never collide with one.
const UnknownSyscall int32 = math.MinInt32

// Arch describes a syscall-filter target architecture: its name
// resolver and its argument arity bound. Implementations are immutable
// and are never mutated by a Db.
type Arch interface {
	// Name identifies the architecture; compared only for display.
	Name() string
	// ArgCountMax returns the number of usable argument slots in a
	// chain, in [1, ArgCountMaxLimit].
	ArgCountMax() uint8

	Resolver
}

// Resolver maps syscall names to numbers and back for one
// architecture. Pseudo-syscalls (not implemented on this arch) use
// architecture-specific negative numbers, so the mapping is total over
// a known vocabulary even for syscalls the kernel doesn't have.
type Resolver interface {
	// ResolveName returns the syscall number for name, or
	// UnknownSyscall if name is not in the table.
	ResolveName(name string) int32
	// ResolveNum returns the syscall name registered for num.
	ResolveNum(num int32) (name string, ok bool)
	// Iterate returns the name at dense index i in an unspecified but
	// stable order, or ("", false) once i runs past the table.
	Iterate(i int) (name string, ok bool)
}

// nameNum is one (name, number) pair in a syscall table.
type nameNum struct {
	name string
	num  int32
}

// tableArch is a Resolver/Arch backed by an ordered sequence of
// (name, num) pairs, looked up linearly on both name and number — the
// representation spec.md §4.1 describes: "an ordered sequence of
// (name, num) pairs ... lookup is linear on both name and number."
type tableArch struct {
	name        string
	argCountMax uint8
	table       []nameNum
}

func newTableArch(name string, argCountMax uint8, table []nameNum) *tableArch {
	return &tableArch{name: name, argCountMax: argCountMax, table: table}
}

func (a *tableArch) Name() string      { return a.name }
func (a *tableArch) ArgCountMax() uint8 { return a.argCountMax }

func (a *tableArch) ResolveName(name string) int32 {
	for _, e := range a.table {
		if e.name == name {
			return e.num
		}
	}
	return UnknownSyscall
}

func (a *tableArch) ResolveNum(num int32) (string, bool) {
	for _, e := range a.table {
		if e.num == num {
			return e.name, true
		}
	}
	return "", false
}

func (a *tableArch) Iterate(i int) (string, bool) {
	if i < 0 || i >= len(a.table) {
		return "", false
	}
	return a.table[i].name, true
}
