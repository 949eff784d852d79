package seccomp

import (
	"errors"
	"fmt"
	"log/slog"

	"runc-go/logging"
	"runc-go/spec"
)

// Option configures BuildFromOCI.
type Option func(*ociOptions)

type ociOptions struct {
	logger *slog.Logger
}

// WithLogger overrides the logger BuildFromOCI reports progress to. The
// default is logging.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *ociOptions) { o.logger = logger }
}

var ociOpMap = map[spec.LinuxSeccompOperator]Op{
	spec.OpNotEqual:     OpNE,
	spec.OpLessThan:     OpLT,
	spec.OpLessEqual:    OpLE,
	spec.OpEqualTo:      OpEQ,
	spec.OpGreaterEqual: OpGE,
	spec.OpGreaterThan:  OpGT,
	spec.OpMaskedEqual:  OpMaskedEQ,
}

var ociActionMap = map[spec.LinuxSeccompAction]Action{
	spec.ActKill:        ActKill,
	spec.ActKillProcess: ActKillProcess,
	spec.ActKillThread:  ActKillThread,
	spec.ActTrap:        ActTrap,
	spec.ActErrno:       ActErrno,
	spec.ActTrace:       ActTrace,
	spec.ActAllow:       ActAllow,
	spec.ActLog:         ActLog,
}

// ociAction resolves one OCI action into an FDB Action, folding in the
// errno payload for SCMP_ACT_ERRNO (spec.md §4.4's "emitted Action
// values are opaque to the FDB itself").
func ociAction(action spec.LinuxSeccompAction, errnoRet *uint) (Action, error) {
	base, ok := ociActionMap[action]
	if !ok {
		return 0, fmt.Errorf("seccomp: unrecognized action %q", action)
	}
	if action == spec.ActErrno {
		errno := uint16(1) // EPERM, OCI's default when ErrnoRet is unset.
		if errnoRet != nil {
			errno = uint16(*errnoRet)
		}
		return ErrnoAction(errno), nil
	}
	return base, nil
}

// BuildFromOCI populates db from an OCI runtime-spec seccomp config
// (spec.md §6's external-interfaces adapter): one AddSyscall call per
// (syscall name, rule) pair, in the order the config lists them, which
// is also the priority order any conflict is reported against.
//
// Only rules naming one of db.Arch()'s architectures are honored when
// cfg.Architectures is non-empty; an empty Architectures list applies
// to every arch, matching the OCI runtime spec's own default. A
// syscall name db.Arch() does not resolve is skipped with a logged
// warning rather than failing the whole build, since OCI seccomp
// profiles are commonly written against a union of architectures.
//
// A malformed rule (unrecognized action/operator, an out-of-range arg
// index) aborts immediately — that is a broken config, not a merge
// conflict. An ALREADY_EXISTS conflict from AddSyscall is different:
// OCI bundles commonly compose seccomp fragments that redeclare the
// same syscall, so those are logged, collected, and merging continues
// with the remaining rules; the accumulated conflicts are returned
// together via errors.Join once every rule has been tried.
func BuildFromOCI(db *Db, cfg *spec.LinuxSeccomp, opts ...Option) error {
	o := ociOptions{logger: logging.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if !ociArchApplies(db.Arch().Name(), cfg.Architectures) {
		o.logger.Debug("seccomp: no matching architecture in OCI config", "arch", db.Arch().Name())
		return nil
	}

	var conflicts []error

	for _, rule := range cfg.Syscalls {
		action, err := ociAction(rule.Action, rule.ErrnoRet)
		if err != nil {
			return err
		}

		chain, err := ociChain(db.Arch(), rule.Args)
		if err != nil {
			return err
		}

		for _, name := range rule.Names {
			num := db.Arch().ResolveName(name)
			if num == UnknownSyscall {
				o.logger.Warn("seccomp: unrecognized syscall in OCI config", "name", name, "arch", db.Arch().Name())
				continue
			}
			if err := db.AddSyscall(action, num, chain, 0); err != nil {
				if !IsAlreadyExists(err) {
					return fmt.Errorf("seccomp: adding rule for %q: %w", name, err)
				}
				o.logger.Debug("seccomp: rule conflicts with an earlier rule", "name", name, "error", err)
				conflicts = append(conflicts, fmt.Errorf("seccomp: rule for %q conflicts with an earlier rule: %w", name, err))
			}
		}
	}
	return errors.Join(conflicts...)
}

// ociChain converts one OCI rule's argument conditions into the Db's
// Arg slots. MASKED_EQ follows the OCI convention of (Value = mask,
// ValueTwo = comparand); every other operator uses Value alone.
func ociChain(arch Arch, args []spec.LinuxSeccompArg) ([]Arg, error) {
	if len(args) == 0 {
		return nil, nil
	}
	max := int(arch.ArgCountMax())
	chain := make([]Arg, max)
	for _, a := range args {
		if int(a.Index) >= max {
			return nil, fmt.Errorf("seccomp: arg index %d exceeds %s's max of %d", a.Index, arch.Name(), max)
		}
		op, ok := ociOpMap[a.Op]
		if !ok {
			return nil, fmt.Errorf("seccomp: unrecognized operator %q", a.Op)
		}
		datum, mask := a.Value, uint64(0)
		if op == OpMaskedEQ {
			mask, datum = a.Value, a.ValueTwo
		}
		chain[a.Index] = Arg{Valid: true, ArgIndex: uint8(a.Index), Op: op, Datum: datum, Mask: mask}
	}
	return chain, nil
}

func ociArchApplies(name string, archs []spec.Arch) bool {
	if len(archs) == 0 {
		return true
	}
	for _, a := range archs {
		if ociArchName(a) == name {
			return true
		}
	}
	return false
}

// ociArchName maps an OCI Arch constant to the name this package's Arch
// implementations use (spec.md only specifies x86_64 concretely; other
// architectures pass through their own SCMP_ARCH_* name unresolved).
func ociArchName(a spec.Arch) string {
	switch a {
	case spec.ArchX86_64:
		return "x86_64"
	default:
		return string(a)
	}
}
