package seccomp

import (
	rerrors "runc-go/errors"
)

// AddSyscall's error taxonomy (spec.md §7) is carried by the runtime's
// existing typed error kind rather than a bespoke one: OUT_OF_MEMORY
// maps to ErrResource, ALREADY_EXISTS to ErrAlreadyExists, and FAULT
// to ErrInternal.

func outOfMemory(detail string) error {
	return rerrors.New(rerrors.ErrResource, "seccomp.add_syscall", detail)
}

func alreadyExists(detail string) error {
	return rerrors.New(rerrors.ErrAlreadyExists, "seccomp.add_syscall", detail)
}

func fault(detail string) error {
	return rerrors.New(rerrors.ErrInternal, "seccomp.add_syscall", detail)
}

// IsAlreadyExists reports whether err is AddSyscall's ALREADY_EXISTS
// case: the new rule conflicts with a stored rule.
func IsAlreadyExists(err error) bool { return rerrors.IsKind(err, rerrors.ErrAlreadyExists) }

// IsFault reports whether err is AddSyscall's FAULT case: an
// invariant-violating internal state was reached.
func IsFault(err error) bool { return rerrors.IsKind(err, rerrors.ErrInternal) }

// IsOutOfMemory reports whether err is AddSyscall's OUT_OF_MEMORY case.
func IsOutOfMemory(err error) bool { return rerrors.IsKind(err, rerrors.ErrResource) }
