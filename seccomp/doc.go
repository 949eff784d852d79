// Package seccomp builds and maintains the filter database (FDB): the
// in-memory accumulated syscall-filtering policy for one architecture.
//
// A Db holds an ordered sequence of syscall entries. Each entry is
// either an unconditional action or the root of a chain tree — a
// decision DAG of argument predicates with leaf actions. AddSyscall is
// the single mutating operation: it merges a new rule into the Db,
// normalizing operators, splicing predicates into shared decision
// points, and collapsing redundant subtrees so the policy stays
// minimal and internally consistent.
//
// Bytecode emission, kernel installation, and full per-architecture
// syscall tables are out of scope here; see the Arch and Resolver
// interfaces for the contract an emitter or a complete syscall table
// would need to satisfy.
package seccomp
