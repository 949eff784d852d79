package seccomp

import "sort"

// Db is the filter database: a per-architecture, ordered collection of
// syscall entries plus the architecture-wide default action (spec.md
// §3). A Db is single-writer, multi-reader, with no internal
// synchronization: AddSyscall and Destroy require exclusive access;
// Iterate is safe to call concurrently only against a quiescent Db
// (spec.md §5).
type Db struct {
	arch          Arch
	defaultAction Action
	entries       []*Entry
	arena         arena
}

// NewDB allocates an empty Db pinned to arch with defaultAction
// (spec.md §4.2's db_new). defaultAction can never change afterward.
func NewDB(arch Arch, defaultAction Action) *Db {
	return &Db{arch: arch, defaultAction: defaultAction}
}

// Arch returns the Db's architecture.
func (db *Db) Arch() Arch { return db.arch }

// DefaultAction returns the action applied when no entry matches.
func (db *Db) DefaultAction() Action { return db.defaultAction }

// SetMaxNodes caps the arena's total live node count; AddSyscall
// reports OUT_OF_MEMORY rather than exceed it. Zero (the default)
// means unbounded — Go's garbage collector gives this package no
// allocator that can fail on its own, so without a cap OUT_OF_MEMORY
// never fires (see DESIGN.md).
func (db *Db) SetMaxNodes(n int) { db.arena.maxNodes = n }

// Len returns the number of syscall entries currently stored.
func (db *Db) Len() int { return len(db.entries) }

// Destroy walks every entry, frees its chain tree, and frees the entry
// list (spec.md §4.2's db_destroy). It never fails.
func (db *Db) Destroy() {
	for _, e := range db.entries {
		db.arena.freeSubtree(e.chain)
	}
	db.entries = nil
	db.arena = arena{}
}

// find returns the index of the entry for num and true, or the index
// at which one would be inserted and false (spec.md §4.3 Phase B's
// ordered walk, which I3 makes a binary search safe to use here).
func (db *Db) find(num int32) (idx int, found bool) {
	idx = sort.Search(len(db.entries), func(i int) bool {
		return db.entries[i].Num >= num
	})
	found = idx < len(db.entries) && db.entries[idx].Num == num
	return idx, found
}

// Lookup returns the stored entry for num, if any.
func (db *Db) Lookup(num int32) (*Entry, bool) {
	idx, found := db.find(num)
	if !found {
		return nil, false
	}
	return db.entries[idx], true
}

// IterEntry is one observed row from Iterate.
type IterEntry struct {
	Num      int32
	Priority uint32
	HasChain bool
}

// Iterate exposes entries in ascending Num order with their priority
// (spec.md §4.4): an emitter would place higher-priority (shorter
// chain) filters first.
func (db *Db) Iterate() []IterEntry {
	out := make([]IterEntry, len(db.entries))
	for i, e := range db.entries {
		out[i] = IterEntry{Num: e.Num, Priority: e.Priority, HasChain: e.HasChain()}
	}
	return out
}
