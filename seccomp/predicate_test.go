package seccomp

import "testing"

// ============================================================================
// PREDICATE ORDERING TESTS
// ============================================================================

func TestPredicateLess_ArgIndexDominates(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpGT, Datum: 100}
	p2 := Predicate{ArgIndex: 1, Op: OpEQ, Datum: 0}
	if !p1.less(p2) {
		t.Error("p1 with lower ArgIndex should sort first regardless of Op/Datum")
	}
}

func TestPredicateLess_OpBreaksArgIndexTie(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpEQ, Datum: 100}
	p2 := Predicate{ArgIndex: 0, Op: OpGE, Datum: 0}
	if !p1.less(p2) {
		t.Error("OpEQ should sort before OpGE at equal ArgIndex")
	}
}

func TestPredicateLess_DatumBreaksOpTie(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpEQ, Datum: 1}
	p2 := Predicate{ArgIndex: 0, Op: OpEQ, Datum: 2}
	if !p1.less(p2) {
		t.Error("lower Datum should sort first at equal (ArgIndex, Op)")
	}
}

// ============================================================================
// PREDICATE EQUALITY TESTS
// ============================================================================

func TestPredicateEqual_MaskIgnoredOutsideMaskedEQ(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpEQ, Datum: 5, Mask: 0xFF}
	p2 := Predicate{ArgIndex: 0, Op: OpEQ, Datum: 5, Mask: 0x0F}
	if !p1.equal(p2) {
		t.Error("EQ predicates with the same (ArgIndex, Datum) should be equal regardless of Mask")
	}
}

func TestPredicateEqual_MaskDistinguishesMaskedEQ(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpMaskedEQ, Datum: 5, Mask: 0xFF}
	p2 := Predicate{ArgIndex: 0, Op: OpMaskedEQ, Datum: 5, Mask: 0x0F}
	if p1.equal(p2) {
		t.Error("MASKED_EQ predicates with different Mask should be distinct")
	}
}

func TestPredicateEqual_SameMaskedEQMatches(t *testing.T) {
	p1 := Predicate{ArgIndex: 2, Op: OpMaskedEQ, Datum: 7, Mask: 0xFF00}
	p2 := Predicate{ArgIndex: 2, Op: OpMaskedEQ, Datum: 7, Mask: 0xFF00}
	if !p1.equal(p2) {
		t.Error("identical MASKED_EQ predicates should be equal")
	}
}

// TestPredicateOrdering_MaskIndependent verifies that two MASKED_EQ
// predicates sharing (ArgIndex, Op, Datum) but different masks sort
// adjacently rather than by mask value.
func TestPredicateOrdering_MaskIndependent(t *testing.T) {
	p1 := Predicate{ArgIndex: 0, Op: OpMaskedEQ, Datum: 5, Mask: 0xFF}
	p2 := Predicate{ArgIndex: 0, Op: OpMaskedEQ, Datum: 5, Mask: 0x0F}
	if p1.less(p2) || p2.less(p1) {
		t.Error("predicates differing only in Mask should not order relative to each other")
	}
}
