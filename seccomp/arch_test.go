package seccomp

import "testing"

// testArch is a small, deterministic Arch used by add_test.go and
// db_test.go so those tests don't depend on the real x86_64 table.
func testArch() Arch {
	return newTableArch("test", 6, []nameNum{
		{"read", 0},
		{"write", 1},
		{"open", 2},
		{"close", 3},
		{"ioctl", 16},
		{"mmap", 9},
	})
}

// ============================================================================
// TABLE ARCH TESTS
// ============================================================================

func TestTableArch_ResolveName(t *testing.T) {
	a := testArch()
	if got := a.ResolveName("write"); got != 1 {
		t.Errorf("ResolveName(write) = %d, want 1", got)
	}
	if got := a.ResolveName("nonexistent"); got != UnknownSyscall {
		t.Errorf("ResolveName(nonexistent) = %d, want UnknownSyscall", got)
	}
}

func TestTableArch_ResolveNum(t *testing.T) {
	a := testArch()
	name, ok := a.ResolveNum(2)
	if !ok || name != "open" {
		t.Errorf("ResolveNum(2) = (%q, %v), want (open, true)", name, ok)
	}
	if _, ok := a.ResolveNum(999); ok {
		t.Error("ResolveNum(999) should not be found")
	}
}

func TestTableArch_Iterate(t *testing.T) {
	a := testArch()
	seen := map[string]bool{}
	for i := 0; ; i++ {
		name, ok := a.Iterate(i)
		if !ok {
			break
		}
		seen[name] = true
	}
	if len(seen) != 6 {
		t.Errorf("Iterate surfaced %d names, want 6", len(seen))
	}
	if _, ok := a.Iterate(-1); ok {
		t.Error("Iterate(-1) should return false")
	}
}

func TestX86_64Arch_ArgCountMax(t *testing.T) {
	a := NewX86_64Arch()
	if a.ArgCountMax() != ArgCountMaxLimit {
		t.Errorf("NewX86_64Arch().ArgCountMax() = %d, want %d", a.ArgCountMax(), ArgCountMaxLimit)
	}
	if a.Name() != "x86_64" {
		t.Errorf("NewX86_64Arch().Name() = %q, want x86_64", a.Name())
	}
}

func TestX86_64Arch_ResolvesCommonSyscalls(t *testing.T) {
	a := NewX86_64Arch()
	tests := []struct {
		name string
		num  int32
	}{
		{"read", 0},
		{"write", 1},
		{"close", 3},
		{"execve", 59},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ResolveName(tt.name); got != tt.num {
				t.Errorf("ResolveName(%s) = %d, want %d", tt.name, got, tt.num)
			}
		})
	}
}
