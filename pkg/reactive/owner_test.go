package reactive

import "testing"

func TestOwnerDisposeOrder(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	var order []string
	root.OnCleanup(func() { order = append(order, "root-1") })
	root.OnCleanup(func() { order = append(order, "root-2") })
	child.OnCleanup(func() { order = append(order, "child") })

	if root.Children() != 1 {
		t.Fatalf("expected 1 child, got %d", root.Children())
	}

	root.Dispose()

	want := []string{"child", "root-2", "root-1"}
	if len(order) != len(want) {
		t.Fatalf("cleanup order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup order = %v, want %v", order, want)
			break
		}
	}
	if !child.Disposed() || !root.Disposed() {
		t.Error("both owners should be disposed")
	}
}

func TestOwnerDisposeIdempotent(t *testing.T) {
	o := NewOwner(nil)
	calls := 0
	o.OnCleanup(func() { calls++ })

	o.Dispose()
	o.Dispose()
	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
}

func TestOwnerCleanupAfterDispose(t *testing.T) {
	o := NewOwner(nil)
	o.Dispose()

	ran := false
	o.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerChildDetaches(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	child.Dispose()
	if root.Children() != 0 {
		t.Errorf("disposed child should detach, got %d children", root.Children())
	}
	if root.Disposed() {
		t.Error("parent should not be disposed by child")
	}
	if child.Parent() != root {
		t.Error("Parent() should still report the original parent")
	}
}
