package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestAbs(t *testing.T) {
	tests := []struct{ in, want int }{
		{5, 5},
		{-5, 5},
		{0, 0},
	}
	for _, tc := range tests {
		if got := Abs(tc.in); got != tc.want {
			t.Errorf("Abs(%d) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionRotate)
	if !f.Has(ActionLeft) || !f.Has(ActionRotate) {
		t.Fatalf("FrameOf() missing actions: %v", f.Actions)
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) = true, expected false")
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear() left %d actions", len(f.Actions))
	}

	var zero InputFrame
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set() on zero frame should allocate")
	}
}
