package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"sub-unit overlap", NewRect(0, 0, 10, 10), NewRect(9.5, 9.5, 10, 10), true},
		{"zero height never overlaps", NewRect(0, 0, 10, 0), NewRect(0, 0, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric: %v", got)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if !r.Contains(14.9, 14.9) {
		t.Error("point just inside bottom-right should be inside")
	}
	if r.Contains(15, 12) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(9.99, 12) {
		t.Error("point left of rect should be outside")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(100, 50, 40, 30)
	if r != NewRect(80, 35, 40, 30) {
		t.Errorf("CenteredRect() = %+v", r)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 40, 30).Inset(5)
	if r != NewRect(5, 5, 30, 20) {
		t.Errorf("Inset(5) = %+v", r)
	}

	collapsed := NewRect(0, 0, 4, 4).Inset(10)
	if collapsed.W != 0 || collapsed.H != 0 || collapsed.X != 2 || collapsed.Y != 2 {
		t.Errorf("over-inset rect should collapse to its centre, got %+v", collapsed)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if ClampF(5.5, 0, 10) != 5.5 {
		t.Error("ClampF should not change in-range value")
	}
	if ClampF(-1.5, 0, 10) != 0 {
		t.Error("ClampF should clamp to min")
	}
	if ClampF(11.5, 0, 10) != 10 {
		t.Error("ClampF should clamp to max")
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min failed")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max failed")
	}
}
