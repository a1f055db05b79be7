package world

import "testing"

func TestRectCenter(t *testing.T) {
	tests := []struct {
		rect  Rect
		wantX int
		wantY int
	}{
		{NewRect(0, 0, 6, 6), 3, 3},
		{NewRect(10, 4, 7, 9), 13, 8},
		{NewRect(1, 1, 2, 2), 2, 2},
	}

	for _, tt := range tests {
		x, y := tt.rect.Center()
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%+v.Center() = (%d,%d), want (%d,%d)", tt.rect, x, y, tt.wantX, tt.wantY)
		}
		if !tt.rect.Contains(x, y) {
			t.Errorf("%+v should contain its own center (%d,%d)", tt.rect, x, y)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	base := NewRect(10, 10, 6, 6) // 10..16

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(12, 12, 6, 6), true},
		{"contained", NewRect(11, 11, 2, 2), true},
		{"sharing wall column", NewRect(16, 10, 6, 6), true},
		{"sharing corner", NewRect(16, 16, 6, 6), true},
		{"one cell apart", NewRect(17, 10, 6, 6), false},
		{"far away", NewRect(40, 40, 6, 6), false},
		{"above", NewRect(10, 0, 6, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("reverse Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContainsFloorOnly(t *testing.T) {
	r := NewRect(2, 3, 4, 4)

	if r.Contains(2, 4) {
		t.Error("wall column x1 should not be floor")
	}
	if r.Contains(4, 3) {
		t.Error("wall row y1 should not be floor")
	}
	if !r.Contains(3, 4) {
		t.Error("(x1+1, y1+1) should be floor")
	}
	if !r.Contains(6, 7) {
		t.Error("(x2, y2) should be floor")
	}
	if r.Contains(7, 7) {
		t.Error("x2+1 should be outside")
	}
}
