package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Box{X: 0, Y: 0, W: 2, H: 1},
			b:        Box{X: 1.5, Y: 0, W: 1, H: 1},
			expected: true,
		},
		{
			name:     "touching right edge",
			a:        Box{X: 0, Y: 0, W: 2, H: 1},
			b:        Box{X: 2, Y: 0, W: 1, H: 1},
			expected: false,
		},
		{
			name:     "obstacle entering tile from the right",
			a:        Box{X: 2.75, Y: 4, W: 3, H: 1},
			b:        TileBox(2, 4),
			expected: true,
		},
		{
			name:     "exactly adjacent to tile",
			a:        Box{X: 3, Y: 4, W: 3, H: 1},
			b:        TileBox(2, 4),
			expected: false,
		},
		{
			name:     "different rows",
			a:        Box{X: 0, Y: 1, W: 3, H: 1},
			b:        TileBox(1, 2),
			expected: false,
		},
		{
			name:     "tile inside long obstacle",
			a:        Box{X: -1.5, Y: 3, W: 3, H: 1},
			b:        TileBox(0, 3),
			expected: true,
		},
		{
			name:     "tiny overlap",
			a:        Box{X: 0.999, Y: 0, W: 1, H: 1},
			b:        TileBox(1, 0),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestTileBox(t *testing.T) {
	b := TileBox(7, 2)
	if b.X != 7 || b.Y != 2 || b.W != 1 || b.H != 1 {
		t.Errorf("TileBox(7, 2) = %+v, expected {7 2 1 1}", b)
	}
	if b.Right() != 8 || b.Top() != 3 {
		t.Errorf("Right/Top = %v/%v, expected 8/3", b.Right(), b.Top())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below lo
		{15, 0, 10, 10}, // above hi
		{0, 0, 10, 0},   // at lo
		{10, 0, 10, 10}, // at hi
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{2.5, 1.5, 4.5, 2.5},
		{0.3, 1.5, 4.5, 1.5},
		{9.0, 1.5, 4.5, 4.5},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}
