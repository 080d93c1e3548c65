package chart

import "testing"

func TestLargestIndex(t *testing.T) {
	tests := []struct {
		name  string
		areas []float64
		want  int
	}{
		{"empty", nil, -1},
		{"single", []float64{42}, 0},
		{"larger later wins", []float64{100, 250}, 1},
		{"larger earlier wins", []float64{250, 100}, 0},
		{"tie keeps first", []float64{100, 100, 50}, 0},
		{"no measurable box", []float64{-1, -1}, -1},
		{"zero area skipped", []float64{0, 7}, 1},
		{"unmeasured around winner", []float64{-1, 30, -1, 200, 150}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := largestIndex(tt.areas); got != tt.want {
				t.Errorf("largestIndex(%v) = %d, want %d", tt.areas, got, tt.want)
			}
		})
	}
}
