package raycast

import (
	"testing"

	"consolefps/internal/frame"
)

func TestWallShade(t *testing.T) {
	const depth = 16.0
	tests := []struct {
		name     string
		distance float64
		boundary bool
		want     rune
	}{
		{"near", 1, false, ShadeSolid},
		{"quarter inclusive", depth / 4, false, ShadeSolid},
		{"just past quarter", depth/4 + 1e-9, false, ShadeDense},
		{"third inclusive", depth / 3, false, ShadeDense},
		{"half inclusive", depth / 2, false, ShadeMedium},
		{"just past half", depth/2 + 1e-9, false, ShadeLight},
		{"just short of depth", depth - 1e-9, false, ShadeLight},
		{"depth", depth, false, ShadeNone},
		{"beyond depth", depth + 1, false, ShadeNone},
		{"boundary overrides", 1, true, ShadeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WallShade(tt.distance, depth, tt.boundary); got != tt.want {
				t.Errorf("WallShade(%v, %v, %v) = %q, want %q", tt.distance, depth, tt.boundary, got, tt.want)
			}
		})
	}
}

func TestFloorShade(t *testing.T) {
	const h = 40
	tests := []struct {
		y    int
		want rune
	}{
		{39, '#'},
		{32, 'x'},
		{26, '.'},
		{23, '-'},
		{20, ' '},
	}
	for _, tt := range tests {
		if got := FloorShade(tt.y, h); got != tt.want {
			t.Errorf("FloorShade(%d, %d) = %q, want %q", tt.y, h, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	ceiling, floor := Slice(40, 8, 0.1)
	if ceiling != 15 || floor != 25 {
		t.Errorf("Slice(40, 8) = %d, %d, want 15, 25", ceiling, floor)
	}
	ceiling, floor = Slice(40, 0, 0.1)
	if ceiling >= 0 || ceiling+floor != 40 {
		t.Errorf("Slice(40, 0) = %d, %d, want the minimum distance slice", ceiling, floor)
	}
	ceiling, floor = Slice(40, 16, 0.1)
	if ceiling+floor != 40 {
		t.Errorf("Slice(40, 16) not symmetric: %d + %d", ceiling, floor)
	}
}

func TestDrawColumn(t *testing.T) {
	buf, err := frame.New(3, 40)
	if err != nil {
		t.Fatal(err)
	}
	buf.Fill('?')
	p := defaultParams()
	DrawColumn(buf, 1, Result{Distance: 3, Hit: true}, p)

	ceiling, floor := Slice(40, 3, p.Step)
	for y := 0; y < 40; y++ {
		var want rune
		switch {
		case y <= ceiling:
			want = Sky
		case y <= floor:
			want = ShadeSolid
		default:
			want = FloorShade(y, 40)
		}
		if got := buf.At(1, y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
		if buf.At(0, y) != '?' || buf.At(2, y) != '?' {
			t.Fatalf("row %d: neighbouring columns touched", y)
		}
	}
}
