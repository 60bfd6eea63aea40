package easel

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{"opaque white", "rgba(255, 255, 255, 1)", Color{1, 1, 1, 1}},
		{"opaque black rgb", "rgb(0, 0, 0)", Color{0, 0, 0, 1}},
		{"half red", "rgba(255, 0, 0, 0.5)", Color{1, 0, 0, 0.5}},
		{"no spaces", "rgba(0,128,255,0.25)", Color{0, 128.0 / 255, 1, 0.25}},
		{"surrounding space", "  rgb(51, 102, 153)  ", Color{0.2, 0.4, 0.6, 1}},
		{"clamped", "rgba(300, -10, 0, 2)", Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.input, err)
			}
			assertNear(t, "R", got.R, tt.want.R)
			assertNear(t, "G", got.G, tt.want.G)
			assertNear(t, "B", got.B, tt.want.B)
			assertNear(t, "A", got.A, tt.want.A)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"red",
		"#ff0000",
		"rgba(255, 0, 0)",
		"rgb(255, 0, 0, 1)",
		"rgba(255, 0, x, 1)",
		"rgba(255, 0, 0, 1",
	} {
		if _, err := ParseColor(input); err == nil {
			t.Errorf("ParseColor(%q): expected error", input)
		}
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []Color{
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0.2, 0.4, 0.6, 0.5},
		{1, 0, 0, 0.25},
	} {
		got, err := ParseColor(FormatColor(c))
		if err != nil {
			t.Fatalf("ParseColor(FormatColor(%v)): %v", c, err)
		}
		// RGB survives to 8-bit precision, alpha exactly.
		if !approxEqual(got.R, c.R, 1.0/255) || !approxEqual(got.G, c.G, 1.0/255) ||
			!approxEqual(got.B, c.B, 1.0/255) || !approxEqual(got.A, c.A, epsilon) {
			t.Errorf("roundtrip %v = %v", c, got)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(Color{1, 0.5, 0, 1}); got != "rgba(255, 128, 0, 1)" {
		t.Errorf("FormatColor = %q", got)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Color{0.1, 0.2, 0.3, 1}.WithAlpha(0.5)
	if c.A != 0.5 || c.R != 0.1 {
		t.Errorf("WithAlpha = %v", c)
	}
}

func TestColorToRGBA(t *testing.T) {
	got := Color{1, 0, 0.5, 1}.toRGBA()
	if got.R != 255 || got.G != 0 || got.B != 127 || got.A != 255 {
		t.Errorf("toRGBA = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left of", 9, 40, false},
		{"below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"contained", Rect{25, 25, 10, 10}, true},
		{"sharing edge", Rect{100, 0, 50, 100}, true},
		{"disjoint", Rect{200, 200, 10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects is not symmetric for %+v", tt.other)
			}
		})
	}
}
