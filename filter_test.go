package easel

import "testing"

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Filter
	}{
		{"empty", "", neutralFilter},
		{"opacity", "opacity(0.5)", Filter{Opacity: 0.5, Brightness: 1, Contrast: 1, Saturate: 1}},
		{"opacity percent", "opacity(40%)", Filter{Opacity: 0.4, Brightness: 1, Contrast: 1, Saturate: 1}},
		{"blur px", "blur(4px)", Filter{Opacity: 1, Blur: 4, Brightness: 1, Contrast: 1, Saturate: 1}},
		{"grayscale", "grayscale(1)", Filter{Opacity: 1, Grayscale: 1, Brightness: 1, Contrast: 1, Saturate: 1}},
		{"invert", "invert(1)", Filter{Opacity: 1, Brightness: 1, Contrast: 1, Saturate: 1, Invert: true}},
		{"invert off", "invert(0)", neutralFilter},
		{
			"combined",
			"opacity(0.2) brightness(1.5) contrast(120%) saturate(0)",
			Filter{Opacity: 0.2, Brightness: 1.5, Contrast: 1.2, Saturate: 0},
		},
		{"clamped opacity", "opacity(3)", Filter{Opacity: 1, Brightness: 1, Contrast: 1, Saturate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if err != nil {
				t.Fatalf("ParseFilter(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFilterErrors(t *testing.T) {
	for _, input := range []string{
		"sepia(1)",
		"opacity",
		"opacity(0.5",
		"opacity(abc)",
	} {
		if _, err := ParseFilter(input); err == nil {
			t.Errorf("ParseFilter(%q): expected error", input)
		}
	}
}

func TestFilterNeutral(t *testing.T) {
	if !neutralFilter.neutral() {
		t.Error("neutralFilter.neutral() = false")
	}
	// Opacity alone does not reprocess pixels.
	f, _ := ParseFilter("opacity(0.5)")
	if !f.neutral() {
		t.Error("opacity-only filter should be neutral")
	}
	f, _ = ParseFilter("blur(2)")
	if f.neutral() {
		t.Error("blur filter reported neutral")
	}
}
