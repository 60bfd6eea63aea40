package easel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a parsed CSS-style image filter string such as
// "opacity(0.2) grayscale(1) blur(4)". Functions not listed in the string
// keep their neutral value.
type Filter struct {
	Opacity    float64 // 0..1, 1 = opaque
	Blur       float64 // gaussian sigma in pixels, 0 = off
	Grayscale  float64 // 0..1 blend toward grayscale
	Brightness float64 // 1 = unchanged
	Contrast   float64 // 1 = unchanged
	Saturate   float64 // 1 = unchanged
	Invert     bool
}

// neutralFilter is the parse result of an empty filter string.
var neutralFilter = Filter{Opacity: 1, Brightness: 1, Contrast: 1, Saturate: 1}

// ParseFilter decodes a filter string. Unknown function names are an
// error; an empty string yields the neutral filter.
func ParseFilter(s string) (Filter, error) {
	f := neutralFilter
	s = strings.TrimSpace(s)
	if s == "" {
		return f, nil
	}

	for _, part := range strings.Fields(s) {
		open := strings.IndexByte(part, '(')
		if open < 0 || !strings.HasSuffix(part, ")") {
			return f, fmt.Errorf("parse filter: malformed function %q", part)
		}
		name := part[:open]
		arg := part[open+1 : len(part)-1]
		val, err := parseFilterValue(arg)
		if err != nil {
			return f, fmt.Errorf("parse filter: %s: %w", name, err)
		}

		switch name {
		case "opacity":
			f.Opacity = clamp01(val)
		case "blur":
			f.Blur = val
		case "grayscale":
			f.Grayscale = clamp01(val)
		case "brightness":
			f.Brightness = val
		case "contrast":
			f.Contrast = val
		case "saturate":
			f.Saturate = val
		case "invert":
			f.Invert = val >= 0.5
		default:
			return f, fmt.Errorf("parse filter: unknown function %q", name)
		}
	}
	return f, nil
}

// parseFilterValue parses a filter argument: a number, a percentage, or a
// pixel length.
func parseFilterValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100, err
	}
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(s, 64)
}

// neutral reports whether the filter changes pixels at all. Opacity is
// excluded: it is applied at draw time through the color scale, not by
// reprocessing the image.
func (f Filter) neutral() bool {
	return f.Blur == 0 && f.Grayscale == 0 && f.Brightness == 1 &&
		f.Contrast == 1 && f.Saturate == 1 && !f.Invert
}

// filterKey identifies a processed image in the cache.
type filterKey struct {
	img    *ebiten.Image
	filter string
}

// filterCache holds CPU-filtered variants of source images. Filtering
// pulls pixels off the GPU and runs the image pipeline on the CPU, so
// results are cached per (image, filter string) pair.
type filterCache struct {
	entries map[filterKey]*ebiten.Image
}

// apply returns the image with the filter string's pixel effects applied,
// plus the opacity to draw it with. Unparseable filter strings fall back
// to the unfiltered image at full opacity.
func (fc *filterCache) apply(img *ebiten.Image, filterStr string) (*ebiten.Image, float64) {
	if filterStr == "" {
		return img, 1
	}
	f, err := ParseFilter(filterStr)
	if err != nil {
		return img, 1
	}
	if f.neutral() {
		return img, f.Opacity
	}

	key := filterKey{img: img, filter: filterStr}
	if cached, ok := fc.entries[key]; ok {
		return cached, f.Opacity
	}

	src := imageToNRGBA(img)
	if f.Brightness != 1 {
		src = imaging.AdjustBrightness(src, (f.Brightness-1)*100)
	}
	if f.Contrast != 1 {
		src = imaging.AdjustContrast(src, (f.Contrast-1)*100)
	}
	if f.Saturate != 1 {
		src = imaging.AdjustSaturation(src, (f.Saturate-1)*100)
	}
	if f.Grayscale > 0 {
		gray := imaging.Grayscale(src)
		if f.Grayscale >= 1 {
			src = gray
		} else {
			src = imaging.Overlay(src, gray, gray.Bounds().Min, f.Grayscale)
		}
	}
	if f.Invert {
		src = imaging.Invert(src)
	}
	if f.Blur > 0 {
		src = imaging.Blur(src, f.Blur)
	}

	out := ebiten.NewImageFromImage(src)
	if fc.entries == nil {
		fc.entries = make(map[filterKey]*ebiten.Image)
	}
	fc.entries[key] = out
	return out, f.Opacity
}
