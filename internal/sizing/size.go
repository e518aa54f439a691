// Package sizing turns declared rug sizes such as "80x150 cm" into scale
// factors and SKU lookups.
package sizing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[x\x{00d7}\x{0445}]\s*(\d+(?:\.\d+)?)`)
	unitPattern = regexp.MustCompile(`(?i)cm|\x{0441}\x{043c}`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// ParseSides extracts width and height from a free-text label. It accepts
// "x", "×" and the Cyrillic "х" as separators, an optional "cm" unit and
// comma decimals. ok is false when no pair is found or either side is not
// positive.
func ParseSides(label string) (w, h float64, ok bool) {
	cleaned := unitPattern.ReplaceAllString(label, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(cleaned))
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	h, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	if w <= 0 || h <= 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0, false
	}
	return w, h, true
}

// ParseArea returns width*height for label.
func ParseArea(label string) (float64, bool) {
	w, h, ok := ParseSides(label)
	if !ok {
		return 0, false
	}
	return w * h, true
}

// ScaleFactor is the uniform linear magnification from base to target:
// sqrt(area(target) / area(base)). It falls back to 1 whenever either label
// cannot be parsed.
func ScaleFactor(base, target string) float64 {
	baseArea, ok := ParseArea(base)
	if !ok || baseArea <= 0 {
		return 1
	}
	targetArea, ok := ParseArea(target)
	if !ok || targetArea <= 0 {
		return 1
	}
	return math.Sqrt(targetArea / baseArea)
}

// NormalizeKey folds a label to the compact form used to match catalogue
// variants: lower case, no unit, no whitespace, "x" as separator.
func NormalizeKey(label string) string {
	s := strings.ToLower(label)
	s = unitPattern.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, "")
	s = strings.NewReplacer("×", "x", "х", "x").Replace(s)
	return strings.TrimSpace(s)
}
