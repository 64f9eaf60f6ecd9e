// Package grades maps numeric route grade codes to display labels.
//
// Top-rope grades use the Yosemite decimal scale: codes are the
// integer part of "5.N" for N in 5..15, with a .25 offset below the
// integer meaning "minus" and above meaning "plus". Minus variants
// only exist from 5.10 up and plus variants from 5.9 up, matching how
// the scale is actually used. Bouldering V-grades are offset by 1000:
// code 1000+i is "Vi" for i in 0..13, each with minus and plus
// variants at +-0.25.
//
// The tables are generated once at init. A code outside the tables is
// a configuration bug, not a runtime condition.
package grades

import "fmt"

// Choice is a (code, label) pair, ordered easiest to hardest.
type Choice struct {
	Code  float64
	Label string
}

var (
	topRope    []Choice
	bouldering []Choice
	labels     map[float64]string
)

func init() {
	labels = make(map[float64]string)

	add := func(table *[]Choice, code float64, label string) {
		*table = append(*table, Choice{Code: code, Label: label})
		labels[code] = label
	}

	for i := 5; i <= 15; i++ {
		if i > 9 {
			add(&topRope, float64(i)-0.25, fmt.Sprintf("5.%d-", i))
		}
		add(&topRope, float64(i), fmt.Sprintf("5.%d", i))
		if i >= 9 {
			add(&topRope, float64(i)+0.25, fmt.Sprintf("5.%d+", i))
		}
	}

	for i := 0; i <= 13; i++ {
		add(&bouldering, float64(1000+i)-0.25, fmt.Sprintf("V%d-", i))
		add(&bouldering, float64(1000+i), fmt.Sprintf("V%d", i))
		add(&bouldering, float64(1000+i)+0.25, fmt.Sprintf("V%d+", i))
	}
}

// Display returns the label for a grade code, or "" if the code is
// not in the generated tables.
func Display(code float64) string {
	return labels[code]
}

// Valid reports whether code is a known grade for the given route
// type ("top_rope" or "bouldering"). Grade codes of the two
// disciplines never overlap, so validity is just table membership on
// the right side of the 1000 offset.
func Valid(routeType string, code float64) bool {
	label, ok := labels[code]
	if !ok || label == "" {
		return false
	}
	if routeType == "bouldering" {
		return code >= 1000
	}
	return code < 1000
}

// Choices returns the ordered grade table for a route type. The
// returned slice is shared; callers must not modify it.
func Choices(routeType string) []Choice {
	if routeType == "bouldering" {
		return bouldering
	}
	return topRope
}
