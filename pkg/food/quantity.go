package food

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityPattern matches a leading decimal number followed by an optional
// free-text unit, e.g. "1.5 kg", "2 units", "10".
var quantityPattern = regexp.MustCompile(`^([0-9.]+)\s*(.*)$`)

// Quantity is the parsed form of a quantity string.
type Quantity struct {
	Value float64
	Unit  string
}

// ParseQuantity splits a quantity string into a numeric magnitude and a
// normalized unit token. The unit is lowercased and a single trailing "s" is
// stripped, so "Unit" and "units" compare equal. Irregular plurals do not
// reduce correctly; that is a known limitation of the naive singularization,
// not something to fix silently. ok is false when the string does not start
// with a decimal number, in which case the caller must not attempt a numeric
// merge.
func ParseQuantity(s string) (Quantity, bool) {
	match := quantityPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Quantity{}, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Quantity{}, false
	}

	unit := strings.ToLower(strings.TrimSpace(match[2]))
	unit = strings.TrimSuffix(unit, "s")

	return Quantity{Value: value, Unit: unit}, true
}

// MergeQuantities combines two quantity strings into one. When both parse and
// share a normalized unit (the empty unit included) the magnitudes are summed
// and the unit re-pluralized for sums other than exactly 1. Otherwise the two
// originals are preserved losslessly as "<a> + <b>". Total: every input pair
// yields a non-empty result.
func MergeQuantities(qty1, qty2 string) string {
	p1, ok1 := ParseQuantity(qty1)
	p2, ok2 := ParseQuantity(qty2)

	if ok1 && ok2 && p1.Unit == p2.Unit {
		total := p1.Value + p2.Value
		unit := p1.Unit
		if unit != "" && total != 1 {
			unit += "s"
		}
		rendered := strconv.FormatFloat(total, 'f', -1, 64)
		return strings.TrimSpace(rendered + " " + unit)
	}

	return qty1 + " + " + qty2
}
