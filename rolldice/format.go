package rolldice

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the broadcast line for a roll made by name.
func Format(name string, spec RollSpec, result RollResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s rolled %dd%d", name, spec.count, spec.sides)
	if spec.modifier != 0 {
		b.WriteString(signed(spec.modifier))
	}
	b.WriteString(": ")

	if spec.count == 1 {
		fmt.Fprintf(&b, "<strong>%d</strong>", result.Rolls[0])
		if spec.modifier != 0 {
			fmt.Fprintf(&b, " %s = <strong>%d</strong>", signed(spec.modifier), result.FinalTotal)
		}
		return b.String()
	}

	b.WriteString("[")
	for i, r := range result.Rolls {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(r))
	}
	b.WriteString("]")
	if spec.modifier != 0 {
		fmt.Fprintf(&b, " = %d %s = <strong>%d</strong>", result.Total, signed(spec.modifier), result.FinalTotal)
	} else {
		fmt.Fprintf(&b, " = <strong>%d</strong>", result.Total)
	}
	return b.String()
}

// signed renders non-negative values with an explicit plus and negative
// values with their own minus sign.
func signed(v int) string {
	if v >= 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
