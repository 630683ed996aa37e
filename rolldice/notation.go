package rolldice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var notationRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)([+-]\d+)?$`)

// Notation is a parsed but not yet range-checked dice expression.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// Parse reads dice notation of the form [count]d<sides>[(+|-)modifier].
// The count defaults to 1 and the modifier to 0.
func Parse(input string) (Notation, error) {
	m := notationRegex.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return Notation{}, &NotationSyntaxError{Input: input}
	}

	n := Notation{Count: 1, Sides: atoi(m[2])}
	if m[1] != "" {
		n.Count = atoi(m[1])
	}
	if m[3] != "" {
		n.Modifier = atoi(m[3])
	}
	return n, nil
}

func (n Notation) String() string {
	s := fmt.Sprintf("%dd%d", n.Count, n.Sides)
	if n.Modifier != 0 {
		s += signed(n.Modifier)
	}
	return s
}

// atoi converts a digit run that the notation regexp already matched.
// Values too large for an int saturate so range checks reject them.
func atoi(s string) int {
	v, _ := strconv.ParseInt(s, 10, 0)
	return int(v)
}
