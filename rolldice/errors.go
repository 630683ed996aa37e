package rolldice

import (
	"errors"
	"fmt"
)

// Usage is the hint returned with every notation syntax error.
const Usage = "Invalid dice notation. Use format like: /roll d6, /roll 2d20, /roll 3d10+5"

// Field names a bounded component of a roll.
type Field string

const (
	FieldDice     Field = "dice"
	FieldSides    Field = "sides"
	FieldModifier Field = "modifier"
)

// NotationSyntaxError reports input that does not match the dice grammar.
type NotationSyntaxError struct {
	Input string
}

func (e *NotationSyntaxError) Error() string {
	return Usage
}

// RangeError reports a parsed field outside its allowed bounds.
type RangeError struct {
	Field Field
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	if e.Field == FieldModifier {
		return fmt.Sprintf("Modifier must be between %d and %d.", e.Min, e.Max)
	}
	return fmt.Sprintf("Number of %s must be between %d and %d.", e.Field, e.Min, e.Max)
}

// IsUserError reports whether err was caused by the caller's input and
// should be shown to them instead of being treated as an internal failure.
func IsUserError(err error) bool {
	var syntaxErr *NotationSyntaxError
	var rangeErr *RangeError
	return errors.As(err, &syntaxErr) || errors.As(err, &rangeErr)
}
