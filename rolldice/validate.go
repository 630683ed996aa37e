package rolldice

const (
	MinDice     = 1
	MaxDice     = 100
	MinSides    = 2
	MaxSides    = 10000
	MaxModifier = 10000
)

// RollSpec is a range-checked roll. It can only be built by Validate.
type RollSpec struct {
	count    int
	sides    int
	modifier int
}

func (s RollSpec) Count() int    { return s.count }
func (s RollSpec) Sides() int    { return s.sides }
func (s RollSpec) Modifier() int { return s.modifier }

func (s RollSpec) String() string {
	return Notation{Count: s.count, Sides: s.sides, Modifier: s.modifier}.String()
}

// Validate checks the bounds of n in order (dice, sides, modifier) and
// returns a *RangeError for the first one violated.
func Validate(n Notation) (RollSpec, error) {
	if err := CheckCount(n.Count); err != nil {
		return RollSpec{}, err
	}
	if n.Sides < MinSides || n.Sides > MaxSides {
		return RollSpec{}, &RangeError{Field: FieldSides, Value: n.Sides, Min: MinSides, Max: MaxSides}
	}
	if n.Modifier < -MaxModifier || n.Modifier > MaxModifier {
		return RollSpec{}, &RangeError{Field: FieldModifier, Value: n.Modifier, Min: -MaxModifier, Max: MaxModifier}
	}
	return RollSpec{count: n.Count, sides: n.Sides, modifier: n.Modifier}, nil
}

// CheckCount validates a dice count on its own.
func CheckCount(count int) error {
	if count < MinDice || count > MaxDice {
		return &RangeError{Field: FieldDice, Value: count, Min: MinDice, Max: MaxDice}
	}
	return nil
}
