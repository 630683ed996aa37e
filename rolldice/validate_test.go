package rolldice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	spec, err := Validate(Notation{Count: 2, Sides: 6, Modifier: -3})
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Count())
	assert.Equal(t, 6, spec.Sides())
	assert.Equal(t, -3, spec.Modifier())

	for _, n := range []Notation{
		{Count: 1, Sides: 2},
		{Count: 100, Sides: 10000, Modifier: 10000},
		{Count: 1, Sides: 6, Modifier: -10000},
	} {
		_, err := Validate(n)
		assert.NoError(t, err, "notation %v", n)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		input   Notation
		field   Field
		message string
	}{
		{"zero dice", Notation{Count: 0, Sides: 6}, FieldDice, "Number of dice must be between 1 and 100."},
		{"too many dice", Notation{Count: 101, Sides: 6}, FieldDice, "Number of dice must be between 1 and 100."},
		{"one side", Notation{Count: 1, Sides: 1}, FieldSides, "Number of sides must be between 2 and 10000."},
		{"too many sides", Notation{Count: 1, Sides: 10001}, FieldSides, "Number of sides must be between 2 and 10000."},
		{"modifier too high", Notation{Count: 1, Sides: 6, Modifier: 10001}, FieldModifier, "Modifier must be between -10000 and 10000."},
		{"modifier too low", Notation{Count: 1, Sides: 6, Modifier: -10001}, FieldModifier, "Modifier must be between -10000 and 10000."},
		{"first violation wins", Notation{Count: 0, Sides: 1, Modifier: 20000}, FieldDice, "Number of dice must be between 1 and 100."},
		{"sides before modifier", Notation{Count: 1, Sides: 1, Modifier: 20000}, FieldSides, "Number of sides must be between 2 and 10000."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.input)
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestIsUserError(t *testing.T) {
	_, syntaxErr := Parse("abc")
	_, rangeErr := Validate(Notation{Count: 0, Sides: 6})

	assert.True(t, IsUserError(syntaxErr))
	assert.True(t, IsUserError(rangeErr))
	assert.False(t, IsUserError(assert.AnError))
}
