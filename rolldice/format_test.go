package rolldice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		spec   Notation
		rolls  []int
		output string
	}{
		{
			name:   "single die",
			spec:   Notation{Count: 1, Sides: 20},
			rolls:  []int{17},
			output: "Alice rolled 1d20: <strong>17</strong>",
		},
		{
			name:   "single die with bonus",
			spec:   Notation{Count: 1, Sides: 20, Modifier: 5},
			rolls:  []int{17},
			output: "Alice rolled 1d20+5: <strong>17</strong> +5 = <strong>22</strong>",
		},
		{
			name:   "single die with penalty",
			spec:   Notation{Count: 1, Sides: 20, Modifier: -5},
			rolls:  []int{3},
			output: "Alice rolled 1d20-5: <strong>3</strong> -5 = <strong>-2</strong>",
		},
		{
			name:   "several dice",
			spec:   Notation{Count: 3, Sides: 6},
			rolls:  []int{1, 4, 6},
			output: "Alice rolled 3d6: [1, 4, 6] = <strong>11</strong>",
		},
		{
			name:   "several dice with bonus",
			spec:   Notation{Count: 2, Sides: 6, Modifier: 3},
			rolls:  []int{2, 5},
			output: "Alice rolled 2d6+3: [2, 5] = 7 +3 = <strong>10</strong>",
		},
		{
			name:   "several dice with penalty",
			spec:   Notation{Count: 4, Sides: 6, Modifier: -2},
			rolls:  []int{1, 1, 2, 3},
			output: "Alice rolled 4d6-2: [1, 1, 2, 3] = 7 -2 = <strong>5</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Validate(tt.spec)
			assert.NoError(t, err)

			total := 0
			for _, r := range tt.rolls {
				total += r
			}
			result := RollResult{Rolls: tt.rolls, Total: total, FinalTotal: total + tt.spec.Modifier}

			assert.Equal(t, tt.output, Format("Alice", spec, result))
		})
	}
}

func TestFormatSingleDieHasNoEquation(t *testing.T) {
	spec, _ := Validate(Notation{Count: 1, Sides: 6})
	line := Format("Bob", spec, RollResult{Rolls: []int{6}, Total: 6, FinalTotal: 6})

	assert.NotContains(t, line, "=")
	assert.NotContains(t, line, "[")
}
