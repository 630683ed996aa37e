package rolldice

import (
	"math/rand/v2"
	"testing"

	"github.com/rlindsey28/chat-dice/rolldice/rolldicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, count, sides, modifier int) RollSpec {
	t.Helper()
	spec, err := Validate(Notation{Count: count, Sides: sides, Modifier: modifier})
	require.NoError(t, err)
	return spec
}

func TestEngineRollUsesSource(t *testing.T) {
	faces := rolldicetest.NewFaces(4, 1, 6)
	result := NewEngine(faces).Roll(mustSpec(t, 3, 6, 2))

	assert.Equal(t, []int{4, 1, 6}, result.Rolls)
	assert.Equal(t, 11, result.Total)
	assert.Equal(t, 13, result.FinalTotal)
	assert.Equal(t, []int{6, 6, 6}, faces.Calls())
}

func TestEngineRollBounds(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewPCG(1, 2)))

	for _, sides := range []int{2, 3, 6, 20, 100, 10000} {
		spec := mustSpec(t, 100, sides, -7)
		result := engine.Roll(spec)
		require.Len(t, result.Rolls, 100)

		sum := 0
		for _, r := range result.Rolls {
			assert.GreaterOrEqual(t, r, 1)
			assert.LessOrEqual(t, r, sides)
			sum += r
		}
		assert.Equal(t, sum, result.Total)
		assert.Equal(t, sum-7, result.FinalTotal)
	}
}

func TestEngineRollDistribution(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewPCG(7, 11)))
	spec := mustSpec(t, 100, 6, 0)

	distribution := make(map[int]int)
	for i := 0; i < 600; i++ {
		for _, r := range engine.Roll(spec).Rolls {
			distribution[r]++
		}
	}

	// 60000 draws, 10000 expected per face.
	require.Len(t, distribution, 6)
	for face, n := range distribution {
		assert.InDelta(t, 10000, n, 600, "face %d", face)
	}
}

func TestNewEngineDefaultsSource(t *testing.T) {
	result := NewEngine(nil).Roll(mustSpec(t, 1, 2, 0))
	require.Len(t, result.Rolls, 1)
	assert.Contains(t, []int{1, 2}, result.Rolls[0])
}
