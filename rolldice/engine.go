package rolldice

import "math/rand/v2"

// Source yields random integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	IntN(n int) int
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n int) int

func (f SourceFunc) IntN(n int) int {
	return f(n)
}

// DefaultSource draws from the process-wide math/rand/v2 generator, which is
// safe for concurrent use.
var DefaultSource Source = SourceFunc(rand.IntN)

// RollResult holds the individual faces and the sums of one roll.
type RollResult struct {
	Rolls      []int
	Total      int
	FinalTotal int
}

// Engine rolls validated specs against a Source.
type Engine struct {
	source Source
}

// NewEngine returns an Engine drawing from src, or DefaultSource if src is nil.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = DefaultSource
	}
	return &Engine{source: src}
}

// Roll draws spec.Count() independent faces in [1, spec.Sides()].
func (e *Engine) Roll(spec RollSpec) RollResult {
	rolls := make([]int, spec.count)
	total := 0
	for i := range rolls {
		rolls[i] = rollDie(e.source, spec.sides)
		total += rolls[i]
	}
	return RollResult{
		Rolls:      rolls,
		Total:      total,
		FinalTotal: total + spec.modifier,
	}
}

func rollDie(src Source, sides int) int {
	return src.IntN(sides) + 1
}
