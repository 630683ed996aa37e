// Package rolldicetest provides deterministic dice sources for tests.
package rolldicetest

// Faces replays the given die faces in order, wrapping around when they run
// out. A face larger than the die being rolled wraps modulo its sides.
type Faces struct {
	faces []int
	next  int
	calls []int
}

func NewFaces(faces ...int) *Faces {
	return &Faces{faces: faces}
}

func (f *Faces) IntN(n int) int {
	f.calls = append(f.calls, n)
	face := 1
	if len(f.faces) > 0 {
		face = f.faces[f.next%len(f.faces)]
		f.next++
	}
	return ((face-1)%n + n) % n
}

// Calls returns the n passed to each IntN call so far.
func (f *Faces) Calls() []int {
	return f.calls
}
