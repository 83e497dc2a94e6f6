package games

import "math/rand/v2"

// RandomSource picks shape colours. Tests inject fixed sequences.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewRandomSource returns the process-wide random source
func NewRandomSource() RandomSource {
	return globalSource{}
}

// SequenceSource replays a fixed list of values, cycling when exhausted
type SequenceSource struct {
	values []int
	next   int
}

// NewSequenceSource creates a source that returns values in order
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

// IntN returns the next value modulo n
func (s *SequenceSource) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v % n) + n) % n
}

// FixedColors returns a source that spawns the given colours in order
func FixedColors(colors ...ShapeColor) *SequenceSource {
	values := make([]int, len(colors))
	for i, c := range colors {
		for j, known := range ShapeColors {
			if known == c {
				values[i] = j
			}
		}
	}
	return NewSequenceSource(values...)
}
