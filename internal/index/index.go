package index

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyBuild is returned when Build is given no vectors.
	ErrEmptyBuild = errors.New("index: cannot build from zero vectors")

	// ErrDimensionMismatch is returned when a vector's dimension does not
	// match the dimension the index was built with.
	ErrDimensionMismatch = errors.New("index: embedding dimension mismatch")
)

// Match is one nearest-neighbor hit. Position is the offset of the vector in
// the build sequence, which by construction is also the offset of its chunk
// in the session's chunk sequence.
type Match struct {
	Distance float64
	Position int
}

// Flat is a brute-force nearest-neighbor index over fixed-dimension vectors
// using squared Euclidean distance. It is write-once: built from a full
// vector set and read-only afterwards.
type Flat struct {
	dimension int
	vectors   [][]float32
}

// Build creates an index from vectors. The index dimension is fixed to the
// dimension of the first vector; inconsistent dimensions fail the build.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyBuild
	}
	dim := len(vectors[0])
	stored := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
		stored[i] = v
	}
	return &Flat{dimension: dim, vectors: stored}, nil
}

// Dimension returns the fixed vector dimension of the index.
func (f *Flat) Dimension() int { return f.dimension }

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Search returns up to k matches sorted by ascending squared Euclidean
// distance, ties broken by lower position. If k exceeds the number of
// indexed vectors, all of them are returned.
func (f *Flat) Search(query []float32, k int) ([]Match, error) {
	if len(query) != f.dimension {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 {
		return nil, nil
	}

	matches := make([]Match, len(f.vectors))
	for i, v := range f.vectors {
		matches[i] = Match{Distance: squaredL2(v, query), Position: i}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Position < matches[j].Position
	})
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

func squaredL2(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
