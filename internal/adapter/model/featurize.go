package model

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Featurizer converts free text into the fixed-size feature vector the
// exported model was trained against: lowercased word tokens hashed into
// a signed bag-of-words vector, L2 normalized.
type Featurizer struct {
	dim int
}

// NewFeaturizer creates a featurizer producing vectors of the given
// dimension. The dimension must match the model's input width.
func NewFeaturizer(dim int) *Featurizer {
	return &Featurizer{dim: dim}
}

// Dim returns the feature vector dimension.
func (f *Featurizer) Dim() int {
	return f.dim
}

// Vector computes the feature vector for a text. Whitespace-only input
// yields the zero vector.
func (f *Featurizer) Vector(text string) []float32 {
	vec := make([]float32, f.dim)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()

		// Low bit picks the sign, remaining bits pick the bucket.
		idx := int(sum>>1) % f.dim
		if sum&1 == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return vec
}
