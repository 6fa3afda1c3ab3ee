package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeaturizer_Vector(t *testing.T) {
	f := NewFeaturizer(256)

	t.Run("produces vectors of the configured dimension", func(t *testing.T) {
		vec := f.Vector("the app keeps crashing on login")

		assert.Len(t, vec, 256)
		assert.Equal(t, 256, f.Dim())
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := f.Vector("refund my last invoice")
		b := f.Vector("refund my last invoice")

		assert.Equal(t, a, b)
	})

	t.Run("is case and punctuation insensitive", func(t *testing.T) {
		a := f.Vector("Refund my invoice!")
		b := f.Vector("refund, my... invoice")

		assert.Equal(t, a, b)
	})

	t.Run("is L2 normalized", func(t *testing.T) {
		vec := f.Vector("slow response times during peak hours")

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	})

	t.Run("whitespace-only input yields the zero vector", func(t *testing.T) {
		vec := f.Vector("   \t\n")

		for _, v := range vec {
			assert.Zero(t, v)
		}
	})

	t.Run("different texts produce different vectors", func(t *testing.T) {
		a := f.Vector("billing problem")
		b := f.Vector("great customer service")

		assert.NotEqual(t, a, b)
	})
}
