package slices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	scenario string
	failed   bool
}

func TestFilter(t *testing.T) {
	t.Run("it should keep only matching elements", func(t *testing.T) {
		// GIVEN
		input := []result{
			{scenario: "append-only"},
			{scenario: "stack", failed: true},
			{scenario: "append-only", failed: true},
		}

		// WHEN
		failed := Filter(input, func(r result) bool { return r.failed })

		// THEN
		assert.Equal(t, []result{input[1], input[2]}, failed)
	})

	t.Run("it should return empty slice when no elements match", func(t *testing.T) {
		// GIVEN
		input := []int{1, 3, 5}

		// WHEN
		even := Filter(input, func(n int) bool { return n%2 == 0 })

		// THEN
		assert.Empty(t, even)
	})

	t.Run("it should handle empty slice", func(t *testing.T) {
		// GIVEN
		var input []string

		// WHEN
		out := Filter(input, func(string) bool { return true })

		// THEN
		assert.Empty(t, out)
	})
}

func TestMap(t *testing.T) {
	t.Run("it should map every element", func(t *testing.T) {
		// GIVEN
		input := []result{{scenario: "append-only"}, {scenario: "stack"}}

		// WHEN
		names := Map(input, func(r result) string { return r.scenario })

		// THEN
		assert.Equal(t, []string{"append-only", "stack"}, names)
	})

	t.Run("it should return empty slice for empty input", func(t *testing.T) {
		// WHEN
		out := Map([]int{}, func(n int) int { return n * 2 })

		// THEN
		assert.Empty(t, out)
	})
}
