package fn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timing struct {
	name    string
	elapsed time.Duration
}

func TestCompareBy(t *testing.T) {
	t.Run("it should order by extracted duration", func(t *testing.T) {
		// GIVEN
		compare := CompareBy(func(tm timing) time.Duration { return tm.elapsed })
		fast := timing{name: "fast", elapsed: time.Millisecond}
		slow := timing{name: "slow", elapsed: time.Second}

		// WHEN & THEN
		assert.Equal(t, Less, compare(fast, slow))
		assert.Equal(t, Greater, compare(slow, fast))
		assert.Equal(t, Equal, compare(fast, fast))
	})
}

func TestAllTriConsumer(t *testing.T) {
	t.Run("it should call every consumer in order", func(t *testing.T) {
		// GIVEN
		var calls []string
		first := func(a string, b int, c bool) { calls = append(calls, "first:"+a) }
		second := func(a string, b int, c bool) { calls = append(calls, "second:"+a) }

		// WHEN
		AllTriConsumer[string, int, bool](first, second)("x", 1, true)

		// THEN
		assert.Equal(t, []string{"first:x", "second:x"}, calls)
	})
}
