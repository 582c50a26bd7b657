package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"x", "y"})
	b := slices.All([]string{"z"})

	var keys []int
	var values []string
	for key, value := range IterSeq2Concat(a, b) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"x", "y", "z"}, values)

	// Stops when the consumer stops.
	values = values[:0]
	for _, value := range IterSeq2Concat(a, b) {
		values = append(values, value)
		if value == "y" {
			break
		}
	}
	assert.Equal([]string{"x", "y"}, values)

	assert.Empty(maps.Collect(IterSeq2Concat[string, string]()))
}
