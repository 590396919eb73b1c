package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "c": 3, "a": 1}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestMapKeys(t *testing.T) {
	assert.ElementsMatch(t, []int{1, 2}, MapKeys(map[int]string{1: "one", 2: "two"}))
}
