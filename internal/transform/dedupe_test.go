package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicate(t *testing.T) {
	rows := [][]string{
		{"a", "1"},
		{"b", "2"},
		{"a", "1"},
		{"c", "3"},
		{"a", "1"},
	}

	out, removed := Deduplicate(rows)
	assert.Equal(t, 2, removed)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, out)
}

func TestDeduplicatePreservesFirstSeenOrder(t *testing.T) {
	rows := [][]string{
		{"z"},
		{"a"},
		{"z"},
		{"m"},
	}

	out, removed := Deduplicate(rows)
	assert.Equal(t, 1, removed)
	assert.Equal(t, [][]string{{"z"}, {"a"}, {"m"}}, out)
}

func TestDeduplicateIdempotent(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"b", "2"}}

	once, removed := Deduplicate(rows)
	assert.Equal(t, 0, removed)

	twice, removed := Deduplicate(once)
	assert.Equal(t, 0, removed)
	assert.Equal(t, once, twice)
}

func TestDeduplicateDistinguishesFieldBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collapse into one row.
	rows := [][]string{
		{"ab", "c"},
		{"a", "bc"},
	}

	out, removed := Deduplicate(rows)
	assert.Equal(t, 0, removed)
	assert.Len(t, out, 2)
}

func TestDeduplicateEmpty(t *testing.T) {
	out, removed := Deduplicate(nil)
	assert.Equal(t, 0, removed)
	assert.Empty(t, out)
}
