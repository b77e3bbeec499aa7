package code

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerate_SixDigitsInRange(t *testing.T) {
	g := New()
	for i := 0; i < 5000; i++ {
		c := g.Generate()
		require.Regexp(t, sixDigits, c)
		n, err := strconv.Atoi(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerate_Varies(t *testing.T) {
	g := New()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[g.Generate()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
