package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
)

func TestGroupLetters(t *testing.T) {
	assert.Equal(t, "abcde fghij", groupLetters("abcdefghij", 5))
	assert.Equal(t, "abc", groupLetters("abc", 5))
	assert.Equal(t, "abc", groupLetters("abc", 0))

	// The eleventh group starts a new line.
	grouped := groupLetters(strings.Repeat("a", 55), 5)
	lines := strings.Split(grouped, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("aaaaa ", 9)+"aaaaa", lines[0])
	assert.Equal(t, "aaaaa", lines[1])
}

func TestParseKeywords(t *testing.T) {
	cfg, err := parseKeywords([]string{"rotors=beta ii iv i", "positions=vjna"})
	require.NoError(t, err)
	assert.Equal(t, "beta ii iv i", cfg["rotors"])
	assert.Equal(t, "vjna", cfg["positions"])

	_, err = parseKeywords([]string{"rotors"})
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = parseKeywords([]string{"=x"})
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
}
