package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	c := Compare("Pala Head Gravity Pro 2024", "Head Gravity Pro 2024", 0)
	assert.True(t, c.Compatible)
	assert.True(t, c.WouldMatch)
	assert.Equal(t, 105.0, c.Score)
	assert.Equal(t, DefaultThreshold, c.Threshold)
	assert.Equal(t, 2024, c.A.Year)
	assert.Empty(t, c.A.RescuedFrom)
	assert.Equal(t, "Head", c.B.RescuedFrom)
	assert.Equal(t, []string{}, c.A.Suffixes)

	c = Compare("Nox AT10 Genius 2024", "Nox AT10 Genius 2025", 0)
	assert.False(t, c.Compatible)
	assert.False(t, c.WouldMatch)
	assert.Zero(t, c.Score)

	c = Compare("Bullpadel Vertex 04", "Bullpadel Hack 03", 99)
	assert.False(t, c.WouldMatch)
	assert.Equal(t, 99.0, c.Threshold)
}
