package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		odds     float64
		expected float64
	}{
		{name: "Even money", odds: 100, expected: 50.0},
		{name: "Favorite", odds: -150, expected: 60.0},
		{name: "Underdog", odds: 200, expected: 33.33},
		{name: "Heavy favorite", odds: -400, expected: 80.0},
		{name: "Long shot", odds: 400, expected: 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ImpliedProbability(tt.odds), 0.01)
		})
	}
}

func TestImpliedProbabilityBounds(t *testing.T) {
	for _, odds := range []float64{-10000, -500, -110, 100, 150, 1000, 25000} {
		p := ImpliedProbability(odds)
		assert.Greater(t, p, 0.0, "odds %v", odds)
		assert.Less(t, p, 100.0, "odds %v", odds)
	}
}

func TestImpliedProbabilityPtr(t *testing.T) {
	assert.Nil(t, ImpliedProbabilityPtr(nil))

	odds := 100.0
	p := ImpliedProbabilityPtr(&odds)
	assert.NotNil(t, p)
	assert.Equal(t, 50.0, *p)
}

func TestEdge(t *testing.T) {
	assert.Equal(t, 15.0, Edge(75, 60))
	assert.Equal(t, -10.0, Edge(50, 60))
	assert.Equal(t, 0.0, Edge(50, 50))
}

func TestFormatAmerican(t *testing.T) {
	assert.Equal(t, "+150", FormatAmerican(150))
	assert.Equal(t, "-110", FormatAmerican(-110))
	assert.Equal(t, "+100", FormatAmerican(100))
}
