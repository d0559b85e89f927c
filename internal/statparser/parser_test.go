package statparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/octagon-edge/internal/models"
)

func TestParseHeight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Standard height", input: `6'2"`, expected: 74},
		{name: "Short fighter", input: `5'6"`, expected: 66},
		{name: "Missing closing quote", input: "5'11", expected: 71},
		{name: "Embedded whitespace", input: `6' 0"`, expected: 72},
		{name: "Empty string", input: "", expected: 0},
		{name: "Garbage", input: "tall", expected: 0},
		{name: "Metric value", input: "188cm", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseHeight(tt.input))
		})
	}
}

func TestParseReach(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Standard reach", input: `74"`, expected: 74},
		{name: "No quote", input: "72", expected: 72},
		{name: "Padded", input: ` 76" `, expected: 76},
		{name: "Half inch", input: `70.5"`, expected: 70.5},
		{name: "Empty", input: "", expected: 0},
		{name: "Garbage", input: "--", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseReach(tt.input))
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Whole percent", input: "57%", expected: 57},
		{name: "No sign", input: "48", expected: 48},
		{name: "Decimal percent", input: "62.5%", expected: 62.5},
		{name: "Empty", input: "", expected: 0},
		{name: "Garbage", input: "n/a", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePercent(tt.input))
		})
	}
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 4.21, ParseRate("4.21"))
	assert.Equal(t, 0.0, ParseRate(""))
	assert.Equal(t, 0.0, ParseRate("unknown"))
}

func TestParseStance(t *testing.T) {
	assert.Equal(t, models.StanceOrthodox, ParseStance("Orthodox"))
	assert.Equal(t, models.StanceSouthpaw, ParseStance(" southpaw "))
	assert.Equal(t, models.StanceSwitch, ParseStance("SWITCH"))
	assert.Equal(t, models.StanceUnknown, ParseStance("open"))
	assert.Equal(t, models.StanceUnknown, ParseStance(""))
}
