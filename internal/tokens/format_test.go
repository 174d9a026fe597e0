package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 tokens"},
		{100, "100 tokens"},
		{9999, "9,999 tokens"},
		{MediumThreshold, "10,000 tokens (Medium)"},
		{40000, "40,000 tokens (Medium)"},
		{99999, "99,999 tokens (Medium)"},
		{HighThreshold, "⚠ 100,000 tokens (High)"},
		{120000, "⚠ 120,000 tokens (High)"},
		{1234567, "⚠ 1,234,567 tokens (High)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.n))
		})
	}
}

func TestFormatTierMarkers(t *testing.T) {
	high := Format(120000)
	assert.Contains(t, high, HighMarker)
	assert.Contains(t, high, "120,000")

	medium := Format(40000)
	assert.Contains(t, medium, "(Medium)")
	assert.NotContains(t, medium, HighMarker)

	plain := Format(100)
	assert.NotContains(t, plain, "(")
}

func TestTier(t *testing.T) {
	assert.Less(t, MediumThreshold, HighThreshold)

	assert.Equal(t, SeverityNone, Tier(100))
	assert.Equal(t, SeverityNone, Tier(MediumThreshold-1))
	assert.Equal(t, SeverityMedium, Tier(40000))
	assert.Equal(t, SeverityHigh, Tier(HighThreshold))

	assert.Equal(t, "High", SeverityHigh.String())
	assert.Equal(t, "None", SeverityNone.String())
}
