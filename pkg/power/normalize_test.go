package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgray/milscope/pkg/power"
)

// TestParseNumber_CleanValues verifies plain numeric strings parse.
func TestParseNumber_CleanValues(t *testing.T) {
	v := power.ParseNumber("1416043270")
	require.NotNil(t, v)
	assert.Equal(t, 1416043270.0, *v)

	v = power.ParseNumber(" 0.0699 ")
	require.NotNil(t, v)
	assert.Equal(t, 0.0699, *v)

	v = power.ParseNumber("-12.5")
	require.NotNil(t, v)
	assert.Equal(t, -12.5, *v)
}

// TestParseNumber_UnparseableBecomesNil verifies that empty cells,
// placeholder text and locale-formatted strings degrade to nil instead
// of failing.
func TestParseNumber_UnparseableBecomesNil(t *testing.T) {
	for _, raw := range []string{"", "   ", "N/A", "unknown", "1,416,043,270", "$52,000"} {
		assert.Nil(t, power.ParseNumber(raw), "raw=%q", raw)
	}
}

// TestNormalizeRecord_AllFieldsPresent verifies every requested field
// gets an entry, nil for the unparseable ones.
func TestNormalizeRecord_AllFieldsPresent(t *testing.T) {
	raw := power.RawRecord{
		"navy_strength":              "754",
		"total_combat_tank_strength": "no data",
	}

	got := power.NormalizeRecord(raw, []string{
		"navy_strength", "total_combat_tank_strength", "absent_field",
	})

	require.Len(t, got, 3)
	require.NotNil(t, got["navy_strength"])
	assert.Equal(t, 754.0, *got["navy_strength"])
	assert.Nil(t, got["total_combat_tank_strength"])
	assert.Nil(t, got["absent_field"])
}
