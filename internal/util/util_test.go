package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	page, from, limit := Calculate(1, 10)
	require.Equal(t, 1, page)
	require.Equal(t, 0, from)
	require.Equal(t, 10, limit)

	page, from, limit = Calculate(3, 20)
	require.Equal(t, 3, page)
	require.Equal(t, 40, from)
	require.Equal(t, 20, limit)

	// out-of-range inputs clamp to defaults
	page, from, limit = Calculate(0, 0)
	require.Equal(t, 1, page)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)

	page, from, limit = Calculate(-5, 1000)
	require.Equal(t, 1, page)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)
}

func TestParseTagsCSV(t *testing.T) {
	tags := ParseTags("  Nature , SUNSET, nature ,, beach ")
	require.Equal(t, []string{"nature", "sunset", "beach"}, tags)
}

func TestParseTagsJSON(t *testing.T) {
	tags := ParseTags(`["Landscape", " Black & White ", "landscape"]`)
	require.Equal(t, []string{"landscape", "black & white"}, tags)
}

func TestParseTagsMalformedJSONFallsBackToCSV(t *testing.T) {
	tags := ParseTags(`["broken`)
	require.Equal(t, []string{`["broken`}, tags)
}

func TestParseTagsEmpty(t *testing.T) {
	require.Nil(t, ParseTags(""))
	require.Nil(t, ParseTags("  , , "))
}

func TestParseBool(t *testing.T) {
	require.True(t, ParseBool("true", false))
	require.True(t, ParseBool("1", false))
	require.False(t, ParseBool("false", true))
	require.False(t, ParseBool("0", true))
	require.True(t, ParseBool("garbage", true))
	require.False(t, ParseBool("", false))
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 7, ParseIntDefault("7", 1))
	require.Equal(t, 1, ParseIntDefault("", 1))
	require.Equal(t, 1, ParseIntDefault("x", 1))
}
