package cli

import (
	"testing"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionMinutes(t *testing.T) {
	assert.NoError(t, validateSessionMinutes("45"))
	assert.NoError(t, validateSessionMinutes(" 1440 "))
	for _, bad := range []string{"", " ", "0", "-3", "ten", "1441", "9223372036854776"} {
		assert.Error(t, validateSessionMinutes(bad), "input %q", bad)
	}
}

func TestParseRecordID(t *testing.T) {
	id, err := parseRecordID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"", "0", "#", "twelve"} {
		_, err := parseRecordID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %q", bad)
	}
}

func TestCategoryOptions(t *testing.T) {
	options := categoryOptions(domain.DefaultCatalog())
	require.Len(t, options, 4)
	assert.Equal(t, "Programming (×1.2)", options[2].Key)
	assert.Equal(t, "Programming", options[2].Value)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"week", "Weekly", "w"} {
		p, err := parsePeriod(s)
		require.NoError(t, err)
		assert.Equal(t, "week", p.String())
	}
}
