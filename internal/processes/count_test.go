package processes

import (
	"testing"

	"codeberg.org/mutker/sysprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountRecords(t *testing.T) {
	count, err := countRecords(648*12, 648)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), count)

	count, err = countRecords(0, 648)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = countRecords(100, 0)
	assert.True(t, errors.HasCode(err, ErrRecordSize))
}
