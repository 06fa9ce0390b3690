package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDBTimeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2026, 8, 30, 10, 0, 0, 0, loc)

	got := DBTime(local)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
	assert.Equal(t, time.UTC, DBNow().Location())
}
