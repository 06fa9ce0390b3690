package idwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	id := NewNow()
	parsed, err := NewText(id.String())
	require.NoError(t, err)
	assert.Equal(t, 0, id.Compare(parsed))
}

func TestNewTextRejectsGarbage(t *testing.T) {
	_, err := NewText("not-a-ulid")
	assert.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	id := NewNow()
	parsed, err := NewFromBytes(id.Bytes())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = NewFromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestCompareOrdersByTime(t *testing.T) {
	older := NewTextMust("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	newer := NewTextMust("01BX5ZZKBKACTAV9WEVGEMMVRZ")
	assert.Negative(t, older.Compare(newer))
	assert.Positive(t, newer.Compare(older))
	assert.Zero(t, older.Compare(older))
}

func TestScanValue(t *testing.T) {
	id := NewNow()
	v, err := id.Value()
	require.NoError(t, err)

	var scanned IDWrap
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)
}
