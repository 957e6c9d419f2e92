package tokentrim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateKeepsShortText(t *testing.T) {
	tr, err := New(50)
	require.NoError(t, err)
	got, err := tr.Translate("a short page")
	require.NoError(t, err)
	assert.Equal(t, "a short page", got)
}

func TestTranslateTrimsLongText(t *testing.T) {
	tr, err := New(10)
	require.NoError(t, err)
	long := strings.Repeat("hello world ", 100)
	got, err := tr.Translate(long)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, Ellipsis))
	assert.Less(t, len(got), len(long))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(got, Ellipsis)))
}

func TestTranslateDisabled(t *testing.T) {
	tr, err := New(0)
	require.NoError(t, err)
	long := strings.Repeat("x ", 1000)
	got, err := tr.Translate(long)
	require.NoError(t, err)
	assert.Equal(t, long, got)
}
