package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.design/x/hotkey"
)

func TestParseSpec(t *testing.T) {
	mods, key, err := parseSpec("ctrl+shift+space")
	require.NoError(t, err)
	assert.Len(t, mods, 2)
	assert.Equal(t, hotkey.KeySpace, key)

	mods, key, err = parseSpec("alt+q")
	require.NoError(t, err)
	assert.Len(t, mods, 1)
	assert.Equal(t, hotkey.KeyQ, key)

	mods, key, err = parseSpec("f13")
	require.NoError(t, err)
	assert.Empty(t, mods)
	assert.Equal(t, hotkey.KeyF13, key)

	_, key, err = parseSpec("CTRL + 7")
	require.NoError(t, err)
	assert.Equal(t, hotkey.Key7, key)
}

func TestParseSpecErrors(t *testing.T) {
	_, _, err := parseSpec("")
	assert.Error(t, err)

	_, _, err = parseSpec("ctrl+pause")
	assert.Error(t, err)

	_, _, err = parseSpec("hyper+a")
	assert.Error(t, err)

	_, _, err = parseSpec("f25")
	assert.Error(t, err)
}
