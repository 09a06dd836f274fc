package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{
		"auto":      LanguageAuto,
		"":          LanguageAuto,
		"English":   LanguageEnglish,
		"norwegian": LanguageNorwegian,
	} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLanguage("klingon")
	assert.Error(t, err)
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "", LanguageAuto.Code())
	assert.Equal(t, "en", LanguageEnglish.Code())
	assert.Equal(t, "no", LanguageNorwegian.Code())
}

func TestParseModel(t *testing.T) {
	for _, in := range []string{"tiny", "base", "small", "medium", "large", "turbo", "TURBO"} {
		_, err := ParseModel(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseModel("gigantic")
	assert.Error(t, err)
}
