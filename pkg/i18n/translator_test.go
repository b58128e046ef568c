package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/i18n"
)

func testData() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"auth.unauthorized":    "You are not authorized to perform this action",
			"auth.unauthenticated": "Please sign in to continue",
		},
		"de": {
			"auth.unauthorized": "Sie sind nicht berechtigt, diese Aktion auszuführen",
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty data", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(nil, "en")
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("rejects missing default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(testData(), "fr")
		assert.ErrorIs(t, err, i18n.ErrMissingDefaultLanguage)
	})
}

func TestT(t *testing.T) {
	t.Parallel()

	tr, err := i18n.New(testData(), "en")
	require.NoError(t, err)

	t.Run("exact language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Sie sind nicht berechtigt, diese Aktion auszuführen", tr.T("de", "auth.unauthorized"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Please sign in to continue", tr.T("de", "auth.unauthenticated"))
	})

	t.Run("falls back to key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "auth.unknown", tr.T("en", "auth.unknown"))
	})
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	tr, err := i18n.New(testData(), "en")
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"de-DE,de;q=0.9,en;q=0.8", "de"},
		{"fr-FR,fr;q=0.9", "en"},
		{"not a header ;;;", "en"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.MatchAcceptLanguage(tt.header), "header %q", tt.header)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	catalog := []byte("en:\n  auth.unauthorized: \"Not allowed\"\nde:\n  auth.unauthorized: \"Nicht erlaubt\"\n")
	data, err := i18n.ParseYAML(catalog)
	require.NoError(t, err)
	assert.Equal(t, "Not allowed", data["en"]["auth.unauthorized"])
	assert.Equal(t, "Nicht erlaubt", data["de"]["auth.unauthorized"])

	_, err = i18n.ParseYAML([]byte("{invalid"))
	assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
}
