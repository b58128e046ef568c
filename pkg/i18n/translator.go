package i18n

import (
	"golang.org/x/text/language"
)

// Translator resolves message keys to localized strings. Missing keys fall
// back to the default language, then to the key itself, so a gap in a
// catalog never produces an empty user-facing message.
type Translator struct {
	translations map[string]map[string]string
	defaultLang  string
	matcher      language.Matcher
	tags         []language.Tag
	langs        []string
}

// New creates a Translator from a language -> key -> message map.
// The default language must be present in the data.
func New(data map[string]map[string]string, defaultLang string) (*Translator, error) {
	if len(data) == 0 {
		return nil, ErrNoTranslations
	}
	if _, ok := data[defaultLang]; !ok {
		return nil, ErrMissingDefaultLanguage
	}

	// Default language first so the matcher falls back to it
	langs := make([]string, 0, len(data))
	tags := make([]language.Tag, 0, len(data))
	langs = append(langs, defaultLang)
	tags = append(tags, language.Make(defaultLang))
	for lang := range data {
		if lang == defaultLang {
			continue
		}
		langs = append(langs, lang)
		tags = append(tags, language.Make(lang))
	}

	return &Translator{
		translations: data,
		defaultLang:  defaultLang,
		matcher:      language.NewMatcher(tags),
		tags:         tags,
		langs:        langs,
	}, nil
}

// T returns the message for key in the given language.
func (t *Translator) T(lang, key string) string {
	if msgs, ok := t.translations[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.translations[t.defaultLang][key]; ok {
		return msg
	}
	return key
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value. An empty or unparseable header resolves to
// the default language.
func (t *Translator) MatchAcceptLanguage(header string) string {
	if header == "" {
		return t.defaultLang
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return t.defaultLang
	}

	_, idx, _ := t.matcher.Match(desired...)
	if idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}
