package i18n

import "errors"

var (
	ErrNoTranslations         = errors.New("i18n.no_translations")
	ErrMissingDefaultLanguage = errors.New("i18n.missing_default_language")
	ErrInvalidCatalog         = errors.New("i18n.invalid_catalog")
)
