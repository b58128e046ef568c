// Package i18n provides a minimal translator for user-facing error
// messages. Catalogs are YAML maps of language to message keys; language
// negotiation uses golang.org/x/text matching on Accept-Language headers.
package i18n
