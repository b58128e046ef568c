package auth

import "github.com/studiohq/portal/pkg/i18n"

// Message keys resolved through the translator per Accept-Language.
const (
	msgInvalidCredentials = "auth.invalid_credentials"
	msgUnauthenticated    = "auth.unauthenticated"
	msgUnauthorized       = "auth.unauthorized"
	msgServerError        = "auth.server_error"
	msgPushUnavailable    = "auth.push_unavailable"
)

// DefaultCatalog returns the built-in guard message catalog. Deployments
// can extend it with additional languages loaded from YAML before
// constructing the translator.
func DefaultCatalog() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			msgInvalidCredentials: "Invalid email or password.",
			msgUnauthenticated:    "Authentication required.",
			msgUnauthorized:       "You do not have access to this resource.",
			msgServerError:        "Something went wrong. Please try again later.",
			msgPushUnavailable:    "Push notifications are not available.",
		},
		"de": {
			msgInvalidCredentials: "E-Mail oder Passwort ist ungültig.",
			msgUnauthenticated:    "Anmeldung erforderlich.",
			msgUnauthorized:       "Sie haben keinen Zugriff auf diese Ressource.",
			msgServerError:        "Etwas ist schiefgelaufen. Bitte später erneut versuchen.",
			msgPushUnavailable:    "Push-Benachrichtigungen sind nicht verfügbar.",
		},
	}
}

// NewDefaultTranslator builds a translator over the built-in catalog.
func NewDefaultTranslator(defaultLang string) (*i18n.Translator, error) {
	return i18n.New(DefaultCatalog(), defaultLang)
}
