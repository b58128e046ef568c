// Package token generates opaque, unguessable identifiers for session and
// CSRF tokens. Tokens carry 256 bits of entropy from crypto/rand and are
// base64 RawURL encoded so they travel safely in cookies and headers.
package token
