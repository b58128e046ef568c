// Package csrf guards state-changing web requests with a stateful
// double-submit-cookie scheme. Only the cookie transport needs it; bearer
// sessions are immune to cross-site request forgery because browsers never
// attach the Authorization header on their own.
package csrf
