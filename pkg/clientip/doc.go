// Package clientip extracts and normalizes the client network address from
// HTTP requests, honoring common proxy headers. The normalized address
// serves as the fallback rate-limit identity for unauthenticated traffic.
package clientip
