// Package security holds the HTTP middleware that protects the catalog forms:
// response security headers, CSRF tokens for POST forms and the cookie session
// that carries flash messages across POST-redirect-GET.
package security
