// Package shared holds the response envelope, request decoding and request
// context helpers used by both the handlers and the middleware.
package shared
