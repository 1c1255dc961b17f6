// Package middleware provides the HTTP middleware shared by both APIs:
// request tracing, CORS, the permission gate and write rate limiting.
package middleware
