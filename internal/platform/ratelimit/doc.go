// Package ratelimit limits mutating requests per client key. It uses Redis
// when a URL is configured so several replicas share one budget, and an
// in-process token bucket per key otherwise.
package ratelimit
