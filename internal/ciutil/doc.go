// Package ciutil detects CI environments and resolves the connection URLs
// integration tests use, applying CI-standard credentials where needed.
package ciutil
