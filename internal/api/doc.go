// Package api implements the HTTP layer of the trivia and coffee-shop APIs.
//
// Handlers decode and validate requests, call the services and render the
// JSON envelopes. Every failure is rendered as
// {"success": false, "error": <status>, "message": <text>}; service errors
// are translated to statuses by MapErrorToStatusCode, with endpoint-specific
// overrides where the contract fixes a single status for any failure.
//
// NewTriviaRouter and NewCoffeeRouter assemble the chi routers with the
// shared middleware stack.
package api
