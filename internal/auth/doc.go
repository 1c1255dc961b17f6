// Package auth implements the permission gate of the coffee-shop API.
//
// A request passes the gate when it carries "Authorization: Bearer <jwt>",
// the token verifies (RS256 against the identity provider's JWKS document,
// or HS256 with a shared secret), the issuer and audience match the
// configuration, and the token's "permissions" claim contains every
// permission the route requires.
//
// Every failure is an *Error carrying a machine code, a description and the
// status the failure class is associated with.
package auth
