// Package service implements the trivia and coffee-shop application logic on
// top of the store interfaces.
//
// Services own the rules that are not storage concerns: pagination and the
// empty-page cutoff, quiz question selection, drink title uniqueness and
// partial updates. They return sentinel errors from this package or wrap
// store errors, and the API layer maps them to HTTP statuses.
package service
