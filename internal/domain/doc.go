// Package domain defines the core entities of the trivia and coffee-shop
// APIs (questions, categories, drinks) together with their validation rules
// and the projections returned to API callers.
package domain
