// Package seed loads trivia categories and questions from YAML fixtures and
// writes them to the database in a single transaction.
package seed
