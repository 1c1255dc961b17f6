package migrate

import "github.com/fullstack-nd/trivia-coffee-api/internal/platform/postgres"

// Trivia is the migration set for the trivia database.
func Trivia() Source {
	return Source{Name: "trivia", FS: postgres.TriviaMigrations(), Table: "trivia_goose_db_version"}
}

// Coffee is the migration set for the coffee-shop database.
func Coffee() Source {
	return Source{Name: "coffee", FS: postgres.CoffeeMigrations(), Table: "coffee_goose_db_version"}
}
