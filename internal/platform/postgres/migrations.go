package postgres

import (
	"embed"
	"io/fs"
)

//go:embed migrations/trivia/*.sql migrations/coffee/*.sql
var migrationFiles embed.FS

// TriviaMigrations returns the goose migrations for the trivia database.
func TriviaMigrations() fs.FS {
	return subFS("migrations/trivia")
}

// CoffeeMigrations returns the goose migrations for the coffee-shop database.
func CoffeeMigrations() fs.FS {
	return subFS("migrations/coffee")
}

func subFS(dir string) fs.FS {
	sub, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		// ALLOW-PANIC: the directory is embedded at build time
		panic(err)
	}
	return sub
}
